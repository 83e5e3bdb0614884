// Package dispatcher implements the per-dispatcher ready queue described in
// §4.2: a FIFO of processors eligible for dispatch, guarded by one mutex and
// two condition variables (work-available, processor-returned).
//
// A Dispatcher holds no knowledge of processors beyond the narrow Entry
// interface — it is the engine's job to associate dispatcher names with
// concrete processors and to interpret what TryClaim returns.
package dispatcher
