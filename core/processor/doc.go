// Package processor implements the actor-like Processor described in §4.4:
// a private bounded message queue, a non-empty handler stack, a one-shot
// stopping flag, and a task lock that serializes handler execution and
// handler-stack mutation.
//
// The spec's data model lists an "engine: weak back-reference" field on
// Processor. This implementation omits it: the one behavior that would need
// it — detecting a handler calling Stop on its own processor id, which
// would deadlock the task lock — is instead detected through ordinary
// context propagation (see withCurrentProcessor / CurrentProcessorID),
// avoiding a reference cycle between this package and core/engine.
package processor
