// Package registrar implements the concurrent ProcessorId → Processor
// handle map described in §4.3. It is the engine's publication boundary:
// once register() returns, post_by_id can reach the processor from any
// goroutine without further synchronization with the registering caller.
package registrar
