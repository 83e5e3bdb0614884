// Package engine implements the actor-engine core: it owns the dispatchers,
// the registrar, and the worker goroutines, and exposes register / post /
// stop / shutdown (§4.5). Everything this package needs from a message
// processor is the core/processor.Processor type; everything it needs from
// a dispatcher is core/dispatcher.Dispatcher. Collaborators like pub/sub,
// delayed delivery, and config-file parsing live outside this package and
// talk to it only through Engine's public methods.
package engine
