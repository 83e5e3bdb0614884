// Package procbuilder provides a fluent Builder over core/processor.New,
// following the functional-options convention core/queue already uses for
// WorkerOption/SchedulerOption/EnqueuerOption — but expressed as chained
// method calls instead of an options slice literal, for call sites that
// construct many processors with small per-instance variations.
//
// WithEngineDefaults sources the built processor's queue capacity from the
// target engine's configured default, since core/engine.Config has no
// other way to reach a processor's construction: Engine.Register only
// ever takes an already-built *processor.Processor.
package procbuilder
