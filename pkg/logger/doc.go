// Package logger provides slog.Attr helper functions for structured logging
// across this module, so call sites build attributes consistently instead
// of hand-writing slog.String/slog.Int calls with ad hoc key names.
//
// attr.go holds general-purpose helpers (errors, timing, identifiers,
// generic metadata, debugging) carried over from the teacher's logging
// conventions. engine_attr.go adds the handful of attributes specific to
// this engine's domain: DispatcherName, ProcessorID, QueueSize,
// WorkerIndex, DrainRemaining.
//
// All helpers return a plain slog.Attr and are meant to be passed directly
// to a *slog.Logger's logging methods:
//
//	log.Info("processor registered",
//		logger.Component("engine"),
//		logger.DispatcherName(string(proc.DispatcherName())),
//		logger.ProcessorID(proc.ID()),
//	)
//
// Error, Errors, ID, Key, RequestID, TraceID and CorrelationID return a zero
// slog.Attr when given a nil error or value or an empty id; slog silently
// drops zero Attrs, so callers never need a nil check before logging. The
// engine helpers in engine_attr.go always return their attribute, even for
// an empty string:
//
//	log.Error("post rejected", logger.Error(err), logger.ProcessorID(id))
//
// This package does not construct *slog.Logger values itself — every
// component in this module builds its own via slog.New with a caller-
// supplied handler (defaulting to a silent slog.NewTextHandler(io.Discard,
// nil) when none is given), following the functional-options WithLogger
// convention used throughout core/engine, core/processor, and
// pkg/delayq.
package logger
