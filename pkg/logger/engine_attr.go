package logger

import "log/slog"

// ============================================================================
// Actor engine attributes
// ============================================================================

// DispatcherName creates an attribute for a dispatcher's name.
func DispatcherName(name string) slog.Attr {
	return slog.String("dispatcher", name)
}

// ProcessorID creates an attribute for a processor's opaque identifier.
func ProcessorID(id string) slog.Attr {
	return slog.String("processor_id", id)
}

// QueueSize creates an attribute for a processor or queue's pending message count.
func QueueSize(n int) slog.Attr {
	return slog.Int("queue_size", n)
}

// WorkerIndex creates an attribute identifying a worker goroutine by its
// position in the engine's configured worker list.
func WorkerIndex(i int) slog.Attr {
	return slog.Int("worker_index", i)
}

// DrainRemaining creates an attribute for the number of undelivered
// messages left when a stop()'s drain phase times out.
func DrainRemaining(n int) slog.Attr {
	return slog.Int("drain_remaining", n)
}
