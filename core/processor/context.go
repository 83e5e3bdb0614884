package processor

import "context"

type currentProcessorKey struct{}

// withCurrentProcessor tags ctx with the id of the processor whose handler
// is currently executing on this goroutine. RunOnce applies this before
// invoking the handler stack, so that any engine call the handler makes
// (notably Stop) can detect a self-targeted, deadlock-prone call.
func withCurrentProcessor(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, currentProcessorKey{}, id)
}

// CurrentProcessorID reports the id of the processor currently dispatching
// on ctx's goroutine, if any. core/engine.Stop uses this to reject a
// self-stop call with ErrSelfStopDeadlock instead of blocking forever on
// its own task lock.
func CurrentProcessorID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(currentProcessorKey{}).(string)
	return id, ok
}
