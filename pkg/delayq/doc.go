// Package delayq schedules delayed and recurring message deliveries onto
// core/engine processors.
//
// A Scheduler polls a Store for due Deliveries on a fixed interval and
// posts each one to its target processor through a Poster; EnginePoster
// adapts *core/engine.Engine to that interface. One-time deliveries are marked
// delivered once posted; recurring deliveries are rescheduled for their
// next occurrence instead.
package delayq
