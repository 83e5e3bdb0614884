// Package subscriptions bridges pkg/broadcast's channel-based pub/sub into
// core/engine's queue-and-dispatch model.
//
// A Hub[T] owns one broadcast.Broadcaster[T] per topic, created lazily on
// first use. RegisterSubscriptionProcessor wires a topic's delivery into a
// processor registered on the reserved "subscriptions" dispatcher name: its
// handler, invoked once per worker tick, drains whatever is currently
// waiting on the topic's Subscriber channel with a non-blocking select and
// hands each message to a caller-supplied handler — so core/engine never
// needs to know pub/sub exists at all.
package subscriptions
