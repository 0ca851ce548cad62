// Package batch generates identities in parallel.
//
// A fixed pool of workers pulls indices from a channel. Each worker owns one
// generator for its lifetime; generators are never shared between goroutines.
// Cancelling the context stops the feed and the workers between items.
package batch
