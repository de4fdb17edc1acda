// Package cache stores dataset summaries under content-addressed keys.
//
// A Layered cache consults an ordered list of Layer implementations
// (process-local, distributed, durable). Each layer fails independently: an
// error is logged and treated as a miss so profiling can always fall back to
// recomputing. Values leaving the cache are deep copies.
package cache
