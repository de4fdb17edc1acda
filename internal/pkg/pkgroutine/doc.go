// Package pkgroutine runs background work with bounded concurrency.
//
// Manager caps the number of goroutines, collects returned errors and logs
// panics. Every builds periodic jobs (cache expiry sweeps) on top of it.
package pkgroutine
