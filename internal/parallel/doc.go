// Package parallel runs independent detection jobs on a fixed set of
// goroutines.
//
// WorkerPool keeps one buffered queue per worker and lets idle workers steal
// from their neighbours, so a batch of images with very different sizes
// still keeps every worker busy.
package parallel
