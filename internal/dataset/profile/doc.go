// Package profile turns raw CSV bytes into a DatasetSummary.
//
// Profiling is synchronous and pure: Parse builds a Table, InferType and
// ComputeStats describe each column, Summarize assembles the result and
// RenderContext turns it into a bounded text block suitable for a language
// model prompt. Engine ties the steps together behind a size guard.
package profile
