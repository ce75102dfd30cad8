// Package waterfall defines the data model for waterfall charts.
//
// A waterfall chart shows how an initial value is affected by a series of
// positive and negative changes. Each bar either floats relative to the
// running total (delta items) or drops to the baseline (total/subtotal
// items). Items may carry a single value or a stack of segment values.
//
// The package is deliberately rendering-agnostic: it computes the numeric
// series (running start/end positions) and leaves painting to consumers.
// Conditional styling of items lives in package format.
package waterfall
