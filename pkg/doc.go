// Package pkg provides the core libraries for cascade waterfall chart formatting.
//
// # Overview
//
// Cascade evaluates declarative formatting configuration against waterfall
// chart data and emits styled records for renderers to paint. The pkg
// directory is organized into these areas:
//
//  1. [format] - The conditional formatting engine (scales, rules, thresholds, merge)
//  2. [waterfall] - Chart data model (items, stacks, running totals)
//  3. [chart] - Host object binding a dataset to one engine
//  4. [chartfile] - TOML chart definition loader
//  5. [cache] - Response caching backends for the formatting API
//
// # Architecture
//
// The typical data flow through cascade:
//
//	Chart File / API Request
//	         ↓
//	    [chartfile] package (decode + validate)
//	         ↓
//	    [chart] package (dataset + engine host)
//	         ↓
//	    [format] package (normalize → interpolate → rules → thresholds → merge)
//	         ↓
//	    Styled JSON output
//
// # Quick Start
//
//	c := chart.New("Q3 revenue bridge").
//		SetItems(items).
//		SetColorScale(format.ScaleProfitLoss)
//	formatted := c.Format()
//
// Supporting packages: [errors] for coded errors, [observability] for
// instrumentation hooks, [buildinfo] for version stamping.
package pkg
