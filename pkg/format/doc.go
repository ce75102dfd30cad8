// Package format implements the conditional formatting engine for waterfall
// charts.
//
// The engine turns a data item plus a declarative set of rules, thresholds,
// and color scales into a concrete visual style. It owns four pieces of
// state: a color-scale registry with built-in presets, a rule store, a
// threshold store, and an optional custom value formatter. A single Apply
// pass maps every item to a FormattedItem carrying its computed color,
// matched rules, matched thresholds, and the merged conditional style.
//
// # Evaluation model
//
// Rules match in priority-descending order (stable on ties) and do not
// short-circuit: every enabled matching rule is collected. Thresholds match
// in insertion order and are never priority-sorted. Partial styles merge
// left to right with last writer wins, fed in the fixed order
//
//	computed color, rule styles (priority desc), threshold styles
//
// which means a threshold or lower-priority rule can overwrite a
// higher-priority rule on conflicting keys. That precedence is part of the
// engine's observable contract; see MergeStyles.
//
// # Error model
//
// The engine never returns errors for malformed data. Unknown rule
// operators are non-matches, unknown threshold operators fall back to ">=",
// degenerate datasets and malformed scales clamp to the nearest edge color.
//
// The engine is intended for single-owner use per chart instance. It does
// no internal locking; callers must serialize mutation against Apply.
package format
