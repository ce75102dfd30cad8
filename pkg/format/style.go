package format

// Style is a partial style record: a set of visual attribute keys (color,
// fontWeight, opacity, ...) with their values. Stores and the engine treat
// styles as opaque key/value data.
type Style map[string]any

// Clone returns a shallow copy of the style. Nil styles clone to nil.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// MergeStyles combines partial styles left to right into a single record.
// Each later style overwrites earlier entries on key conflicts (last writer
// wins). Nil styles contribute nothing. The result is always non-nil.
//
// The engine feeds parts in a fixed order: the computed-color style, rule
// styles in priority-descending order, then threshold styles in insertion
// order. Because later entries win, a threshold or a lower-priority rule
// overwrites a higher-priority rule on conflicting keys. Downstream
// consumers rely on that visible behavior, so it is preserved as-is.
func MergeStyles(parts ...Style) Style {
	merged := Style{}
	for _, p := range parts {
		for k, v := range p {
			merged[k] = v
		}
	}
	return merged
}
