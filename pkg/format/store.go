package format

// orderedMap is a string-keyed map that iterates in insertion order.
//
// Rule, threshold, and scale stores all need reproducible iteration: stable
// priority sorts and config export/import round-trips must not depend on
// incidental map iteration order. Setting an existing key replaces the
// value but keeps the key's original position.
type orderedMap[V any] struct {
	keys []string
	vals map[string]V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{vals: make(map[string]V)}
}

// set inserts or replaces the value for key.
func (m *orderedMap[V]) set(key string, val V) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = val
}

// get returns the value for key.
func (m *orderedMap[V]) get(key string) (V, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// delete removes key, preserving the order of the remaining entries.
func (m *orderedMap[V]) delete(key string) bool {
	if _, ok := m.vals[key]; !ok {
		return false
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// len returns the number of entries.
func (m *orderedMap[V]) len() int { return len(m.keys) }

// values returns all values in insertion order.
func (m *orderedMap[V]) values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.vals[k])
	}
	return out
}

// each calls fn for every entry in insertion order.
func (m *orderedMap[V]) each(fn func(key string, val V)) {
	for _, k := range m.keys {
		fn(k, m.vals[k])
	}
}
