package models

// Metadata is an open key-value map attached to every entity.
// Contents are stored and returned verbatim; the kernel never interprets them.
type Metadata map[string]any

// Get returns the value for key, or def if the key is absent.
func (m Metadata) Get(key string, def any) any {
	if m == nil {
		return def
	}
	if v, ok := m[key]; ok {
		return v
	}
	return def
}

// Clone returns a shallow copy so callers can mutate without aliasing.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
