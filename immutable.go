package idata

// ImmutableData is a frozen deep snapshot of a document taken at
// construction time. It is permanently decoupled from its source: later
// changes to the source are not visible, and mutations through the
// snapshot's cursors are silently discarded, exactly as with ReadOnlyData.
//
// Freezing is transitive. Nested documents become immutable snapshots
// themselves, document arrays are frozen element-wise, and other values are
// deep-copied so that no shared mutable state leaks out of the snapshot.
type ImmutableData struct {
	snap *ElementList
}

// NewImmutableData snapshots d. Snapshotting an immutable document returns
// it unchanged.
func NewImmutableData(d Document) Document {
	if im, ok := d.(*ImmutableData); ok {
		return im
	}
	snap := NewElementList()
	c := d.Cursor()
	defer c.Destroy()
	for c.Next() {
		snap.Add(c.Key(), freezeValue(c.Value()))
	}
	return &ImmutableData{snap: snap}
}

func freezeValue(v any) any {
	switch t := v.(type) {
	case Document:
		return NewImmutableData(t)
	case []Document:
		out := make([]Document, len(t))
		for i, d := range t {
			out[i] = NewImmutableData(d)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, v := range t {
			out[i] = freezeValue(v)
		}
		return out
	default:
		return cloneValue(t)
	}
}

// Len returns the number of pairs in the snapshot.
func (d *ImmutableData) Len() int { return d.snap.Len() }

func (d *ImmutableData) Cursor() Cursor {
	return &readonlyCursor{inner: d.snap.Cursor()}
}
