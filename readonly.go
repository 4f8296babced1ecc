package idata

// ReadOnlyData is a read-only view over a live document. Mutations through
// its cursors are silently discarded and report false (or nil), never an
// error: the wrapper presents a mutable-looking interface for compatibility
// while guaranteeing no effect.
//
// The view stays live: changes made to the wrapped document through other
// references remain visible. Nested documents and document arrays read
// through the view are wrapped read-only on the fly, so protection is
// transitive and cannot be bypassed by descending into children.
type ReadOnlyData struct {
	inner Document
}

// NewReadOnlyData wraps d in a read-only view. Wrapping an existing
// read-only or immutable document returns it unchanged.
func NewReadOnlyData(d Document) Document {
	switch d.(type) {
	case *ReadOnlyData, *ImmutableData:
		return d
	}
	return &ReadOnlyData{inner: d}
}

func (d *ReadOnlyData) Cursor() Cursor {
	return &readonlyCursor{inner: d.inner.Cursor()}
}

// readonlyCursor forwards navigation and reads to an inner cursor and
// swallows every mutation. Shared with ImmutableData, whose snapshot is
// only ever exposed through one of these.
type readonlyCursor struct {
	inner Cursor
}

func (c *readonlyCursor) First() bool               { return c.inner.First() }
func (c *readonlyCursor) FirstKey(key string) bool  { return c.inner.FirstKey(key) }
func (c *readonlyCursor) Last() bool                { return c.inner.Last() }
func (c *readonlyCursor) LastKey(key string) bool   { return c.inner.LastKey(key) }
func (c *readonlyCursor) Next() bool                { return c.inner.Next() }
func (c *readonlyCursor) NextKey(key string) bool   { return c.inner.NextKey(key) }
func (c *readonlyCursor) Previous() bool            { return c.inner.Previous() }
func (c *readonlyCursor) PreviousKey(k string) bool { return c.inner.PreviousKey(k) }
func (c *readonlyCursor) Home()                     { c.inner.Home() }
func (c *readonlyCursor) HasMore() bool             { return c.inner.HasMore() }
func (c *readonlyCursor) Key() string               { return c.inner.Key() }
func (c *readonlyCursor) Value() any                { return protectValue(c.inner.Value()) }

func (c *readonlyCursor) SetKey(key string) bool                   { return false }
func (c *readonlyCursor) SetValue(value any) bool                  { return false }
func (c *readonlyCursor) Delete() bool                             { return false }
func (c *readonlyCursor) InsertBefore(key string, value any) bool  { return false }
func (c *readonlyCursor) InsertAfter(key string, value any) bool   { return false }
func (c *readonlyCursor) InsertDocumentBefore(key string) Document { return nil }
func (c *readonlyCursor) InsertDocumentAfter(key string) Document  { return nil }

func (c *readonlyCursor) Clone() Cursor {
	return &readonlyCursor{inner: c.inner.Clone()}
}

func (c *readonlyCursor) Destroy() {
	c.inner.Destroy()
}

// protectValue guards values read through a read-only cursor: children are
// wrapped read-only, and composite leaves (slices, maps, structs) are handed
// out as deep copies so mutating a read value cannot reach the stored one.
// Scalars pass through unchanged.
func protectValue(v any) any {
	switch t := v.(type) {
	case *ReadOnlyData, *ImmutableData:
		return t
	case Document:
		return NewReadOnlyData(t)
	case []Document:
		out := make([]Document, len(t))
		for i, d := range t {
			out[i] = NewReadOnlyData(d)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, nested := range t {
			out[i] = protectValue(nested)
		}
		return out
	}
	return cloneValue(v)
}
