package idata

import (
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MapData exposes a native insertion-ordered unique-key map as a Document.
// Each key appears at most once, so keyed navigation degenerates from
// "next occurrence" to an existence check (see mapCursor).
type MapData struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewMapData returns an empty map-backed document.
func NewMapData() *MapData {
	return &MapData{m: orderedmap.New[string, any]()}
}

// Len returns the number of pairs.
func (d *MapData) Len() int { return d.m.Len() }

// Get returns the value stored under key.
func (d *MapData) Get(key string) (any, bool) {
	return d.m.Get(key)
}

// Put stores value under key, replacing any existing value. A replaced key
// keeps its position in iteration order; a new key is appended.
func (d *MapData) Put(key string, value any) {
	d.m.Set(key, value)
}

// Remove deletes key and reports whether it was present.
func (d *MapData) Remove(key string) bool {
	_, present := d.m.Delete(key)
	return present
}

// MapKeys returns the keys in iteration order.
func (d *MapData) MapKeys() []string {
	out := make([]string, 0, d.m.Len())
	for pair := d.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Cursor returns a new unpositioned cursor. The cursor snapshots the key
// order at creation; structural changes made through other cursors are not
// reflected (single-writer cursor discipline).
func (d *MapData) Cursor() Cursor {
	return &mapCursor{data: d, keys: d.MapKeys(), pos: -1}
}

func (d *MapData) newDocument() Document { return NewMapData() }

// mapCursor positions within a snapshot list of keys. A keyed find stores
// the key and marks the position dirty; the numeric index is only resolved
// when actually needed, by a linear scan of the key list.
type mapCursor struct {
	data  *MapData
	keys  []string
	pos   int
	dirty bool
	found string
}

// position resolves and returns the current index, clearing the dirty flag.
func (c *mapCursor) position() int {
	if c.dirty {
		c.pos = slices.Index(c.keys, c.found)
		c.dirty = false
	}
	return c.pos
}

func (c *mapCursor) Home() {
	c.pos = -1
	c.dirty = false
}

func (c *mapCursor) First() bool {
	if c.data == nil || len(c.keys) == 0 {
		c.Home()
		return false
	}
	c.pos = 0
	c.dirty = false
	return true
}

func (c *mapCursor) Last() bool {
	if c.data == nil || len(c.keys) == 0 {
		c.Home()
		return false
	}
	c.pos = len(c.keys) - 1
	c.dirty = false
	return true
}

func (c *mapCursor) Next() bool {
	if c.data == nil {
		return false
	}
	p := c.position()
	if p+1 >= len(c.keys) {
		return false
	}
	c.pos = p + 1
	return true
}

func (c *mapCursor) Previous() bool {
	if c.data == nil {
		return false
	}
	p := c.position()
	if p <= 0 {
		return false
	}
	c.pos = p - 1
	return true
}

func (c *mapCursor) FirstKey(key string) bool {
	if c.data == nil {
		return false
	}
	if _, ok := c.data.Get(key); !ok || !slices.Contains(c.keys, key) {
		return false
	}
	c.found = key
	c.dirty = true
	return true
}

// NextKey degenerates for unique keys: the single occurrence of key is found
// only if it lies strictly after the current position. In particular, after
// FirstKey(k) succeeds, NextKey(k) reports false rather than re-finding the
// same pair.
func (c *mapCursor) NextKey(key string) bool {
	if c.data == nil {
		return false
	}
	idx := slices.Index(c.keys, key)
	if idx < 0 || idx <= c.position() {
		return false
	}
	c.pos = idx
	c.dirty = false
	return true
}

func (c *mapCursor) PreviousKey(key string) bool {
	if c.data == nil {
		return false
	}
	idx := slices.Index(c.keys, key)
	if idx < 0 {
		return false
	}
	p := c.position()
	if p < 0 {
		p = len(c.keys)
	}
	if idx >= p {
		return false
	}
	c.pos = idx
	c.dirty = false
	return true
}

// LastKey is FirstKey: a unique key has exactly one occurrence, so the last
// one is the first one.
func (c *mapCursor) LastKey(key string) bool {
	return c.FirstKey(key)
}

func (c *mapCursor) HasMore() bool {
	if c.data == nil {
		return false
	}
	return c.position()+1 < len(c.keys)
}

func (c *mapCursor) Key() string {
	if p := c.position(); c.data != nil && p >= 0 && p < len(c.keys) {
		return c.keys[p]
	}
	return ""
}

func (c *mapCursor) Value() any {
	if p := c.position(); c.data != nil && p >= 0 && p < len(c.keys) {
		v, _ := c.data.Get(c.keys[p])
		return v
	}
	return nil
}

func (c *mapCursor) SetValue(value any) bool {
	p := c.position()
	if c.data == nil || p < 0 || p >= len(c.keys) {
		return false
	}
	c.data.Put(c.keys[p], value)
	return true
}

// SetKey relocates the current value under a new key while keeping the
// cursor's position in the key list: the entry is replaced in place, not
// appended.
func (c *mapCursor) SetKey(key string) bool {
	p := c.position()
	if c.data == nil || p < 0 || p >= len(c.keys) {
		return false
	}
	old := c.keys[p]
	value, _ := c.data.Get(old)
	c.data.Remove(old)
	c.data.Put(key, value)
	c.keys[p] = key
	return true
}

// Delete removes the current pair from both the map and the position list.
// It returns true only while the cursor still has a valid position left;
// removing the final remaining position resets the cursor and reports false
// even though the map mutation itself succeeded.
func (c *mapCursor) Delete() bool {
	p := c.position()
	if c.data == nil || p < 0 || p >= len(c.keys) {
		return false
	}
	c.data.Remove(c.keys[p])
	c.keys = slices.Delete(c.keys, p, p+1)
	if p >= len(c.keys) {
		c.Home()
		return false
	}
	c.pos = p
	return true
}

func (c *mapCursor) InsertBefore(key string, value any) bool {
	if c.data == nil {
		return false
	}
	at := min(max(c.position(), 0), max(len(c.keys)-1, 0))
	return c.insert(key, value, at)
}

func (c *mapCursor) InsertAfter(key string, value any) bool {
	if c.data == nil {
		return false
	}
	at := min(max(c.position()+1, 0), len(c.keys))
	return c.insert(key, value, at)
}

func (c *mapCursor) insert(key string, value any, at int) bool {
	c.data.Put(key, value)
	if slices.Contains(c.keys, key) {
		// unique keys: an existing entry was overwritten in place
		return true
	}
	c.keys = slices.Insert(c.keys, at, key)
	if p := c.position(); p >= at {
		c.pos = p + 1
	}
	return true
}

func (c *mapCursor) InsertDocumentBefore(key string) Document {
	if c.data == nil {
		return nil
	}
	d := c.data.newDocument()
	if !c.InsertBefore(key, d) {
		return nil
	}
	return d
}

func (c *mapCursor) InsertDocumentAfter(key string) Document {
	if c.data == nil {
		return nil
	}
	d := c.data.newDocument()
	if !c.InsertAfter(key, d) {
		return nil
	}
	return d
}

func (c *mapCursor) Clone() Cursor {
	return &mapCursor{
		data:  c.data,
		keys:  slices.Clone(c.keys),
		pos:   c.pos,
		dirty: c.dirty,
		found: c.found,
	}
}

func (c *mapCursor) Destroy() {
	c.data = nil
	c.keys = nil
	c.pos = -1
	c.dirty = false
}
