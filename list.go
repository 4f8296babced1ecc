package idata

import "slices"

// ElementList is an ordered sequence of elements exposed as a Document.
// Insertion order is preserved except where explicit sort operations
// reorder it; multiple elements may share a key.
//
// An ElementList is not safe for concurrent use. The expected discipline is
// a single writer driving one cursor at a time; clones of a cursor may be
// read from the same goroutine.
type ElementList struct {
	elems       []Element
	makeElement func(key string, value any) Element
	makeNested  func() Document
}

// NewElementList returns an empty case-sensitive list-backed document.
func NewElementList() *ElementList {
	l := &ElementList{makeElement: NewElement}
	l.makeNested = func() Document { return NewElementList() }
	return l
}

func (l *ElementList) newDocument() Document { return l.makeNested() }

// Len returns the number of elements.
func (l *ElementList) Len() int { return len(l.elems) }

// Add appends a pair to the end of the list.
func (l *ElementList) Add(key string, value any) {
	l.elems = append(l.elems, l.makeElement(key, value))
}

// ElementAt returns the element at index i.
func (l *ElementList) ElementAt(i int) Element { return l.elems[i] }

// IndexOfKey returns the index of the first element matching key under the
// list's key-equality policy, or -1.
func (l *ElementList) IndexOfKey(key string) int {
	for i, e := range l.elems {
		if e.KeyEquals(key) {
			return i
		}
	}
	return -1
}

// Cursor returns a new unpositioned cursor over the list.
func (l *ElementList) Cursor() Cursor {
	return &listCursor{list: l, cur: -1}
}

// listCursor navigates an ElementList with list-iterator state: gap is the
// insertion point in [0, len], cur is the index of the current element or
// -1 when there is none. Previous after Last re-returns the last element
// (the gap sits after it), which the LastKey three-step sequence relies on.
type listCursor struct {
	list *ElementList
	gap  int
	cur  int
}

func (c *listCursor) Home() {
	c.gap = 0
	c.cur = -1
}

func (c *listCursor) First() bool {
	c.Home()
	return c.Next()
}

func (c *listCursor) Last() bool {
	if c.list == nil || len(c.list.elems) == 0 {
		return false
	}
	c.gap = len(c.list.elems)
	c.cur = c.gap - 1
	return true
}

func (c *listCursor) Next() bool {
	if c.list == nil || c.gap >= len(c.list.elems) {
		return false
	}
	c.cur = c.gap
	c.gap++
	return true
}

func (c *listCursor) Previous() bool {
	if c.list == nil || c.gap <= 0 {
		return false
	}
	c.gap--
	c.cur = c.gap
	return true
}

func (c *listCursor) FirstKey(key string) bool {
	c.Home()
	return c.NextKey(key)
}

func (c *listCursor) NextKey(key string) bool {
	for c.Next() {
		if c.list.elems[c.cur].KeyEquals(key) {
			return true
		}
	}
	return false
}

func (c *listCursor) PreviousKey(key string) bool {
	for c.Previous() {
		if c.list.elems[c.cur].KeyEquals(key) {
			return true
		}
	}
	return false
}

// LastKey positions at the last occurrence of key via Last, PreviousKey,
// Next. The trailing Next re-returns the element PreviousKey stopped on
// because the gap sits immediately before it; the sequence is kept exactly
// for compatibility with the original traversal protocol.
func (c *listCursor) LastKey(key string) bool {
	c.Last()
	if !c.PreviousKey(key) {
		return false
	}
	return c.Next()
}

func (c *listCursor) HasMore() bool {
	return c.list != nil && c.gap < len(c.list.elems)
}

func (c *listCursor) Key() string {
	if e := c.element(); e != nil {
		return e.Key()
	}
	return ""
}

func (c *listCursor) SetKey(key string) bool {
	e := c.element()
	if e == nil {
		return false
	}
	e.SetKey(key)
	return true
}

func (c *listCursor) Value() any {
	if e := c.element(); e != nil {
		return e.Value()
	}
	return nil
}

func (c *listCursor) SetValue(value any) bool {
	e := c.element()
	if e == nil {
		return false
	}
	e.SetValue(value)
	return true
}

func (c *listCursor) element() Element {
	if c.list == nil || c.cur < 0 || c.cur >= len(c.list.elems) {
		return nil
	}
	return c.list.elems[c.cur]
}

func (c *listCursor) Delete() bool {
	if c.element() == nil {
		return false
	}
	c.list.elems = slices.Delete(c.list.elems, c.cur, c.cur+1)
	c.gap = c.cur
	c.cur = -1
	return true
}

func (c *listCursor) InsertBefore(key string, value any) bool {
	if c.list == nil {
		return false
	}
	at := c.gap
	if c.cur >= 0 {
		at = c.cur
	}
	c.list.elems = slices.Insert(c.list.elems, at, c.list.makeElement(key, value))
	if c.cur >= at {
		c.cur++
	}
	if c.gap >= at {
		c.gap++
	}
	return true
}

func (c *listCursor) InsertAfter(key string, value any) bool {
	if c.list == nil {
		return false
	}
	at := c.gap
	if c.cur >= 0 {
		at = c.cur + 1
	}
	c.list.elems = slices.Insert(c.list.elems, at, c.list.makeElement(key, value))
	if c.gap > at {
		c.gap++
	}
	return true
}

func (c *listCursor) InsertDocumentBefore(key string) Document {
	if c.list == nil {
		return nil
	}
	d := c.list.newDocument()
	if !c.InsertBefore(key, d) {
		return nil
	}
	return d
}

func (c *listCursor) InsertDocumentAfter(key string) Document {
	if c.list == nil {
		return nil
	}
	d := c.list.newDocument()
	if !c.InsertAfter(key, d) {
		return nil
	}
	return d
}

func (c *listCursor) Clone() Cursor {
	return &listCursor{list: c.list, gap: c.gap, cur: c.cur}
}

func (c *listCursor) Destroy() {
	c.list = nil
	c.cur = -1
	c.gap = 0
}
