package idata

import (
	"log/slog"
	"slices"
	"sync"
)

const debugLogCopies = false

// CopyOnWriteData wraps a document and defers cloning it until the first
// mutating cursor operation, or the first read of a nested document value
// (handing out a nested document reference would otherwise allow mutation
// through it). Until then the delegate is shared with zero copies made.
//
// The copy is a one-level clone: top-level pairs are duplicated, values
// that are documents, document arrays, or plain slices carrying documents
// are re-wrapped copy-on-write so each nested level earns its own lazy
// protection, and other values are shared. The SHARED to COPIED transition happens exactly once; concurrent
// triggers serialize on a mutex and every caller observes the fully copied
// state.
//
// Cursors opened before the transition record their position-changing calls
// as a command log. On the first operation after the transition they open a
// fresh cursor into the clone, replay the log to restore their logical
// position, and clear it.
type CopyOnWriteData struct {
	mu     sync.Mutex
	inner  Document
	copied bool
}

// NewCopyOnWriteData wraps d copy-on-write. Wrapping an existing
// copy-on-write document returns it unchanged.
func NewCopyOnWriteData(d Document) *CopyOnWriteData {
	if cw, ok := d.(*CopyOnWriteData); ok {
		return cw
	}
	return &CopyOnWriteData{inner: d}
}

// Copied reports whether the one-time clone has happened.
func (d *CopyOnWriteData) Copied() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.copied
}

func (d *CopyOnWriteData) current() Document {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inner
}

// copy performs the SHARED to COPIED transition. The first caller clones;
// concurrent callers block until the clone is installed.
func (d *CopyOnWriteData) copy() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.copied {
		return
	}
	clone := NewElementList()
	c := d.inner.Cursor()
	for c.Next() {
		clone.Add(c.Key(), wrapNestedCopyOnWrite(c.Value()))
	}
	c.Destroy()
	if debugLogCopies {
		slog.Debug("copy-on-write clone", slog.Int("pairs", clone.Len()))
	}
	d.inner = clone
	d.copied = true
}

func wrapNestedCopyOnWrite(v any) any {
	switch t := v.(type) {
	case *CopyOnWriteData:
		return t
	case Document:
		return NewCopyOnWriteData(t)
	case []Document:
		out := make([]Document, len(t))
		for i, nested := range t {
			out[i] = NewCopyOnWriteData(nested)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, nested := range t {
			out[i] = wrapNestedCopyOnWrite(nested)
		}
		return out
	}
	return v
}

func (d *CopyOnWriteData) Cursor() Cursor {
	store := d.current()
	return &cowCursor{owner: d, from: store, inner: store.Cursor()}
}

type posOp uint8

const (
	opFirst posOp = iota
	opFirstKey
	opNext
	opNextKey
	opPrevious
	opPreviousKey
	opLast
	opLastKey
)

type posCommand struct {
	op  posOp
	key string
}

// cowCursor drives an inner cursor on whichever store the owner currently
// holds. Before every operation it checks whether the owner has swapped
// stores since the inner cursor was opened; if so it rebinds and replays
// its command log.
type cowCursor struct {
	owner *CopyOnWriteData
	from  Document
	inner Cursor
	log   []posCommand
}

func (c *cowCursor) sync() {
	if c.owner == nil {
		return
	}
	store := c.owner.current()
	if store == c.from {
		return
	}
	c.inner.Destroy()
	c.inner = store.Cursor()
	c.from = store
	c.replay()
}

// replay re-applies the recorded commands against the fresh inner cursor,
// reproducing the logical position the cursor held on the old store, then
// clears the log: the position is now baked into the new handle.
func (c *cowCursor) replay() {
	for _, cmd := range c.log {
		switch cmd.op {
		case opFirst:
			c.inner.First()
		case opFirstKey:
			c.inner.FirstKey(cmd.key)
		case opNext:
			c.inner.Next()
		case opNextKey:
			c.inner.NextKey(cmd.key)
		case opPrevious:
			c.inner.Previous()
		case opPreviousKey:
			c.inner.PreviousKey(cmd.key)
		case opLast:
			c.inner.Last()
		case opLastKey:
			c.inner.LastKey(cmd.key)
		}
	}
	c.log = c.log[:0]
}

// record appends a position command. First and Last variants are absolute
// repositions, so they truncate whatever came before them. Nothing is
// recorded once the owner has copied: there is no further store swap to
// replay against.
func (c *cowCursor) record(op posOp, key string) {
	if c.owner == nil || c.owner.Copied() {
		return
	}
	switch op {
	case opFirst, opFirstKey, opLast, opLastKey:
		c.log = c.log[:0]
	}
	c.log = append(c.log, posCommand{op, key})
}

func (c *cowCursor) First() bool {
	c.sync()
	c.record(opFirst, "")
	return c.inner.First()
}

func (c *cowCursor) FirstKey(key string) bool {
	c.sync()
	c.record(opFirstKey, key)
	return c.inner.FirstKey(key)
}

func (c *cowCursor) Last() bool {
	c.sync()
	c.record(opLast, "")
	return c.inner.Last()
}

func (c *cowCursor) LastKey(key string) bool {
	c.sync()
	c.record(opLastKey, key)
	return c.inner.LastKey(key)
}

func (c *cowCursor) Next() bool {
	c.sync()
	c.record(opNext, "")
	return c.inner.Next()
}

func (c *cowCursor) NextKey(key string) bool {
	c.sync()
	c.record(opNextKey, key)
	return c.inner.NextKey(key)
}

func (c *cowCursor) Previous() bool {
	c.sync()
	c.record(opPrevious, "")
	return c.inner.Previous()
}

func (c *cowCursor) PreviousKey(key string) bool {
	c.sync()
	c.record(opPreviousKey, key)
	return c.inner.PreviousKey(key)
}

func (c *cowCursor) Home() {
	c.sync()
	c.inner.Home()
	c.log = c.log[:0]
}

func (c *cowCursor) HasMore() bool {
	c.sync()
	return c.inner.HasMore()
}

func (c *cowCursor) Key() string {
	c.sync()
	return c.inner.Key()
}

// Value triggers the copy when the current value is document-typed, so the
// reference handed out belongs to the protected clone rather than to the
// shared delegate.
func (c *cowCursor) Value() any {
	c.sync()
	v := c.inner.Value()
	if isDocumentValue(v) && c.owner != nil && !c.owner.Copied() {
		c.mutate()
		v = c.inner.Value()
	}
	return v
}

// mutate forces the copy and rebinds this cursor onto the clone.
func (c *cowCursor) mutate() {
	if c.owner == nil {
		return
	}
	c.owner.copy()
	c.sync()
}

func (c *cowCursor) SetKey(key string) bool {
	c.mutate()
	return c.inner.SetKey(key)
}

func (c *cowCursor) SetValue(value any) bool {
	c.mutate()
	return c.inner.SetValue(value)
}

func (c *cowCursor) Delete() bool {
	c.mutate()
	return c.inner.Delete()
}

func (c *cowCursor) InsertBefore(key string, value any) bool {
	c.mutate()
	return c.inner.InsertBefore(key, value)
}

func (c *cowCursor) InsertAfter(key string, value any) bool {
	c.mutate()
	return c.inner.InsertAfter(key, value)
}

func (c *cowCursor) InsertDocumentBefore(key string) Document {
	c.mutate()
	return c.inner.InsertDocumentBefore(key)
}

func (c *cowCursor) InsertDocumentAfter(key string) Document {
	c.mutate()
	return c.inner.InsertDocumentAfter(key)
}

func (c *cowCursor) Clone() Cursor {
	c.sync()
	return &cowCursor{
		owner: c.owner,
		from:  c.from,
		inner: c.inner.Clone(),
		log:   slices.Clone(c.log),
	}
}

func (c *cowCursor) Destroy() {
	c.inner.Destroy()
	c.owner = nil
	c.from = nil
	c.log = nil
}
