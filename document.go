package idata

// Document is an ordered collection of key-value pairs in which keys may
// repeat. Access goes exclusively through cursors; a Document has no
// intrinsic get-by-key primitive beyond cursor positioning, which keeps
// every backing store interchangeable.
type Document interface {
	// Cursor returns a new unpositioned cursor over this document.
	// Callers must call Destroy on every cursor they obtain.
	Cursor() Cursor
}

// Cursor is a stateful positional handle into a single Document.
//
// A cursor is either unpositioned or on an element. Navigation methods
// return whether the cursor ended up on an element; moving past either end
// returns false without panicking and without moving further, so loops of
// the form `for c.Next() { ... }` terminate cleanly.
//
// Keyed navigation (FirstKey, NextKey, PreviousKey, LastKey) steps in the
// given direction until an element matches the key under the owning
// document's key-equality policy. A failed search leaves the cursor at the
// exhausted boundary.
//
// Cursors are not safe for concurrent use; each cursor belongs to a single
// goroutine. See Clone for obtaining an independent handle.
type Cursor interface {
	First() bool
	FirstKey(key string) bool
	Last() bool
	LastKey(key string) bool
	Next() bool
	NextKey(key string) bool
	Previous() bool
	PreviousKey(key string) bool

	// Home resets the cursor to its initial unpositioned state.
	Home()
	// HasMore reports whether a subsequent Next would find an element.
	HasMore() bool

	// Key returns the key of the current element, or "" when unpositioned.
	Key() string
	// SetKey rekeys the current element. Returns false when unpositioned
	// or when the document forbids mutation.
	SetKey(key string) bool
	// Value returns the value of the current element, or nil when
	// unpositioned.
	Value() any
	// SetValue replaces the value of the current element. Returns false
	// when unpositioned or when the document forbids mutation.
	SetValue(value any) bool

	// Delete removes the current element and leaves the cursor
	// unpositioned at the deletion point. Returns false when unpositioned.
	Delete() bool
	// InsertBefore inserts a pair before the current element (or at the
	// cursor gap when unpositioned). The current element is unchanged.
	InsertBefore(key string, value any) bool
	// InsertAfter inserts a pair after the current element (or at the
	// cursor gap when unpositioned). The current element is unchanged;
	// a subsequent Next lands on the inserted pair.
	InsertAfter(key string, value any) bool
	// InsertDocumentBefore inserts a new empty document of the same family
	// as the cursor's owner and returns it, or nil if insertion failed.
	InsertDocumentBefore(key string) Document
	InsertDocumentAfter(key string) Document

	// Clone returns an independent cursor at the same logical position.
	// Subsequent moves on either cursor do not affect the other.
	Clone() Cursor
	// Destroy releases the cursor. Operations on a destroyed cursor
	// report false.
	Destroy()
}

// SharedCursor is the cursor variant handed across ownership boundaries;
// it additionally exposes the document it was opened on.
type SharedCursor interface {
	Cursor
	Owner() Document
}

type sharedCursor struct {
	Cursor
	owner Document
}

// NewSharedCursor adapts any document's plain cursor to the shared cursor
// contract. Documents without native shared traversal use this generically.
func NewSharedCursor(d Document) SharedCursor {
	return &sharedCursor{d.Cursor(), d}
}

func (c *sharedCursor) Owner() Document { return c.owner }

func (c *sharedCursor) Clone() Cursor {
	return &sharedCursor{c.Cursor.Clone(), c.owner}
}

// TreeCursor is a legacy cursor kind that no document here provides.
// It always fails with ErrNotImplemented.
func TreeCursor(d Document) (Cursor, error) {
	return nil, ErrNotImplemented
}

// HashCursor is a legacy cursor kind that no document here provides.
// It always fails with ErrNotImplemented.
func HashCursor(d Document) (Cursor, error) {
	return nil, ErrNotImplemented
}

// IndexCursor is a legacy cursor kind that no document here provides.
// It always fails with ErrNotImplemented.
func IndexCursor(d Document) (Cursor, error) {
	return nil, ErrNotImplemented
}
