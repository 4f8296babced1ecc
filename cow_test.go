package idata

import (
	"slices"
	"sync"
	"testing"
)

func TestCopyOnWriteReadsShareDelegate(t *testing.T) {
	inner := newListOf(Pair{"a", 1}, Pair{"b", 2})
	cw := NewCopyOnWriteData(inner)
	if got := Keys(cw); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("keys = %v, wanted [a b]", got)
	}
	if v, _ := Get(cw, "b"); v != 2 {
		t.Fatalf("Get(b) = %v, wanted 2", v)
	}
	if cw.Copied() {
		t.Fatalf("scalar reads must not trigger the copy")
	}
}

func TestCopyOnWriteMutationCopies(t *testing.T) {
	inner := newListOf(Pair{"a", 1}, Pair{"b", 2})
	cw := NewCopyOnWriteData(inner)
	if !Put(cw, "b", 20) {
		t.Fatalf("Put failed")
	}
	if !cw.Copied() {
		t.Fatalf("mutation must trigger the copy")
	}
	if v, _ := Get(cw, "b"); v != 20 {
		t.Fatalf("wrapper value = %v, wanted 20", v)
	}
	if v, _ := Get(inner, "b"); v != 2 {
		t.Fatalf("delegate value = %v, the original must stay untouched", v)
	}
}

// Reading a nested document hands out a reference that could be mutated, so
// the read itself triggers the copy and the reference points into the clone.
func TestCopyOnWriteNestedReadCopies(t *testing.T) {
	inner := NewElementList()
	PutPath(inner, "child/x", 1)
	cw := NewCopyOnWriteData(inner)
	v, ok := Get(cw, "child")
	if !ok {
		t.Fatalf("Get(child) failed")
	}
	if !cw.Copied() {
		t.Fatalf("reading a document value must trigger the copy")
	}
	child, ok := v.(*CopyOnWriteData)
	if !ok {
		t.Fatalf("child is %T, wanted a copy-on-write wrapper", v)
	}
	Put(child, "x", 99)
	if got, _ := GetPath(inner, "child/x"); got != 1 {
		t.Fatalf("original child/x = %v, must stay 1", got)
	}
	if got, _ := GetPath(cw, "child/x"); got != 99 {
		t.Fatalf("wrapper child/x = %v, wanted 99", got)
	}
}

// Documents may hide inside plain slices (decoded arrays of objects arrive
// as []any). Reading such a slice must trigger the copy and hand out wrapped
// elements, or the delegate could be mutated through the raw reference.
func TestCopyOnWriteDocumentInsideAnySliceCopies(t *testing.T) {
	child := NewElementList()
	child.Add("x", 1)
	inner := NewElementList()
	inner.Add("items", []any{child, "plain"})
	cw := NewCopyOnWriteData(inner)

	v, ok := Get(cw, "items")
	if !ok {
		t.Fatalf("Get(items) failed")
	}
	if !cw.Copied() {
		t.Fatalf("reading a slice carrying a document must trigger the copy")
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		t.Fatalf("items = %T, wanted a two-element slice", v)
	}
	wrapped, ok := arr[0].(*CopyOnWriteData)
	if !ok {
		t.Fatalf("items[0] is %T, wanted a copy-on-write wrapper", arr[0])
	}
	if arr[1] != "plain" {
		t.Fatalf("items[1] = %v, non-document elements pass through", arr[1])
	}

	Put(wrapped, "x", 99)
	if got, _ := GetPath(inner, "items[0]/x"); got != 1 {
		t.Fatalf("original items[0]/x = %v, must stay 1", got)
	}
	if got, _ := GetPath(cw, "items[0]/x"); got != 99 {
		t.Fatalf("wrapper items[0]/x = %v, wanted 99", got)
	}
}

// A cursor opened before the copy keeps its logical position across the
// store swap by replaying its recorded movements against the clone.
func TestCopyOnWriteCursorSurvivesCopy(t *testing.T) {
	inner := newListOf(Pair{"a", 1}, Pair{"b", 2}, Pair{"c", 3})
	cw := NewCopyOnWriteData(inner)

	reader := cw.Cursor()
	defer reader.Destroy()
	reader.Next()
	reader.Next() // on b

	// trigger the copy through an unrelated cursor
	if !Put(cw, "c", 30) {
		t.Fatalf("Put failed")
	}
	if !cw.Copied() {
		t.Fatalf("copy did not happen")
	}

	if reader.Key() != "b" {
		t.Fatalf("reader = %q after the store swap, wanted b", reader.Key())
	}
	if !reader.Next() || reader.Key() != "c" || reader.Value() != 30 {
		t.Fatalf("reader should continue on the clone, got (%q, %v)", reader.Key(), reader.Value())
	}
}

func TestCopyOnWriteCursorKeyedReplay(t *testing.T) {
	inner := newListOf(Pair{"a", 1}, Pair{"b", 2}, Pair{"a", 3})
	cw := NewCopyOnWriteData(inner)

	reader := cw.Cursor()
	defer reader.Destroy()
	if !reader.FirstKey("a") || !reader.NextKey("a") {
		t.Fatalf("keyed positioning failed")
	}

	Put(cw, "b", 20)

	if reader.Key() != "a" || reader.Value() != 3 {
		t.Fatalf("reader = (%q, %v) after replay, wanted the second (a, 3)", reader.Key(), reader.Value())
	}
}

func TestCopyOnWriteCursorClone(t *testing.T) {
	inner := newListOf(Pair{"a", 1}, Pair{"b", 2}, Pair{"c", 3})
	cw := NewCopyOnWriteData(inner)
	c := cw.Cursor()
	defer c.Destroy()
	c.Next() // on a
	clone := c.Clone()
	defer clone.Destroy()
	clone.Next() // on b

	Put(cw, "c", 30)

	if c.Key() != "a" {
		t.Fatalf("original = %q, wanted a", c.Key())
	}
	if clone.Key() != "b" {
		t.Fatalf("clone = %q, wanted b", clone.Key())
	}
}

func TestCopyOnWriteWrapIdempotent(t *testing.T) {
	cw := NewCopyOnWriteData(newListOf(Pair{"a", 1}))
	if NewCopyOnWriteData(cw) != cw {
		t.Fatalf("re-wrapping a copy-on-write document should return it unchanged")
	}
}

func TestCopyOnWriteConcurrentCopyTrigger(t *testing.T) {
	inner := NewElementList()
	PutPath(inner, "child/x", 1)
	cw := NewCopyOnWriteData(inner)

	const goroutines = 16
	var wg sync.WaitGroup
	results := make([]any, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := cw.Cursor()
			defer c.Destroy()
			if c.FirstKey("child") {
				results[i] = c.Value()
			}
		}(i)
	}
	wg.Wait()

	if !cw.Copied() {
		t.Fatalf("document reads must have triggered the copy")
	}
	for i, v := range results {
		if _, ok := v.(*CopyOnWriteData); !ok {
			t.Fatalf("goroutine %d read %T, wanted a copy-on-write wrapper", i, v)
		}
	}
}
