package idata

import (
	"errors"
	"slices"
	"testing"
)

var (
	_ Document = (*ElementList)(nil)
	_ Document = (*MapData)(nil)
	_ Document = (*ReadOnlyData)(nil)
	_ Document = (*ImmutableData)(nil)
	_ Document = (*CopyOnWriteData)(nil)
)

func TestSharedCursor(t *testing.T) {
	d := newListOf(Pair{"a", 1}, Pair{"b", 2})
	c := NewSharedCursor(d)
	defer c.Destroy()
	if c.Owner() != Document(d) {
		t.Fatalf("Owner = %v, wanted the opened document", c.Owner())
	}
	if !c.Next() || c.Key() != "a" {
		t.Fatalf("shared cursor must traverse like a plain cursor")
	}
	clone := c.Clone()
	defer clone.Destroy()
	sc, ok := clone.(SharedCursor)
	if !ok {
		t.Fatalf("Clone of a shared cursor is %T, wanted a SharedCursor", clone)
	}
	if sc.Owner() != Document(d) {
		t.Fatalf("clone lost its owner")
	}
}

func TestLegacyCursorKinds(t *testing.T) {
	d := newListOf(Pair{"a", 1})
	for name, fn := range map[string]func(Document) (Cursor, error){
		"tree":  TreeCursor,
		"hash":  HashCursor,
		"index": IndexCursor,
	} {
		c, err := fn(d)
		if c != nil {
			t.Errorf("%s: cursor = %v, wanted nil", name, c)
		}
		if !errors.Is(err, ErrNotImplemented) {
			t.Errorf("%s: err = %v, wanted ErrNotImplemented", name, err)
		}
	}
}

// The same pair sequence behaves identically through the generic helpers no
// matter which backing store holds it.
func TestCrossBackingEquivalence(t *testing.T) {
	pairs := []Pair{{"one", 1}, {"two", 2}, {"three", 3}}
	backings := map[string]Document{
		"list": newListOf(pairs...),
		"map":  newMapOf(pairs...),
	}
	for name, d := range backings {
		if got := Pairs(d); !slices.Equal(got, pairs) {
			t.Errorf("%s: pairs = %v, wanted %v", name, got, pairs)
		}
	}

	// content moves freely between backings
	fromMap := newMapOf(pairs...)
	toList := NewElementList()
	if !Append(fromMap, toList) {
		t.Fatalf("Append from map to list failed")
	}
	if got := Pairs(toList); !slices.Equal(got, pairs) {
		t.Fatalf("pairs after transfer = %v, wanted %v", got, pairs)
	}
}
