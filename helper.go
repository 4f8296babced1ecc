package idata

import (
	"iter"
	"slices"
	"strings"
)

// Pair is a key-value pair captured from a document.
type Pair struct {
	Key   string
	Value any
}

// Get returns the value of the first pair matching key under the document's
// key-equality policy.
func Get(d Document, key string) (any, bool) {
	c := d.Cursor()
	defer c.Destroy()
	if !c.FirstKey(key) {
		return nil, false
	}
	return c.Value(), true
}

// Put replaces the value of the first pair matching key, or appends a new
// pair at the end. Returns false if the document refused the mutation.
func Put(d Document, key string, value any) bool {
	c := d.Cursor()
	defer c.Destroy()
	if c.FirstKey(key) {
		return c.SetValue(value)
	}
	c.Last()
	return c.InsertAfter(key, value)
}

// Drop removes the first pair matching key.
func Drop(d Document, key string) bool {
	c := d.Cursor()
	defer c.Destroy()
	if !c.FirstKey(key) {
		return false
	}
	return c.Delete()
}

// Rename rekeys the first pair matching from, preserving its position.
func Rename(d Document, from, to string) bool {
	c := d.Cursor()
	defer c.Destroy()
	if !c.FirstKey(from) {
		return false
	}
	return c.SetKey(to)
}

// Len counts the pairs in d by cursor traversal.
func Len(d Document) int {
	c := d.Cursor()
	defer c.Destroy()
	var n int
	for c.Next() {
		n++
	}
	return n
}

// Keys returns all keys in iteration order, duplicates included.
func Keys(d Document) []string {
	var out []string
	for k := range All(d) {
		out = append(out, k)
	}
	return out
}

// Values returns all values in iteration order.
func Values(d Document) []any {
	var out []any
	for _, v := range All(d) {
		out = append(out, v)
	}
	return out
}

// All iterates the pairs of d in order.
func All(d Document) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		c := d.Cursor()
		defer c.Destroy()
		for c.Next() {
			if !yield(c.Key(), c.Value()) {
				return
			}
		}
	}
}

// Pairs collects the pairs of d in order.
func Pairs(d Document) []Pair {
	var out []Pair
	for k, v := range All(d) {
		out = append(out, Pair{k, v})
	}
	return out
}

// Append copies every pair of from onto the end of to, preserving order.
// Stops and returns false if to refuses an insertion.
func Append(from, to Document) bool {
	c := to.Cursor()
	defer c.Destroy()
	c.Last()
	for k, v := range All(from) {
		if !c.InsertAfter(k, v) {
			return false
		}
		c.Next()
	}
	return true
}

// Prepend copies every pair of from onto the front of to, preserving order.
func Prepend(from, to Document) bool {
	c := to.Cursor()
	defer c.Destroy()
	c.First()
	for k, v := range All(from) {
		if !c.InsertBefore(k, v) {
			return false
		}
	}
	return true
}

// Merge puts every pair of from into to, replacing values of matching keys
// and appending the rest.
func Merge(from, to Document) bool {
	for k, v := range All(from) {
		if !Put(to, k, v) {
			return false
		}
	}
	return true
}

// Clear deletes every pair. A document that refuses deletion (read-only
// wrappers) is left unchanged.
func Clear(d Document) {
	c := d.Cursor()
	defer c.Destroy()
	for c.First() {
		if !c.Delete() {
			return
		}
	}
}

// ClearExcept deletes every pair not named by preserve. For each preserved
// key the first matching pair survives with its original key casing intact,
// which matters for case-insensitive documents.
func ClearExcept(d Document, preserve ...string) {
	c := d.Cursor()
	defer c.Destroy()
	var saved []Pair
	for _, key := range preserve {
		if c.FirstKey(key) {
			saved = append(saved, Pair{c.Key(), c.Value()})
		}
	}
	Clear(d)
	for _, p := range saved {
		Put(d, p.Key, p.Value)
	}
}

// Duplicate deep-copies d into a new list-backed document. Nested documents
// and document arrays are duplicated recursively; other values are
// deep-copied.
func Duplicate(d Document) Document {
	out := NewElementList()
	c := out.Cursor()
	defer c.Destroy()
	for k, v := range All(d) {
		c.InsertAfter(k, duplicateValue(v))
		c.Next()
	}
	return out
}

func duplicateValue(v any) any {
	switch t := v.(type) {
	case Document:
		return Duplicate(t)
	case []Document:
		out := make([]Document, len(t))
		for i, nested := range t {
			out[i] = Duplicate(nested)
		}
		return out
	default:
		return cloneValue(t)
	}
}

// SortByKey stably reorders the pairs of d by lexicographic key order.
// Pairs with equal keys keep their relative order, so sorting twice equals
// sorting once.
func SortByKey(d Document) {
	pairs := Pairs(d)
	slices.SortStableFunc(pairs, func(a, b Pair) int {
		return strings.Compare(a.Key, b.Key)
	})
	replacePairs(d, pairs)
}

// Sanitize removes pairs with nil values, descending into nested documents
// and document arrays.
func Sanitize(d Document) {
	pairs := Pairs(d)
	kept := pairs[:0]
	for _, p := range pairs {
		if p.Value == nil {
			continue
		}
		switch t := p.Value.(type) {
		case Document:
			Sanitize(t)
		case []Document:
			for _, nested := range t {
				Sanitize(nested)
			}
		}
		kept = append(kept, p)
	}
	replacePairs(d, kept)
}

// replacePairs rewrites the contents of d in the given order. The rewrite
// goes through the cursor contract so any backing implementation works.
func replacePairs(d Document, pairs []Pair) {
	Clear(d)
	c := d.Cursor()
	defer c.Destroy()
	for _, p := range pairs {
		if !c.InsertAfter(p.Key, p.Value) {
			return
		}
		c.Next()
	}
}
