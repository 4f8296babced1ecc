package idata

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Element is a mutable key-value pair, the storage unit of sequence-backed
// documents. Equality and ordering are key-only: two elements with equal
// keys are the same element for lookup purposes regardless of value.
//
// The contract ties KeyEquals and Equal together: for any two elements,
// e1.Equal(e2) == e1.KeyEquals(e2.Key()).
type Element interface {
	Key() string
	// SetKey assigns a new key and returns the previous one.
	SetKey(key string) string
	Value() any
	// SetValue assigns a new value and returns the previous one.
	SetValue(value any) any
	// KeyEquals reports whether the given raw key matches this element's
	// key under the element's equality policy.
	KeyEquals(key string) bool
	// CompareKey orders this element's key against the given raw key,
	// returning -1, 0 or +1 under the element's ordering policy.
	CompareKey(key string) int
	// Equal reports whether the other element has a matching key.
	Equal(other Element) bool

	fmt.Stringer
}

type element struct {
	key   string
	value any
}

// NewElement returns a plain case-sensitive element.
func NewElement(key string, value any) Element {
	return &element{key, value}
}

func (e *element) Key() string { return e.key }

func (e *element) SetKey(key string) string {
	prev := e.key
	e.key = key
	return prev
}

func (e *element) Value() any { return e.value }

func (e *element) SetValue(value any) any {
	prev := e.value
	e.value = value
	return prev
}

func (e *element) KeyEquals(key string) bool {
	return e.key == key
}

func (e *element) CompareKey(key string) int {
	return strings.Compare(e.key, key)
}

func (e *element) Equal(other Element) bool {
	if other == nil {
		return false
	}
	return e.KeyEquals(other.Key())
}

func (e *element) String() string {
	return fmt.Sprintf("%s = %v", e.key, e.value)
}

// foldedElement compares and orders by a locale-lowercased shadow of its key
// while preserving and returning the originally supplied casing. The shadow
// is recomputed whenever the key changes.
type foldedElement struct {
	key    string
	folded string
	value  any
	tag    language.Tag
}

// NewCaseInsensitiveElement returns an element whose key comparisons are
// case-insensitive under the given locale. Use language.Und for the default
// locale.
func NewCaseInsensitiveElement(tag language.Tag, key string, value any) Element {
	return &foldedElement{key, foldKey(tag, key), value, tag}
}

func foldKey(tag language.Tag, key string) string {
	return cases.Lower(tag).String(key)
}

func (e *foldedElement) Key() string { return e.key }

func (e *foldedElement) SetKey(key string) string {
	prev := e.key
	e.key = key
	e.folded = foldKey(e.tag, key)
	return prev
}

func (e *foldedElement) Value() any { return e.value }

func (e *foldedElement) SetValue(value any) any {
	prev := e.value
	e.value = value
	return prev
}

func (e *foldedElement) KeyEquals(key string) bool {
	return e.folded == foldKey(e.tag, key)
}

func (e *foldedElement) CompareKey(key string) int {
	return strings.Compare(e.folded, foldKey(e.tag, key))
}

func (e *foldedElement) Equal(other Element) bool {
	if other == nil {
		return false
	}
	return e.KeyEquals(other.Key())
}

func (e *foldedElement) String() string {
	return fmt.Sprintf("%s = %v", e.key, e.value)
}
