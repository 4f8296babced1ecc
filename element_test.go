package idata

import (
	"testing"

	"golang.org/x/text/language"
)

func TestElementBasics(t *testing.T) {
	e := NewElement("alpha", 1)
	if e.Key() != "alpha" || e.Value() != 1 {
		t.Fatalf("element = (%q, %v), wanted (alpha, 1)", e.Key(), e.Value())
	}
	if prev := e.SetKey("beta"); prev != "alpha" {
		t.Fatalf("SetKey returned %q, wanted alpha", prev)
	}
	if prev := e.SetValue(2); prev != 1 {
		t.Fatalf("SetValue returned %v, wanted 1", prev)
	}
	if e.Key() != "beta" || e.Value() != 2 {
		t.Fatalf("element = (%q, %v), wanted (beta, 2)", e.Key(), e.Value())
	}
	if !e.KeyEquals("beta") || e.KeyEquals("BETA") {
		t.Fatalf("plain element key equality must be case-sensitive")
	}
	if e.CompareKey("beta") != 0 || e.CompareKey("alpha") <= 0 || e.CompareKey("gamma") >= 0 {
		t.Fatalf("CompareKey ordering is wrong")
	}
}

func TestElementEqualityIsKeyOnly(t *testing.T) {
	e1 := NewElement("k", 1)
	e2 := NewElement("k", 999)
	e3 := NewElement("other", 1)
	if !e1.Equal(e2) {
		t.Fatalf("elements with equal keys must be equal regardless of value")
	}
	if e1.Equal(e3) {
		t.Fatalf("elements with different keys must not be equal")
	}
	if e1.Equal(nil) {
		t.Fatalf("Equal(nil) must be false")
	}
}

// Equal and KeyEquals must agree: e1.Equal(e2) == e1.KeyEquals(e2.Key()).
func TestElementEqualMatchesKeyEquals(t *testing.T) {
	elems := []Element{
		NewElement("a", 1),
		NewElement("b", 2),
		NewCaseInsensitiveElement(language.Und, "A", 3),
		NewCaseInsensitiveElement(language.Und, "B", 4),
	}
	for _, e1 := range elems {
		for _, e2 := range elems {
			if got, want := e1.Equal(e2), e1.KeyEquals(e2.Key()); got != want {
				t.Errorf("%v.Equal(%v) = %v, but KeyEquals(%q) = %v", e1, e2, got, e2.Key(), want)
			}
		}
	}
}

func TestCaseInsensitiveElement(t *testing.T) {
	e := NewCaseInsensitiveElement(language.Und, "Foo", 1)
	if !e.KeyEquals("FOO") || !e.KeyEquals("foo") || !e.KeyEquals("Foo") {
		t.Fatalf("case-insensitive element must match any casing")
	}
	if e.KeyEquals("bar") {
		t.Fatalf("case-insensitive element must still reject different keys")
	}
	if e.Key() != "Foo" {
		t.Fatalf("Key() = %q, wanted original casing Foo", e.Key())
	}
	if e.CompareKey("fOO") != 0 {
		t.Fatalf("CompareKey must order by folded key")
	}
}

func TestCaseInsensitiveElementSetKeyRecomputesShadow(t *testing.T) {
	e := NewCaseInsensitiveElement(language.Und, "Foo", 1)
	if prev := e.SetKey("Bar"); prev != "Foo" {
		t.Fatalf("SetKey returned %q, wanted Foo", prev)
	}
	if !e.KeyEquals("BAR") {
		t.Fatalf("shadow key must be recomputed after SetKey")
	}
	if e.KeyEquals("FOO") {
		t.Fatalf("old shadow key must not linger after SetKey")
	}
}

func TestCaseInsensitiveElementLocale(t *testing.T) {
	// In Turkish, lowercase of "I" is dotless "ı".
	tr := NewCaseInsensitiveElement(language.Turkish, "I", nil)
	if !tr.KeyEquals("ı") {
		t.Errorf("Turkish folding should equate I and ı")
	}
	und := NewCaseInsensitiveElement(language.Und, "I", nil)
	if und.KeyEquals("ı") {
		t.Errorf("default folding should not equate I and ı")
	}
	if !und.KeyEquals("i") {
		t.Errorf("default folding should equate I and i")
	}
}
