package idata

import "golang.org/x/text/language"

// NewCaseInsensitiveElementList returns a list-backed document whose key
// lookups and equality checks are case-insensitive under the given locale,
// while the originally supplied casing is what cursors return and
// serializers emit. The locale is fixed for the lifetime of the document;
// pass language.Und for the default locale.
//
// Every element produced by Add, by cursor insertion and by nested document
// creation carries the same folding policy, so keys differing only by case
// address the same element everywhere.
func NewCaseInsensitiveElementList(tag language.Tag) *ElementList {
	l := &ElementList{
		makeElement: func(key string, value any) Element {
			return NewCaseInsensitiveElement(tag, key, value)
		},
	}
	l.makeNested = func() Document { return NewCaseInsensitiveElementList(tag) }
	return l
}
