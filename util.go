package idata

import (
	"reflect"

	"github.com/jinzhu/copier"
)

// cloneValue deep-copies an arbitrary leaf value. Scalars are returned
// as-is; composite values go through a reflective deep copy so that slices
// and maps held in a snapshot cannot be mutated through the original.
func cloneValue(v any) any {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128:
		return v
	}
	dst := reflect.New(reflect.TypeOf(v))
	if err := copier.CopyWithOption(dst.Interface(), v, copier.Option{DeepCopy: true}); err != nil {
		return v
	}
	return dst.Elem().Interface()
}

// isDocumentValue reports whether handing out v would expose nested
// document structure that a protective wrapper must intercept. Plain slices
// count when any element does: decoded arrays of objects arrive as []any
// holding documents.
func isDocumentValue(v any) bool {
	switch t := v.(type) {
	case Document, []Document:
		return true
	case []any:
		for _, nested := range t {
			if isDocumentValue(nested) {
				return true
			}
		}
	}
	return false
}
