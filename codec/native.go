package codec

import (
	"sort"

	"github.com/flowmatic/idata"
)

// toNative converts a document value tree into plain Go values: documents
// become map[string]any (duplicate keys collapse to the last occurrence)
// and document arrays become []any. Used by codecs whose underlying
// libraries marshal native trees.
func toNative(v any) any {
	switch t := v.(type) {
	case idata.Document:
		out := make(map[string]any)
		for k, nested := range idata.All(t) {
			out[k] = toNative(nested)
		}
		return out
	case []idata.Document:
		out := make([]any, len(t))
		for i, nested := range t {
			out[i] = toNative(nested)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, nested := range t {
			out[i] = toNative(nested)
		}
		return out
	default:
		return t
	}
}

// fromNative converts plain Go values into document form: maps become
// list-backed documents with keys in sorted order (native maps carry no
// order of their own), slices are converted element-wise.
func fromNative(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		d := idata.NewElementList()
		for _, k := range keys {
			d.Add(k, fromNative(t[k]))
		}
		return d
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, nested := range t {
			if ks, ok := k.(string); ok {
				m[ks] = nested
			}
		}
		return fromNative(m)
	case []any:
		out := make([]any, len(t))
		for i, nested := range t {
			out[i] = fromNative(nested)
		}
		return out
	default:
		return t
	}
}
