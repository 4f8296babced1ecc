package idata

import (
	"reflect"
	"strconv"
	"strings"
)

// Fully-qualified paths address nested structure: components separated by
// '/', with an optional trailing [i] indexing into a slice value, e.g.
// "a/b[0]/c". Path addressing is a pure algorithm over the cursor contract
// and works with any document implementation.

type pathStep struct {
	key      string
	index    int
	hasIndex bool
}

func parsePath(path string) []pathStep {
	parts := strings.Split(path, "/")
	steps := make([]pathStep, 0, len(parts))
	for _, part := range parts {
		steps = append(steps, parseStep(part))
	}
	return steps
}

func parseStep(part string) pathStep {
	if !strings.HasSuffix(part, "]") {
		return pathStep{key: part}
	}
	open := strings.LastIndexByte(part, '[')
	if open < 0 {
		return pathStep{key: part}
	}
	idx, err := strconv.Atoi(part[open+1 : len(part)-1])
	if err != nil || idx < 0 {
		// not an index; treat the whole component as a literal key
		return pathStep{key: part}
	}
	return pathStep{key: part[:open], index: idx, hasIndex: true}
}

// GetPath resolves a fully-qualified path and returns the addressed value.
func GetPath(d Document, path string) (any, bool) {
	steps := parsePath(path)
	var cur any = d
	for _, st := range steps {
		doc, ok := cur.(Document)
		if !ok {
			return nil, false
		}
		v, ok := Get(doc, st.key)
		if !ok {
			return nil, false
		}
		if st.hasIndex {
			v, ok = indexValue(v, st.index)
			if !ok {
				return nil, false
			}
		}
		cur = v
	}
	return cur, true
}

func indexValue(v any, i int) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if i < 0 || i >= rv.Len() {
		return nil, false
	}
	return rv.Index(i).Interface(), true
}

// PutPath stores value at a fully-qualified path, creating intermediate
// documents and growing document arrays as needed. Intermediate documents
// are created through the cursor contract so they match the family of their
// parent (a case-insensitive parent gets case-insensitive children).
// Returns false if any document along the way refuses a mutation.
func PutPath(d Document, path string, value any) bool {
	steps := parsePath(path)
	doc := d
	for i, st := range steps {
		last := i == len(steps)-1
		if last {
			return putStep(doc, st, value)
		}
		next, ok := descend(doc, st)
		if !ok {
			return false
		}
		doc = next
	}
	return false
}

// descend resolves one intermediate step, creating the missing structure.
func descend(doc Document, st pathStep) (Document, bool) {
	if !st.hasIndex {
		if v, ok := Get(doc, st.key); ok {
			if child, ok := v.(Document); ok {
				return child, true
			}
		}
		child := insertChildDocument(doc, st.key)
		if child == nil {
			return nil, false
		}
		return child, true
	}

	arr, _ := Get(doc, st.key)
	docs, _ := arr.([]Document)
	grew := false
	for len(docs) <= st.index {
		child := newSiblingDocument(doc)
		docs = append(docs, child)
		grew = true
	}
	if docs[st.index] == nil {
		docs[st.index] = newSiblingDocument(doc)
		grew = true
	}
	if grew || arr == nil {
		if !Put(doc, st.key, docs) {
			return nil, false
		}
	}
	return docs[st.index], true
}

func putStep(doc Document, st pathStep, value any) bool {
	if !st.hasIndex {
		return Put(doc, st.key, value)
	}
	existing, _ := Get(doc, st.key)
	rv := reflect.ValueOf(existing)
	if existing != nil && rv.Kind() == reflect.Slice && st.index < rv.Len() {
		elem := rv.Index(st.index)
		val := reflect.ValueOf(value)
		if val.IsValid() && val.Type().AssignableTo(elem.Type()) {
			elem.Set(val)
			return true
		}
	}
	arr, _ := existing.([]any)
	for len(arr) <= st.index {
		arr = append(arr, nil)
	}
	arr[st.index] = value
	return Put(doc, st.key, arr)
}

// DropPath removes the value addressed by a fully-qualified path. Dropping
// an indexed component removes that slot from the slice.
func DropPath(d Document, path string) bool {
	parent, st, ok := resolveParent(d, path)
	if !ok {
		return false
	}
	if !st.hasIndex {
		return Drop(parent, st.key)
	}
	v, ok := Get(parent, st.key)
	if !ok {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || st.index >= rv.Len() {
		return false
	}
	shrunk := reflect.AppendSlice(rv.Slice(0, st.index), rv.Slice(st.index+1, rv.Len()))
	return Put(parent, st.key, shrunk.Interface())
}

// RenamePath rekeys the final component of a fully-qualified path in place.
// The final component must not carry an index.
func RenamePath(d Document, path, newKey string) bool {
	parent, st, ok := resolveParent(d, path)
	if !ok || st.hasIndex {
		return false
	}
	return Rename(parent, st.key, newKey)
}

// resolveParent walks to the document containing the final path component.
func resolveParent(d Document, path string) (Document, pathStep, bool) {
	steps := parsePath(path)
	if len(steps) == 0 {
		return nil, pathStep{}, false
	}
	final := steps[len(steps)-1]
	var cur any = d
	for _, st := range steps[:len(steps)-1] {
		doc, ok := cur.(Document)
		if !ok {
			return nil, pathStep{}, false
		}
		v, ok := Get(doc, st.key)
		if !ok {
			return nil, pathStep{}, false
		}
		if st.hasIndex {
			v, ok = indexValue(v, st.index)
			if !ok {
				return nil, pathStep{}, false
			}
		}
		cur = v
	}
	doc, ok := cur.(Document)
	if !ok {
		return nil, pathStep{}, false
	}
	return doc, final, true
}

// insertChildDocument appends a new empty nested document of the parent's
// family under the given key.
func insertChildDocument(d Document, key string) Document {
	c := d.Cursor()
	defer c.Destroy()
	c.Last()
	return c.InsertDocumentAfter(key)
}

// newSiblingDocument creates an empty document of the same family as d for
// use as a document-array slot.
func newSiblingDocument(d Document) Document {
	if f, ok := d.(interface{ newDocument() Document }); ok {
		return f.newDocument()
	}
	return NewElementList()
}
