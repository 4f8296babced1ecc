package codec

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/flowmatic/idata"
)

func TestJSONEncode(t *testing.T) {
	d := idata.NewElementList()
	d.Add("name", "alpha")
	d.Add("count", int64(2))
	child := idata.NewElementList()
	child.Add("x", true)
	d.Add("child", child)
	d.Add("nums", []any{int64(1), int64(2)})
	d.Add("name", "beta") // duplicate key

	var buf bytes.Buffer
	if err := (JSON{}).Encode(&buf, d); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"name":"alpha","count":2,"child":{"x":true},"nums":[1,2],"name":"beta"}`
	if got := buf.String(); got != want {
		t.Fatalf("Encode = %s, wanted %s", got, want)
	}
}

func TestJSONRoundTripPreservesOrderAndDuplicates(t *testing.T) {
	d := idata.NewElementList()
	d.Add("z", "last-first")
	d.Add("a", "then-a")
	d.Add("z", "dup")

	out := roundTrip(t, JSON{}, d)
	want := []idata.Pair{{Key: "z", Value: "last-first"}, {Key: "a", Value: "then-a"}, {Key: "z", Value: "dup"}}
	if got := idata.Pairs(out); !slices.Equal(got, want) {
		t.Fatalf("pairs = %v, wanted %v", got, want)
	}
}

func TestJSONDecodeNumbers(t *testing.T) {
	out, err := (JSON{}).Decode(strings.NewReader(`{"i":42,"f":1.5,"neg":-7}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v, _ := idata.Get(out, "i"); v != int64(42) {
		t.Errorf("i = %v (%T), wanted int64 42", v, v)
	}
	if v, _ := idata.Get(out, "f"); v != 1.5 {
		t.Errorf("f = %v (%T), wanted float64 1.5", v, v)
	}
	if v, _ := idata.Get(out, "neg"); v != int64(-7) {
		t.Errorf("neg = %v (%T), wanted int64 -7", v, v)
	}
}

func TestJSONDecodeNested(t *testing.T) {
	out, err := (JSON{}).Decode(strings.NewReader(`{"child":{"x":null,"y":"v"},"arr":[{"k":"0"},"plain"]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v, ok := idata.GetPath(out, "child/y"); !ok || v != "v" {
		t.Fatalf("child/y = (%v, %v)", v, ok)
	}
	if v, ok := idata.GetPath(out, "child/x"); !ok || v != nil {
		t.Fatalf("child/x = (%v, %v), wanted an explicit nil", v, ok)
	}
	arr, _ := idata.Get(out, "arr")
	items, ok := arr.([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("arr = %T, wanted a two-element slice", arr)
	}
	if _, ok := items[0].(idata.Document); !ok {
		t.Fatalf("arr[0] = %T, wanted a document", items[0])
	}
	if items[1] != "plain" {
		t.Fatalf("arr[1] = %v", items[1])
	}
}

func TestJSONDecodeRejectsNonObject(t *testing.T) {
	for _, input := range []string{`[1,2]`, `"str"`, `42`, ``} {
		if _, err := (JSON{}).Decode(strings.NewReader(input)); err == nil {
			t.Errorf("Decode(%q) succeeded, wanted an error", input)
		}
	}
}
