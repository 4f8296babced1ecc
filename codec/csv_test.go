package codec

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/flowmatic/idata"
)

func csvRecords(pairsPerRecord ...[]idata.Pair) idata.Document {
	records := make([]idata.Document, 0, len(pairsPerRecord))
	for _, pairs := range pairsPerRecord {
		rec := idata.NewElementList()
		for _, p := range pairs {
			rec.Add(p.Key, p.Value)
		}
		records = append(records, rec)
	}
	d := idata.NewElementList()
	d.Add("records", records)
	return d
}

func TestCSVEncode(t *testing.T) {
	d := csvRecords(
		[]idata.Pair{{Key: "name", Value: "alpha"}, {Key: "count", Value: 1}},
		[]idata.Pair{{Key: "name", Value: "beta"}, {Key: "extra", Value: "x"}},
	)
	var buf bytes.Buffer
	if err := (CSV{}).Encode(&buf, d); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "name,count,extra\nalpha,1,\nbeta,,x\n"
	if got := buf.String(); got != want {
		t.Fatalf("Encode = %q, wanted %q", got, want)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	d := csvRecords(
		[]idata.Pair{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}},
		[]idata.Pair{{Key: "a", Value: "3"}, {Key: "b", Value: "4"}},
	)
	out := roundTrip(t, CSV{}, d)
	v, _ := idata.Get(out, "records")
	records, ok := v.([]idata.Document)
	if !ok || len(records) != 2 {
		t.Fatalf("records = %T of len %d, wanted 2 documents", v, len(records))
	}
	if got := idata.Pairs(records[1]); !slices.Equal(got, []idata.Pair{{Key: "a", Value: "3"}, {Key: "b", Value: "4"}}) {
		t.Fatalf("records[1] = %v", got)
	}
}

func TestCSVCustomSeparatorAndKey(t *testing.T) {
	rec := idata.NewElementList()
	rec.Add("x", "1")
	d := idata.NewElementList()
	d.Add("rows", []idata.Document{rec})

	c := CSV{RecordKey: "rows", Comma: ';'}
	var buf bytes.Buffer
	if err := c.Encode(&buf, d); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := buf.String(); got != "x\n1\n" {
		t.Fatalf("Encode = %q", got)
	}
	out, err := c.Decode(strings.NewReader("a;b\n1;2\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v, ok := idata.GetPath(out, "rows[0]/b"); !ok || v != "2" {
		t.Fatalf("rows[0]/b = (%v, %v)", v, ok)
	}
}

func TestCSVSingleDocumentRecord(t *testing.T) {
	rec := idata.NewElementList()
	rec.Add("x", "1")
	d := idata.NewElementList()
	d.Add("records", rec) // a lone document counts as a one-record list

	var buf bytes.Buffer
	if err := (CSV{}).Encode(&buf, d); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := buf.String(); got != "x\n1\n" {
		t.Fatalf("Encode = %q", got)
	}
}

func TestCSVMissingRecordKey(t *testing.T) {
	d := idata.NewElementList()
	d.Add("other", 1)
	var buf bytes.Buffer
	if err := (CSV{}).Encode(&buf, d); err == nil {
		t.Fatalf("Encode without the record key succeeded, wanted an error")
	}
	d2 := idata.NewElementList()
	d2.Add("records", "not an array")
	if err := (CSV{}).Encode(&buf, d2); err == nil {
		t.Fatalf("Encode with a scalar record value succeeded, wanted an error")
	}
}

func TestCSVDecodeEmpty(t *testing.T) {
	out, err := (CSV{}).Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, ok := idata.Get(out, "records")
	if !ok {
		t.Fatalf("records key missing")
	}
	if records := v.([]idata.Document); len(records) != 0 {
		t.Fatalf("records = %v, wanted empty", records)
	}
}
