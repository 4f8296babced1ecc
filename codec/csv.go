package codec

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/flowmatic/idata"
)

func init() {
	Register(CSV{})
}

// CSV encodes a record list: the document holds a []idata.Document under
// RecordKey (default "records"), each record a flat document. The header
// row is the union of record keys in first-seen order; missing fields emit
// empty cells. Decoding rebuilds the same shape with string values.
type CSV struct {
	// RecordKey is the key holding the record array; defaults to "records".
	RecordKey string
	// Comma overrides the field separator; defaults to ','.
	Comma rune
}

func (CSV) Name() string { return "csv" }

func (c CSV) recordKey() string {
	if c.RecordKey != "" {
		return c.RecordKey
	}
	return "records"
}

func (c CSV) Encode(w io.Writer, d idata.Document) error {
	records, err := recordsOf(d, c.recordKey())
	if err != nil {
		return err
	}
	headers := recordHeaders(records)
	cw := csv.NewWriter(w)
	if c.Comma != 0 {
		cw.Comma = c.Comma
	}
	if err := cw.Write(headers); err != nil {
		return errf("csv: %w", err)
	}
	row := make([]string, len(headers))
	for _, rec := range records {
		for i, h := range headers {
			if v, ok := idata.Get(rec, h); ok && v != nil {
				row[i] = fmt.Sprint(v)
			} else {
				row[i] = ""
			}
		}
		if err := cw.Write(row); err != nil {
			return errf("csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// recordsOf extracts the record array from the document.
func recordsOf(d idata.Document, key string) ([]idata.Document, error) {
	v, ok := idata.Get(d, key)
	if !ok {
		return nil, errf("record key %q not found", key)
	}
	switch t := v.(type) {
	case []idata.Document:
		return t, nil
	case idata.Document:
		return []idata.Document{t}, nil
	default:
		return nil, errf("record key %q holds %T, not a document array", key, v)
	}
}

// recordHeaders unions record keys in first-seen order.
func recordHeaders(records []idata.Document) []string {
	var headers []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, k := range idata.Keys(rec) {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	return headers
}

func (c CSV) Decode(r io.Reader) (idata.Document, error) {
	cr := csv.NewReader(r)
	if c.Comma != 0 {
		cr.Comma = c.Comma
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errf("csv: %w", err)
	}
	out := idata.NewElementList()
	if len(rows) == 0 {
		out.Add(c.recordKey(), []idata.Document{})
		return out, nil
	}
	headers := rows[0]
	records := make([]idata.Document, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := idata.NewElementList()
		for i, h := range headers {
			if i < len(row) {
				rec.Add(h, row[i])
			}
		}
		records = append(records, rec)
	}
	out.Add(c.recordKey(), records)
	return out, nil
}
