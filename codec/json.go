package codec

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/flowmatic/idata"
)

func init() {
	Register(JSON{})
}

// JSON encodes documents as JSON objects and decodes JSON objects into
// list-backed documents. Both directions run at token level, so pair order
// is preserved and duplicate keys survive a round trip, which a plain
// map-based marshal could not guarantee.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Encode(w io.Writer, d idata.Document) error {
	bw := bufio.NewWriter(w)
	if err := writeJSONDocument(bw, d); err != nil {
		return err
	}
	return bw.Flush()
}

func writeJSONDocument(w *bufio.Writer, d idata.Document) error {
	w.WriteByte('{')
	c := d.Cursor()
	defer c.Destroy()
	first := true
	for c.Next() {
		if !first {
			w.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(c.Key())
		if err != nil {
			return err
		}
		w.Write(key)
		w.WriteByte(':')
		if err := writeJSONValue(w, c.Value()); err != nil {
			return err
		}
	}
	return w.WriteByte('}')
}

func writeJSONValue(w *bufio.Writer, v any) error {
	switch t := v.(type) {
	case idata.Document:
		return writeJSONDocument(w, t)
	case []idata.Document:
		w.WriteByte('[')
		for i, nested := range t {
			if i > 0 {
				w.WriteByte(',')
			}
			if err := writeJSONDocument(w, nested); err != nil {
				return err
			}
		}
		return w.WriteByte(']')
	case []any:
		w.WriteByte('[')
		for i, nested := range t {
			if i > 0 {
				w.WriteByte(',')
			}
			if err := writeJSONValue(w, nested); err != nil {
				return err
			}
		}
		return w.WriteByte(']')
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
}

func (JSON) Decode(r io.Reader) (idata.Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, errf("json: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errf("json: top-level value is not an object")
	}
	return decodeJSONObject(dec)
}

func decodeJSONObject(dec *json.Decoder) (idata.Document, error) {
	d := idata.NewElementList()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errf("json: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errf("json: object key is %T, not string", keyTok)
		}
		v, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		d.Add(key, v)
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, errf("json: %w", err)
	}
	return d, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, errf("json: %w", err)
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			var out []any
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			if _, err := dec.Token(); err != nil { // closing bracket
				return nil, errf("json: %w", err)
			}
			return out, nil
		default:
			return nil, errf("json: unexpected delimiter %v", t)
		}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, errf("json: bad number %q", t.String())
		}
		return f, nil
	default:
		return t, nil
	}
}
