package codec

import (
	"io"

	hjson "github.com/hjson/hjson-go/v4"

	"github.com/flowmatic/idata"
)

func init() {
	Register(Hjson{})
}

// Hjson encodes and decodes the human-friendly JSON dialect. Encoding goes
// through hjson.OrderedMap so pair order survives; keys are unique in the
// output, so duplicate keys collapse to the last occurrence.
type Hjson struct{}

func (Hjson) Name() string { return "hjson" }

func (Hjson) Encode(w io.Writer, d idata.Document) error {
	b, err := hjson.Marshal(hjsonMapForDocument(d))
	if err != nil {
		return errf("hjson: %w", err)
	}
	_, err = w.Write(b)
	return err
}

func hjsonMapForDocument(d idata.Document) *hjson.OrderedMap {
	om := hjson.NewOrderedMap()
	for k, v := range idata.All(d) {
		om.Set(k, hjsonValueFor(v))
	}
	return om
}

func hjsonValueFor(v any) any {
	switch t := v.(type) {
	case idata.Document:
		return hjsonMapForDocument(t)
	case []idata.Document:
		out := make([]any, len(t))
		for i, nested := range t {
			out[i] = hjsonMapForDocument(nested)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, nested := range t {
			out[i] = hjsonValueFor(nested)
		}
		return out
	default:
		return t
	}
}

func (Hjson) Decode(r io.Reader) (idata.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errf("hjson: %w", err)
	}
	var v any
	if err := hjson.Unmarshal(data, &v); err != nil {
		return nil, errf("hjson: %w", err)
	}
	d, ok := fromHjsonValue(v).(idata.Document)
	if !ok {
		return nil, errf("hjson: top-level value is not a map")
	}
	return d, nil
}

// fromHjsonValue rebuilds documents from hjson's order-preserving decode
// tree (objects arrive as *hjson.OrderedMap).
func fromHjsonValue(v any) any {
	switch t := v.(type) {
	case *hjson.OrderedMap:
		d := idata.NewElementList()
		for _, k := range t.Keys {
			d.Add(k, fromHjsonValue(t.Map[k]))
		}
		return d
	case []any:
		out := make([]any, len(t))
		for i, nested := range t {
			out[i] = fromHjsonValue(nested)
		}
		return out
	default:
		return t
	}
}
