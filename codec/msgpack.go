package codec

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/flowmatic/idata"
)

func init() {
	Register(Msgpack{})
}

// Msgpack encodes documents as msgpack maps, writing the pairs in cursor
// order by hand rather than through a native Go map, so order is preserved
// and duplicate keys survive (the wire format allows them). Decoding walks
// the stream and rebuilds documents for every map it encounters.
type Msgpack struct{}

func (Msgpack) Name() string { return "msgpack" }

func (Msgpack) Encode(w io.Writer, d idata.Document) error {
	enc := msgpack.NewEncoder(w)
	return encodeMsgpackDocument(enc, d)
}

func encodeMsgpackDocument(enc *msgpack.Encoder, d idata.Document) error {
	if err := enc.EncodeMapLen(idata.Len(d)); err != nil {
		return errf("msgpack: %w", err)
	}
	c := d.Cursor()
	defer c.Destroy()
	for c.Next() {
		if err := enc.EncodeString(c.Key()); err != nil {
			return errf("msgpack: %w", err)
		}
		if err := encodeMsgpackValue(enc, c.Value()); err != nil {
			return err
		}
	}
	return nil
}

func encodeMsgpackValue(enc *msgpack.Encoder, v any) error {
	switch t := v.(type) {
	case idata.Document:
		return encodeMsgpackDocument(enc, t)
	case []idata.Document:
		if err := enc.EncodeArrayLen(len(t)); err != nil {
			return errf("msgpack: %w", err)
		}
		for _, nested := range t {
			if err := encodeMsgpackDocument(enc, nested); err != nil {
				return err
			}
		}
		return nil
	case []any:
		if err := enc.EncodeArrayLen(len(t)); err != nil {
			return errf("msgpack: %w", err)
		}
		for _, nested := range t {
			if err := encodeMsgpackValue(enc, nested); err != nil {
				return err
			}
		}
		return nil
	default:
		if err := enc.Encode(t); err != nil {
			return errf("msgpack: %w", err)
		}
		return nil
	}
}

func (Msgpack) Decode(r io.Reader) (idata.Document, error) {
	dec := msgpack.NewDecoder(r)
	v, err := decodeMsgpackValue(dec)
	if err != nil {
		return nil, err
	}
	d, ok := v.(idata.Document)
	if !ok {
		return nil, errf("msgpack: top-level value is not a map")
	}
	return d, nil
}

func decodeMsgpackValue(dec *msgpack.Decoder) (any, error) {
	code, err := dec.PeekCode()
	if err != nil {
		return nil, errf("msgpack: %w", err)
	}
	switch {
	case msgpcode.IsFixedMap(code) || code == msgpcode.Map16 || code == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return nil, errf("msgpack: %w", err)
		}
		d := idata.NewElementList()
		for i := 0; i < n; i++ {
			key, err := dec.DecodeString()
			if err != nil {
				return nil, errf("msgpack: %w", err)
			}
			v, err := decodeMsgpackValue(dec)
			if err != nil {
				return nil, err
			}
			d.Add(key, v)
		}
		return d, nil
	case msgpcode.IsFixedArray(code) || code == msgpcode.Array16 || code == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return nil, errf("msgpack: %w", err)
		}
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			v, err := decodeMsgpackValue(dec)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		v, err := dec.DecodeInterface()
		if err != nil {
			return nil, errf("msgpack: %w", err)
		}
		return v, nil
	}
}
