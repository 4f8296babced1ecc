package codec

import (
	"fmt"
	"io"
	"strconv"

	"github.com/magiconair/properties"

	"github.com/flowmatic/idata"
)

func init() {
	Register(Properties{})
}

// Properties encodes a document as Java-style properties, one line per leaf
// value, keyed by the leaf's fully-qualified path ("a/b[0]/c"). Decoding
// rebuilds the nested structure by putting each property back through the
// path helpers. All values decode as strings.
type Properties struct{}

func (Properties) Name() string { return "properties" }

func (Properties) Encode(w io.Writer, d idata.Document) error {
	p := properties.NewProperties()
	if err := flattenDocument(p, "", d); err != nil {
		return err
	}
	if _, err := p.Write(w, properties.UTF8); err != nil {
		return errf("properties: %w", err)
	}
	return nil
}

func flattenDocument(p *properties.Properties, prefix string, d idata.Document) error {
	for k, v := range idata.All(d) {
		path := k
		if prefix != "" {
			path = prefix + "/" + k
		}
		if err := flattenValue(p, path, v); err != nil {
			return err
		}
	}
	return nil
}

func flattenValue(p *properties.Properties, path string, v any) error {
	switch t := v.(type) {
	case idata.Document:
		return flattenDocument(p, path, t)
	case []idata.Document:
		for i, nested := range t {
			if err := flattenDocument(p, path+"["+strconv.Itoa(i)+"]", nested); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for i, nested := range t {
			if err := flattenValue(p, path+"["+strconv.Itoa(i)+"]", nested); err != nil {
				return err
			}
		}
		return nil
	case nil:
		return nil
	default:
		if _, _, err := p.Set(path, fmt.Sprint(t)); err != nil {
			return errf("properties: %w", err)
		}
		return nil
	}
}

func (Properties) Decode(r io.Reader) (idata.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errf("properties: %w", err)
	}
	p, err := properties.Load(data, properties.UTF8)
	if err != nil {
		return nil, errf("properties: %w", err)
	}
	d := idata.NewElementList()
	for _, key := range p.Keys() {
		value, _ := p.Get(key)
		if !idata.PutPath(d, key, value) {
			return nil, errf("properties: cannot address %q", key)
		}
	}
	return d, nil
}
