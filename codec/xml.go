package codec

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/flowmatic/idata"
)

func init() {
	Register(XML{})
}

// XML encodes a document as an element tree: one child element per pair,
// nesting for nested documents, repeated sibling elements for duplicate
// keys and document arrays. Decoding reverses the layout; elements without
// child elements become string values.
type XML struct {
	// Root overrides the root element name; defaults to "document".
	Root string
}

func (XML) Name() string { return "xml" }

func (x XML) rootName() string {
	if x.Root != "" {
		return x.Root
	}
	return "document"
}

func (x XML) Encode(w io.Writer, d idata.Document) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(x.rootName())
	addXMLPairs(root, d)
	doc.Indent(2)
	_, err := doc.WriteTo(w)
	if err != nil {
		return errf("xml: %w", err)
	}
	return nil
}

func addXMLPairs(parent *etree.Element, d idata.Document) {
	c := d.Cursor()
	defer c.Destroy()
	for c.Next() {
		addXMLValue(parent, c.Key(), c.Value())
	}
}

func addXMLValue(parent *etree.Element, key string, v any) {
	switch t := v.(type) {
	case idata.Document:
		addXMLPairs(parent.CreateElement(key), t)
	case []idata.Document:
		for _, nested := range t {
			addXMLPairs(parent.CreateElement(key), nested)
		}
	case []any:
		for _, nested := range t {
			addXMLValue(parent, key, nested)
		}
	case nil:
		parent.CreateElement(key)
	default:
		parent.CreateElement(key).SetText(fmt.Sprint(t))
	}
}

func (XML) Decode(r io.Reader) (idata.Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errf("xml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, errf("xml: no root element")
	}
	return fromXMLElement(root), nil
}

func fromXMLElement(el *etree.Element) idata.Document {
	d := idata.NewElementList()
	for _, child := range el.ChildElements() {
		if len(child.ChildElements()) > 0 {
			d.Add(child.Tag, fromXMLElement(child))
		} else {
			d.Add(child.Tag, child.Text())
		}
	}
	return d
}
