package codec

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/flowmatic/idata"
)

func init() {
	Register(YAML{})
}

// YAML encodes and decodes documents through yaml.Node trees, preserving
// pair order and duplicate keys rather than collapsing through native maps.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (YAML) Encode(w io.Writer, d idata.Document) error {
	root, err := yamlNodeForDocument(d)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(root)
}

func yamlNodeForDocument(d idata.Document) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	c := d.Cursor()
	defer c.Destroy()
	for c.Next() {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Key()}
		valNode, err := yamlNodeForValue(c.Value())
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, keyNode, valNode)
	}
	return n, nil
}

func yamlNodeForValue(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case idata.Document:
		return yamlNodeForDocument(t)
	case []idata.Document:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, nested := range t {
			child, err := yamlNodeForDocument(nested)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, nested := range t {
			child, err := yamlNodeForValue(nested)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	default:
		var n yaml.Node
		if err := n.Encode(t); err != nil {
			return nil, errf("yaml: %w", err)
		}
		return &n, nil
	}
}

func (YAML) Decode(r io.Reader) (idata.Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		return nil, errf("yaml: %w", err)
	}
	v, err := fromYAMLNode(&root)
	if err != nil {
		return nil, err
	}
	d, ok := v.(idata.Document)
	if !ok {
		return nil, errf("yaml: top-level value is not a mapping")
	}
	return d, nil
}

func fromYAMLNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return idata.NewElementList(), nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.MappingNode:
		d := idata.NewElementList()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			d.Add(n.Content[i].Value, v)
		}
		return d, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := fromYAMLNode(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, errf("yaml: %w", err)
		}
		return v, nil
	}
}
