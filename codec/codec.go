/*
Package codec translates documents to and from external formats.

Every codec consumes and produces documents purely through the cursor
contract, so any backing implementation (list, case-insensitive list, map,
or any of the wrapper documents) works interchangeably as input to every
encoder.

Text formats that have a natural ordered representation (JSON, YAML, Hjson,
XML) preserve pair order, and the token-level JSON and YAML paths preserve
duplicate keys as well. Formats with unique-key or canonical layouts (CBOR,
properties) collapse duplicates; their codecs document the deviation.
*/
package codec

import (
	"fmt"
	"io"
	"sort"

	"github.com/flowmatic/idata"
)

// Codec encodes and decodes documents in one external format.
type Codec interface {
	// Name returns the registry name of the format, e.g. "json".
	Name() string
	Encode(w io.Writer, d idata.Document) error
	Decode(r io.Reader) (idata.Document, error)
}

var registry = map[string]Codec{}

// Register adds a codec to the registry, replacing any codec of the same
// name.
func Register(c Codec) {
	registry[c.Name()] = c
}

// Lookup returns the registered codec for a format name.
func Lookup(name string) (Codec, bool) {
	c, ok := registry[name]
	return c, ok
}

// Names returns the registered format names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func errf(format string, args ...any) error {
	return fmt.Errorf("codec: "+format, args...)
}
