package idata

import (
	"fmt"
	"log/slog"
	"strings"
)

const indentStep = "  "

// Dump renders a document as an indented human-readable listing, one pair
// per line, descending into nested documents and document arrays.
func Dump(d Document) string {
	var buf strings.Builder
	dumpDocument(&buf, "", d)
	return buf.String()
}

func dumpDocument(w *strings.Builder, indent string, d Document) {
	c := d.Cursor()
	defer c.Destroy()
	for c.Next() {
		switch v := c.Value().(type) {
		case Document:
			fmt.Fprintf(w, "%s%s:\n", indent, c.Key())
			dumpDocument(w, indent+indentStep, v)
		case []Document:
			for i, nested := range v {
				fmt.Fprintf(w, "%s%s[%d]:\n", indent, c.Key(), i)
				dumpDocument(w, indent+indentStep, nested)
			}
		default:
			fmt.Fprintf(w, "%s%s = %v\n", indent, c.Key(), v)
		}
	}
}

// DumpAttr renders a document as a slog attribute for debug logging.
func DumpAttr(key string, d Document) slog.Attr {
	return slog.String(key, Dump(d))
}
