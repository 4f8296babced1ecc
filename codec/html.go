package codec

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/flowmatic/idata"
)

func init() {
	Register(HTML{})
}

// HTML renders a document as nested tables, one row per pair. It is an
// emitter only; Decode fails with ErrNotImplemented like the other
// deliberately unsupported operations.
type HTML struct{}

func (HTML) Name() string { return "html" }

func (HTML) Encode(w io.Writer, d idata.Document) error {
	bw := bufio.NewWriter(w)
	writeHTMLDocument(bw, d)
	return bw.Flush()
}

func writeHTMLDocument(w *bufio.Writer, d idata.Document) {
	w.WriteString("<table><tbody>")
	c := d.Cursor()
	defer c.Destroy()
	for c.Next() {
		fmt.Fprintf(w, "<tr><th>%s</th><td>", html.EscapeString(c.Key()))
		writeHTMLValue(w, c.Value())
		w.WriteString("</td></tr>")
	}
	w.WriteString("</tbody></table>")
}

func writeHTMLValue(w *bufio.Writer, v any) {
	switch t := v.(type) {
	case idata.Document:
		writeHTMLDocument(w, t)
	case []idata.Document:
		for _, nested := range t {
			writeHTMLDocument(w, nested)
		}
	case []any:
		w.WriteString("<ul>")
		for _, nested := range t {
			w.WriteString("<li>")
			writeHTMLValue(w, nested)
			w.WriteString("</li>")
		}
		w.WriteString("</ul>")
	case nil:
	default:
		w.WriteString(html.EscapeString(fmt.Sprint(t)))
	}
}

func (HTML) Decode(r io.Reader) (idata.Document, error) {
	return nil, fmt.Errorf("html: decoding not supported: %w", idata.ErrNotImplemented)
}
