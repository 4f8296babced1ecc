package codec

import (
	"io"
	"reflect"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/flowmatic/idata"
)

func init() {
	Register(CBOR{})
}

// CBOR encodes documents in canonical CBOR via a native map tree. Canonical
// map ordering means the original pair order is not preserved and duplicate
// keys collapse; decoded documents come back with keys in sorted order.
type CBOR struct{}

var (
	cborOnce sync.Once
	cborEnc  cbor.EncMode
	cborDec  cbor.DecMode
	cborErr  error
)

func cborModes() (cbor.EncMode, cbor.DecMode, error) {
	cborOnce.Do(func() {
		cborEnc, cborErr = cbor.CanonicalEncOptions().EncMode()
		if cborErr != nil {
			return
		}
		cborDec, cborErr = cbor.DecOptions{
			DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		}.DecMode()
	})
	return cborEnc, cborDec, cborErr
}

func (CBOR) Name() string { return "cbor" }

func (CBOR) Encode(w io.Writer, d idata.Document) error {
	em, _, err := cborModes()
	if err != nil {
		return errf("cbor: %w", err)
	}
	b, err := em.Marshal(toNative(d))
	if err != nil {
		return errf("cbor: %w", err)
	}
	_, err = w.Write(b)
	return err
}

func (CBOR) Decode(r io.Reader) (idata.Document, error) {
	_, dm, err := cborModes()
	if err != nil {
		return nil, errf("cbor: %w", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errf("cbor: %w", err)
	}
	var v any
	if err := dm.Unmarshal(data, &v); err != nil {
		return nil, errf("cbor: %w", err)
	}
	d, ok := fromNative(v).(idata.Document)
	if !ok {
		return nil, errf("cbor: top-level value is not a map")
	}
	return d, nil
}
