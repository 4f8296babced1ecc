package idata

import "errors"

// ErrNotImplemented reports use of an operation that is deliberately left
// unimplemented, such as the legacy tree/hash/index cursor kinds. Callers
// must not rely on these paths; everything else in the cursor protocol
// signals boundary conditions with booleans instead of errors.
var ErrNotImplemented = errors.New("idata: not implemented")
