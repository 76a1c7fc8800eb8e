package index

import "lol.mleku.dev/errorf"

// ErrInvalidEventID is returned when raw event id bytes are not a valid
// 32-byte hash. The index is left unmutated when this error is returned.
var ErrInvalidEventID = errorf.E("index: invalid event id")
