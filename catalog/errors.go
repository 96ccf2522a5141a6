package catalog

import "errors"

// ErrMalformed indicates a response body that cannot be turned into a record.
var ErrMalformed = errors.New("malformed catalog response")
