package activity

import "errors"

// ErrInvalidInput is returned for nil entries, unknown types and negative paging.
var ErrInvalidInput = errors.New("invalid activity input")
