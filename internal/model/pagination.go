package model

import "errors"

// ErrInvalidPagination is returned for malformed limit/offset parameters.
var ErrInvalidPagination = errors.New("invalid pagination parameters")
