package domain

import "errors"

// ErrUnsupportedFormat is returned when an upload is neither a text file
// nor a PDF.
var ErrUnsupportedFormat = errors.New("only PDF or TXT supported")
