package dto

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContent means the PDF yielded no usable text or tables on any
	// page. Nothing downstream can run without them.
	ErrNoContent = errors.New("no text or tables could be extracted")

	ErrMissingFile = errors.New("no file provided")
)

// ExtractionError is the only fatal parser error: the document could not
// be opened or produced no content at all. Everything else degrades to
// warnings on an otherwise returned record.
type ExtractionError struct {
	File string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.File, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the JSON error body returned by the HTTP layer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
