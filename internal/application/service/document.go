package service

import (
	"context"
	"errors"
	"io"
)

var ErrUnsupportedDocument = errors.New("unsupported document type")

// TextExtractor pulls plain text out of an uploaded document. filename decides the format.
type TextExtractor interface {
	ExtractText(ctx context.Context, filename string, r io.Reader, size int64) (string, error)
}
