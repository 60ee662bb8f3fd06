package upload

import (
	"context"
	"errors"
	"io"
	"time"
)

// MaxSize applies to every uploaded file.
const MaxSize = 5 * 1024 * 1024

var (
	ErrTooLarge        = errors.New("file exceeds 5 MiB")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrInvalid         = errors.New("invalid upload")
)

type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) error
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// File is one multipart part. Size is the declared size; the body is still
// capped while reading.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Result struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// allowList maps lower-case extensions to the only media type accepted for them.
type allowList map[string]string

var documentTypes = allowList{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

var photoTypes = allowList{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}
