package uploads

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
)

// DefaultMaxBytes caps a single uploaded file at 10 MiB.
const DefaultMaxBytes int64 = 10 << 20

// AllowedTypes is the upload allowlist. Types are matched against the sniffed
// content, never against the client supplied Content-Type.
var AllowedTypes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
	"image/svg+xml",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
	"application/zip",
}

// Store persists an upload under name and returns the URL it is served from.
// Delete of a name that was never saved is not an error.
type Store interface {
	Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, name string) error
}

// File describes a stored upload.
type File struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`

	// Content is kept so callers can inspect small text uploads without
	// reading them back from the store.
	Content []byte `json:"-"`
}

// IsText reports whether the stored file was sniffed as plain text.
func (f *File) IsText() bool {
	return mimetype.EqualsAny(f.MimeType, "text/plain")
}

type Uploader struct {
	store    Store
	maxBytes int64
	allowed  []string
}

// NewUploader validates files against allowed (AllowedTypes when empty) and
// maxBytes (DefaultMaxBytes when not positive) before handing them to store.
func NewUploader(store Store, maxBytes int64, allowed ...string) *Uploader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if len(allowed) == 0 {
		allowed = AllowedTypes
	}
	return &Uploader{store: store, maxBytes: maxBytes, allowed: allowed}
}

func (u *Uploader) MaxBytes() int64 {
	return u.maxBytes
}

// Inspect reads and sniffs an uploaded file without storing it.
func (u *Uploader) Inspect(header *multipart.FileHeader) (*File, error) {
	if header.Size > u.maxBytes {
		return nil, errs.NewMaxBodySizeExceededError(u.maxBytes)
	}

	f, err := header.Open()
	if err != nil {
		return nil, errs.NewInvalidMultipartError(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, u.maxBytes+1))
	if err != nil {
		return nil, errs.NewInvalidMultipartError(err)
	}
	if int64(len(data)) > u.maxBytes {
		return nil, errs.NewMaxBodySizeExceededError(u.maxBytes)
	}
	if len(data) == 0 {
		return nil, errs.NewBadRequestError("uploaded file is empty")
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), u.allowed...) {
		return nil, errs.NewUnsupportedMediaTypeError(mtype.String(), u.allowed)
	}

	return &File{
		Filename:     uuid.NewString() + mtype.Extension(),
		OriginalName: header.Filename,
		Size:         int64(len(data)),
		MimeType:     mtype.String(),
		Content:      data,
	}, nil
}

// Accept inspects the file and persists it under a fresh random name.
func (u *Uploader) Accept(ctx context.Context, header *multipart.FileHeader) (*File, error) {
	file, err := u.Inspect(header)
	if err != nil {
		return nil, err
	}

	url, err := u.store.Save(ctx, file.Filename, file.MimeType, bytes.NewReader(file.Content), file.Size)
	if err != nil {
		return nil, errs.NewStorageBackendError("store upload", err)
	}
	file.URL = url
	return file, nil
}

// Discard removes an accepted file whose record could not be written.
func (u *Uploader) Discard(ctx context.Context, file *File) error {
	if err := u.store.Delete(ctx, file.Filename); err != nil {
		return errs.NewStorageBackendError("discard upload", err)
	}
	return nil
}
