package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrTooLarge        = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// AllowedTypes are the content types accepted for resumes and assessment files.
var AllowedTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
	"image/jpeg",
	"image/png",
	"image/gif",
}

// File is an upload read fully into memory after its type has been sniffed.
type File struct {
	Name      string
	MIME      string
	Extension string
	Data      []byte
}

func (f *File) Size() int64 { return int64(len(f.Data)) }

func (f *File) Reader() io.Reader { return bytes.NewReader(f.Data) }

// Read loads at most maxBytes from r and checks the sniffed content type.
func Read(r io.Reader, name string, maxBytes int64) (*File, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	mt := mimetype.Detect(data)
	if !allowed(mt) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}
	ext := mt.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(name))
	}
	return &File{Name: filepath.Base(name), MIME: mt.String(), Extension: ext, Data: data}, nil
}

// ReadHeader opens a multipart file header and delegates to Read.
func ReadHeader(fh *multipart.FileHeader, maxBytes int64) (*File, error) {
	if fh.Size > maxBytes {
		return nil, ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return Read(f, fh.Filename, maxBytes)
}

func allowed(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		for _, t := range AllowedTypes {
			if m.Is(t) {
				return true
			}
		}
	}
	return false
}
