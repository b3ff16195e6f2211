package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// ObjectMeta describes how an uploaded object is served back.
type ObjectMeta struct {
	ContentType string
	// FileName is offered to browsers through an inline Content-Disposition.
	FileName     string
	CacheControl string
}

// UploadObject streams r into bucket/objectPath and returns the object's public URL.
func UploadObject(ctx context.Context, client *storage.Client, bucket, objectPath string, meta ObjectMeta, r io.Reader) (string, error) {
	wc := client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = meta.ContentType
	wc.CacheControl = meta.CacheControl
	if meta.FileName != "" {
		wc.ContentDisposition = mime.FormatMediaType("inline", map[string]string{"filename": meta.FileName})
	}
	wc.ChunkSize = 0 // single request; uploads are capped at MAX_UPLOAD_BYTES
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("gcs write %s: %w", objectPath, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("gcs close %s: %w", objectPath, err)
	}
	return PublicURL(bucket, objectPath), nil
}

// PublicURL builds the storage.googleapis.com URL of an object, escaping each path segment.
func PublicURL(bucket, objectPath string) string {
	segs := strings.Split(objectPath, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return "https://storage.googleapis.com/" + bucket + "/" + strings.Join(segs, "/")
}

// ObjectPath reverses PublicURL; ok is false when rawURL is not an object of bucket.
func ObjectPath(bucket, rawURL string) (string, bool) {
	rest, found := strings.CutPrefix(rawURL, "https://storage.googleapis.com/"+bucket+"/")
	if !found || rest == "" {
		return "", false
	}
	segs := strings.Split(rest, "/")
	for i, s := range segs {
		u, err := url.PathUnescape(s)
		if err != nil {
			return "", false
		}
		segs[i] = u
	}
	return strings.Join(segs, "/"), true
}

// DeleteObject removes bucket/objectPath; a missing object is not an error.
func DeleteObject(ctx context.Context, client *storage.Client, bucket, objectPath string) error {
	err := client.Bucket(bucket).Object(objectPath).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("gcs delete %s: %w", objectPath, err)
	}
	return nil
}
