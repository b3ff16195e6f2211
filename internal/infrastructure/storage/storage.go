package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/nexcruit/ats-backend/pkg/helpers"
	"github.com/nexcruit/ats-backend/pkg/upload"
)

// objectName builds "<folder>/<unix-millis>-<uuid><ext>" so names never collide.
func objectName(folder string, f *upload.File) string {
	return path.Join(folder, fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), f.Extension))
}

// Local writes files under Dir; they are served by the API under PublicPrefix.
type Local struct {
	Dir          string
	PublicPrefix string
}

func NewLocal(dir string) *Local {
	return &Local{Dir: dir, PublicPrefix: "/uploads"}
}

func (l *Local) Save(ctx context.Context, folder string, f *upload.File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := objectName(folder, f)
	dst := filepath.Join(l.Dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, f.Data, 0o644); err != nil {
		return "", err
	}
	return strings.TrimRight(l.PublicPrefix, "/") + "/" + name, nil
}

// Delete removes a file previously returned by Save. Unknown or already removed files are ignored.
func (l *Local) Delete(ctx context.Context, fileURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel, ok := strings.CutPrefix(fileURL, strings.TrimRight(l.PublicPrefix, "/")+"/")
	if !ok || !filepath.IsLocal(filepath.FromSlash(rel)) {
		return fmt.Errorf("not a local upload: %q", fileURL)
	}
	err := os.Remove(filepath.Join(l.Dir, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// GCS uploads into a bucket and returns the object's public URL.
type GCS struct {
	client  *gcs.Client
	bucket  string
	timeout time.Duration
}

func NewGCS(client *gcs.Client, bucket string) *GCS {
	return &GCS{client: client, bucket: bucket, timeout: 30 * time.Second}
}

func (g *GCS) Save(ctx context.Context, folder string, f *upload.File) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return helpers.UploadObject(ctx, g.client, g.bucket, objectName(folder, f), helpers.ObjectMeta{
		ContentType:  f.MIME,
		FileName:     f.Name,
		CacheControl: "private, max-age=3600",
	}, f.Reader())
}

func (g *GCS) Delete(ctx context.Context, fileURL string) error {
	objectPath, ok := helpers.ObjectPath(g.bucket, fileURL)
	if !ok {
		return fmt.Errorf("not an object of bucket %s: %q", g.bucket, fileURL)
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return helpers.DeleteObject(ctx, g.client, g.bucket, objectPath)
}
