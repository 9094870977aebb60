// Package archive uploads exported workbooks to Google Cloud Storage.
package archive

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Archiver struct {
	client *storage.Client
	bucket string
}

// NewArchiver uses application default credentials.
func NewArchiver(ctx context.Context, bucket string) (*Archiver, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &Archiver{client: client, bucket: bucket}, nil
}

// ObjectName places an export under prefix/YYYY/MM/DD with a timestamped name.
func ObjectName(prefix, name string, at time.Time) string {
	at = at.UTC()
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	return path.Join(prefix, at.Format("2006/01/02"), at.Format("150405")+"_"+name)
}

// Upload writes data and returns the gs:// URI of the object.
func (a *Archiver) Upload(ctx context.Context, object, contentType string, data []byte) (string, error) {
	w := a.client.Bucket(a.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	uri := fmt.Sprintf("gs://%s/%s", a.bucket, object)
	log.Printf("☁️  Archived export to %s", uri)
	return uri, nil
}

func (a *Archiver) Close() error {
	return a.client.Close()
}
