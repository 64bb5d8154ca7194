// Package objectstore holds the product image backends.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Disk stores images under a local directory that the web server exposes at
// URLPrefix.
type Disk struct {
	dir       string
	urlPrefix string
}

func NewDisk(dir, urlPrefix string) *Disk {
	return &Disk{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

// Dir returns the directory served at the URL prefix.
func (d *Disk) Dir() string {
	return d.dir
}

func (d *Disk) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	path, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func (d *Disk) PublicURL(key string) string {
	return joinURL(d.urlPrefix, key)
}

func (d *Disk) path(key string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if clean == string(filepath.Separator) {
		return "", fmt.Errorf("object key is required")
	}
	return filepath.Join(d.dir, clean), nil
}
