package videostore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores vlogs on disk under the configured videos directory; the
// HTTP server serves that directory at /videos.
type Local struct {
	dir     string
	baseURL string
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create videos dir: %w", err)
	}
	return &Local{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (l *Local) Save(_ context.Context, filename string, reader io.Reader, _ int64, _ string) (string, error) {
	name := objectName(filename)

	out, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return name, nil
}

func (l *Local) URL(_ context.Context, name string) (string, error) {
	return fmt.Sprintf("%s/videos/%s", l.baseURL, name), nil
}
