package videostore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// Store holds uploaded vlog assets and hands out the URL they are served
// from. Names returned by Save are what gets stored in a record's
// vlog_file field; absolute URLs in that field bypass the store entirely.
type Store interface {
	Save(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	URL(ctx context.Context, name string) (string, error)
}

// objectName prefixes the client-supplied filename with a fresh uuid so
// concurrent uploads of the same name never collide.
func objectName(filename string) string {
	return fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(filename))
}
