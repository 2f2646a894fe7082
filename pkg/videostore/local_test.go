package videostore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, "http://localhost:8080")
	require.NoError(t, err)

	name, err := store.Save(context.Background(), "my_vlog.mp4", strings.NewReader("video bytes"), 11, "video/mp4")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(name, "_my_vlog.mp4"))

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "video bytes", string(data))
}

func TestLocal_SaveStripsPath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, "http://localhost:8080")
	require.NoError(t, err)

	name, err := store.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"), 1, "")
	require.NoError(t, err)

	assert.NotContains(t, name, "/")
	_, err = os.Stat(filepath.Join(dir, name))
	require.NoError(t, err)
}

func TestLocal_URL(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "http://localhost:8080/")
	require.NoError(t, err)

	url, err := store.URL(context.Background(), "abc_my_vlog.mp4")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/videos/abc_my_vlog.mp4", url)
}

func TestLocal_UniqueNames(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	first, err := store.Save(context.Background(), "same.mp4", strings.NewReader("a"), 1, "")
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "same.mp4", strings.NewReader("b"), 1, "")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
