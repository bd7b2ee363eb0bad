package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskRoundTrip(t *testing.T) {
	disk := NewLocalDisk(LocalOptions{
		Root:    t.TempDir(),
		BaseURL: "http://localhost:8080/storage/",
	})

	path := "portostore/products/abc.jpg"
	require.NoError(t, disk.Put(path, []byte("image bytes")))

	assert.True(t, disk.Exists(path))

	data, err := disk.Get(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), data)

	size, err := disk.Size(path)
	require.NoError(t, err)
	assert.EqualValues(t, len("image bytes"), size)

	assert.Equal(t, "http://localhost:8080/storage/portostore/products/abc.jpg", disk.URL(path))

	require.NoError(t, disk.Delete(path))
	assert.False(t, disk.Exists(path))

	// Deleting a missing file is not an error.
	assert.NoError(t, disk.Delete(path))
}

func TestLocalDiskRefusesEscapingPaths(t *testing.T) {
	root := t.TempDir()
	disk := NewLocalDisk(LocalOptions{Root: root})

	for _, path := range []string{"../escape.sh", "a/../../escape.sh", "/etc/cron.d/job", ".."} {
		assert.Error(t, disk.Put(path, []byte("payload")), "path %q", path)
		assert.False(t, disk.Exists(path), "path %q", path)
		_, err := disk.Get(path)
		assert.Error(t, err, "path %q", path)
		assert.Error(t, disk.Delete(path), "path %q", path)
	}

	// Nothing landed beside the root.
	_, err := os.Stat(filepath.Join(filepath.Dir(root), "escape.sh"))
	assert.True(t, os.IsNotExist(err))
}

func TestManagerResolvesDefault(t *testing.T) {
	m := NewManager("local")
	m.Register("local", NewLocalDisk(LocalOptions{Root: t.TempDir()}))

	d, err := m.Default()
	require.NoError(t, err)
	assert.NotNil(t, d)

	_, err = m.Use("s3")
	assert.Error(t, err)
}
