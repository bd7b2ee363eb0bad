package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memDisk is an in-memory storage.Disk for handler tests.
type memDisk struct {
	files map[string][]byte
}

func newMemDisk() *memDisk { return &memDisk{files: map[string][]byte{}} }

func (d *memDisk) Put(path string, content []byte) error {
	d.files[path] = content
	return nil
}

func (d *memDisk) PutStream(path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	d.files[path] = data
	return nil
}

func (d *memDisk) Get(path string) ([]byte, error)  { return d.files[path], nil }
func (d *memDisk) Exists(path string) bool          { _, ok := d.files[path]; return ok }
func (d *memDisk) Size(path string) (int64, error)  { return int64(len(d.files[path])), nil }
func (d *memDisk) URL(path string) string           { return "https://cdn.test/" + path }
func (d *memDisk) Delete(path string) error         { delete(d.files, path); return nil }
func (d *memDisk) GetStream(path string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(d.files[path])), nil
}
func (d *memDisk) LastModified(string) (time.Time, error) { return time.Time{}, nil }

func multipartBody(t *testing.T, fieldName, fileName, folder string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)

	if folder != "" {
		require.NoError(t, mw.WriteField("folder", folder))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadStore(t *testing.T) {
	disk := newMemDisk()
	c := NewUploadController(disk, "portostore/products")

	body, contentType := multipartBody(t, "file", "photo.JPG", "")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	c.Store(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// Flat wire shape, no envelope: the upload client reads these two keys.
	var resp struct {
		URL      string `json:"url"`
		PublicID string `json:"public_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, strings.HasPrefix(resp.PublicID, "portostore/products/"))
	assert.True(t, strings.HasSuffix(resp.URL, ".jpg"), "extension lowercased: %s", resp.URL)
	assert.Len(t, disk.files, 1)
}

func TestUploadStoreCustomFolder(t *testing.T) {
	disk := newMemDisk()
	c := NewUploadController(disk, "portostore/products")

	body, contentType := multipartBody(t, "file", "banner.png", "portostore/banners")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	c.Store(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	for path := range disk.files {
		assert.True(t, strings.HasPrefix(path, "portostore/banners/"))
	}
}

func TestUploadMissingFile(t *testing.T) {
	c := NewUploadController(newMemDisk(), "portostore/products")

	body, contentType := multipartBody(t, "wrong_field", "photo.jpg", "")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	c.Store(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "file_missing", resp["error"])
}

func TestUploadRejectsEscapingFolder(t *testing.T) {
	for _, folder := range []string{"..", "../escaped", "a/../../escaped", "/etc/cron.d"} {
		disk := newMemDisk()
		c := NewUploadController(disk, "portostore/products")

		body, contentType := multipartBody(t, "file", "shell.sh", folder)
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		c.Store(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, "folder %q", folder)
		assert.Contains(t, rec.Body.String(), "folder_invalid")
		assert.Empty(t, disk.files, "folder %q must not be stored", folder)
	}
}
