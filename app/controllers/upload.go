package controllers

import (
	"encoding/json"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/portostore/portostore/pkg/logger"
	"github.com/portostore/portostore/pkg/metrics"
	"github.com/portostore/portostore/pkg/storage"
)

// maxUploadBytes caps a single image upload at 10 MB.
const maxUploadBytes = 10 << 20

type UploadController struct {
	disk          storage.Disk
	defaultFolder string
}

func NewUploadController(disk storage.Disk, defaultFolder string) *UploadController {
	return &UploadController{disk: disk, defaultFolder: defaultFolder}
}

// The upload endpoint keeps the flat wire shape the storefront's upload
// client was written against: {url, public_id} on success, {error} on
// failure. It does not use the envelope the JSON API responds with.

func uploadJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

func uploadError(w http.ResponseWriter, status int, msg string) {
	uploadJSON(w, status, map[string]string{"error": msg})
}

// sanitizeFolder cleans a client-supplied folder and refuses anything that
// would resolve outside the storage root.
func sanitizeFolder(folder string) (string, bool) {
	folder = path.Clean(strings.TrimRight(folder, "/"))
	if !filepath.IsLocal(filepath.FromSlash(folder)) {
		return "", false
	}
	return folder, true
}

// Store accepts a multipart image upload ("file", optional "folder"), writes
// it to the configured disk under a generated public id, and returns the
// stable URL plus that id. A missing file part is a 400 "file_missing"; a
// folder escaping the storage root is a 400 "folder_invalid".
func (c *UploadController) Store(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		uploadError(w, http.StatusBadRequest, "file_missing")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		uploadError(w, http.StatusBadRequest, "file_missing")
		return
	}
	defer file.Close()

	folder := r.FormValue("folder")
	if strings.TrimSpace(folder) == "" {
		folder = c.defaultFolder
	}
	folder, ok := sanitizeFolder(folder)
	if !ok {
		uploadError(w, http.StatusBadRequest, "folder_invalid")
		return
	}

	// The public id carries the folder, the stored object keeps the
	// original extension.
	publicID := path.Join(folder, uuid.NewString())
	objectPath := publicID + strings.ToLower(filepath.Ext(header.Filename))

	if err := c.disk.PutStream(objectPath, file); err != nil {
		logger.WithCtx(r.Context()).Error("upload: store failed",
			"path", objectPath, "error", err)
		uploadError(w, http.StatusInternalServerError, "upload_failed")
		return
	}

	metrics.UploadBytes.Observe(float64(header.Size))
	uploadJSON(w, http.StatusOK, map[string]string{
		"url":       c.disk.URL(objectPath),
		"public_id": publicID,
	})
}
