package api

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/dagaz/internal/storage"
)

const (
	mediaDir       = "media"
	maxUploadBytes = 50 << 20 // 50 MB
)

// MediaHandler accepts and serves media files. Every successful upload
// also records a media activity for today.
type MediaHandler struct {
	files   storage.Provider
	tracker *Handler
}

// NewMediaHandler creates a handler storing files under the data
// directory's media/ subfolder. tracker records the upload as an activity.
func NewMediaHandler(files storage.Provider, tracker *Handler) *MediaHandler {
	return &MediaHandler{files: files, tracker: tracker}
}

// safeName validates that the filename is a plain name (no path
// separators, no traversal) and returns its path under the media dir.
func safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	return path.Join(mediaDir, cleaned), nil
}

// ServeFile handles GET /media/{filename}.
func (h *MediaHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	rel, err := safeName(chi.URLParam(r, "filename"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	abs, err := h.files.Abs(rel)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.ServeFile(w, r, abs)
}

// ListFiles handles GET /api/media.
//
//	@Summary		List uploaded media files
//	@Tags			media
//	@Produce		json
//	@Success		200	{object}	MediaListResponse
//	@Security		BearerAuth
//	@Router			/media [get]
func (h *MediaHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	infos, err := h.files.List(mediaDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to list media files"))
		return
	}
	if infos == nil {
		infos = []storage.FileInfo{}
	}
	writeJSON(w, http.StatusOK, MediaListResponse{Files: infos})
}

// DeleteFile handles DELETE /api/media/{filename}. Removing a file does
// not touch activity records: the upload happened either way.
//
//	@Summary		Delete an uploaded media file
//	@Tags			media
//	@Param			filename	path	string	true	"File name"
//	@Success		204
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/media/{filename} [delete]
func (h *MediaHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	rel, err := safeName(chi.URLParam(r, "filename"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err := h.files.Delete(rel); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeJSON(w, http.StatusNotFound, errorBody("file not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to delete file"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Upload handles POST /api/media (multipart/form-data, field "file").
//
//	@Summary		Upload a media file and record a media activity
//	@Tags			media
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"File to upload"
//	@Success		201		{object}	MediaUploadResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/media [post]
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	rel, err := safeName(header.Filename)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to read file"))
		return
	}
	if err := h.files.Write(rel, content); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to write file"))
		return
	}

	act, merged, err := h.tracker.store.TrackMedia(header.Filename)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("file stored but tracking failed"))
		return
	}
	kind := "created"
	if merged {
		kind = "merged"
	}
	h.tracker.afterWrite(kind, act)

	writeJSON(w, http.StatusCreated, MediaUploadResponse{
		Filename: header.Filename,
		Size:     int64(len(content)),
		URL:      "/media/" + header.Filename,
		Activity: act,
	})
}
