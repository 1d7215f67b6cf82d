package http

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/service"
	"linguabook-backend/internal/storage"
)

// DocumentHandler issues presigned upload and download URLs for timesheet
// evidence and invoice documents, and serves the local backend's raw
// upload/download endpoints those URLs point at.
type DocumentHandler struct {
	documents service.DocumentService
	store     storage.DocumentStorage
}

func NewDocumentHandler(documents service.DocumentService, store storage.DocumentStorage) *DocumentHandler {
	return &DocumentHandler{documents: documents, store: store}
}

type uploadURLRequest struct {
	Purpose     string `json:"purpose"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// CreateUploadURL hands the caller a one-shot upload URL plus the download
// URL to store as evidence_url or document_url once the upload completes.
func (h *DocumentHandler) CreateUploadURL(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	var req uploadURLRequest
	if !decodeBody(w, r, &req) {
		return
	}
	grant, err := h.documents.CreateUploadURL(r.Context(), actor, req.Purpose, req.Filename, req.ContentType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, grant)
}

func (h *DocumentHandler) CreateDownloadURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.documents.CreateDownloadURL(r.Context(), r.URL.Query().Get("key"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"download_url": url})
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, domain.UserRoleAdmin); !ok {
		return
	}
	if err := h.documents.Delete(r.Context(), r.URL.Query().Get("key")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUpload handles HTTP PUT requests to local presigned URLs
func (h *DocumentHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	contentType := r.Header.Get("Content-Type")
	switch contentType {
	case "application/pdf", "image/jpeg", "image/png":
	default:
		http.Error(w, "Invalid content type", http.StatusBadRequest)
		return
	}

	if err := h.store.SaveFile(key, r.Body); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	// Mimic an S3 response
	w.Header().Set("ETag", `"local-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

// HandleDownload handles HTTP GET requests to download documents
func (h *DocumentHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	file, err := h.store.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".pdf":
		contentType = "application/pdf"
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	io.Copy(w, file)
}

// RegisterDocumentRoutes mounts the raw upload and download endpoints the
// presigned URLs resolve to. These stay outside the auth middleware because
// the URL itself is the credential, matching how cloud presigned URLs work.
func RegisterDocumentRoutes(router *mux.Router, handler *DocumentHandler) {
	router.HandleFunc("/api/v1/upload/{token}", handler.HandleUpload).Methods("PUT")
	router.HandleFunc("/api/v1/download/{key}", handler.HandleDownload).Methods("GET")
}
