package uploads

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wastesort-backend/internal/shared/server/respond"
	"wastesort-backend/internal/shared/storage/object"
	"wastesort-backend/internal/shared/telemetry"
	"wastesort-backend/internal/shared/util"
)

// maxUploadBytes caps uploaded photo size at 10 MiB.
const maxUploadBytes = 10 << 20

var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Handler accepts photo uploads and serves them back, so classification
// requests can reference locally stored images by URL.
type Handler struct {
	Store         object.ObjectStore
	PublicBaseURL string
}

func NewHandler(store object.ObjectStore, publicBaseURL string) *Handler {
	return &Handler{Store: store, PublicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// Upload handles POST /uploads with a multipart "file" part.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "missing_file", "multipart field 'file' is required", err.Error())
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large",
			fmt.Sprintf("file exceeds the %d byte limit", maxUploadBytes), nil)
		return
	}

	name, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_file_name", "file name is not acceptable", nil)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "upload_failed", "could not read uploaded file", nil)
		return
	}
	defer src.Close()

	sniff := make([]byte, 512)
	n, err := io.ReadFull(src, sniff)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		respond.Error(c, http.StatusInternalServerError, "upload_failed", "could not read uploaded file", nil)
		return
	}
	mime := http.DetectContentType(sniff[:n])
	if !allowedMIMETypes[mime] {
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_type",
			"only jpeg, png and webp images are accepted", gin.H{"detected": mime})
		return
	}

	body := io.MultiReader(bytes.NewReader(sniff[:n]), io.LimitReader(src, maxUploadBytes))
	key, size, mime, err := h.Store.Save(c.Request.Context(), name, body)
	if err != nil {
		telemetry.Error("upload.save_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "upload_failed", "could not store uploaded file", nil)
		return
	}

	telemetry.Info("upload.complete", map[string]any{
		"key":       key,
		"sizeBytes": size,
		"mimeType":  mime,
	})

	respond.JSON(c, http.StatusCreated, gin.H{
		"key":       key,
		"sizeBytes": size,
		"mimeType":  mime,
		"url":       fmt.Sprintf("%s/api/v1/files/%s", h.PublicBaseURL, key),
	})
}

// Serve handles GET /files/*key and streams the stored object back.
func (h *Handler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" || strings.Contains(key, "..") {
		respond.Error(c, http.StatusBadRequest, "invalid_key", "storage key is not acceptable", nil)
		return
	}

	reader, err := h.Store.Open(c.Request.Context(), key)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "no object stored under that key", nil)
		return
	}
	defer reader.Close()

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		telemetry.Warn("file.stream_interrupted", map[string]any{"key": key, "error": err.Error()})
	}
}
