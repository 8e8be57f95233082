package api

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/megaJingHua/PixelGym/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadSize caps a single uploaded file at 10 MiB.
const maxUploadSize = 10 << 20

// UploadHandler stores user-supplied files (avatars, battle images) in the
// configured object store and returns a download URL.
type UploadHandler struct {
	fileStorage storage.FileStorage
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(fileStorage storage.FileStorage) *UploadHandler {
	return &UploadHandler{fileStorage: fileStorage}
}

// Upload accepts a multipart form with a "file" part and returns the URL of
// the stored object.
func (h *UploadHandler) Upload(c *gin.Context) {
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Missing 'file' in multipart form data")
		return
	}
	if fileHeader.Size > maxUploadSize {
		abortWithError(c, http.StatusRequestEntityTooLarge, "File exceeds the upload size limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Keep the original extension so clients can infer the type from the URL.
	objectKey := fmt.Sprintf("uploads/%s/%s%s", viewer.ID, uuid.NewString(), filepath.Ext(fileHeader.Filename))

	url, err := h.fileStorage.Upload(c.Request.Context(), objectKey, contentType, fileHeader.Size, file)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to store file")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
