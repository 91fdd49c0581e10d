package handler

import (
	"CloudVault/config"
	"CloudVault/internal/dto"
	"CloudVault/internal/service"
	"CloudVault/model"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func parseFileID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("fileID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return 0, false
	}
	return id, true
}

func uploadOne(c *gin.Context, ownerID uint64, header *multipart.FileHeader) (*model.File, error) {
	if header.Size > config.AppConfig.MaxUploadBytes {
		return nil, fmt.Errorf("file too large: %w", service.ErrValidation)
	}
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType := header.Header.Get("Content-Type")
	return service.UploadFile(c.Request.Context(), ownerID, header.Filename, mimeType, header.Size, src)
}

// UploadFile stores a single file for the current user.
func UploadFile(c *gin.Context) {
	userID := currentUserID(c)
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	file, err := uploadOne(c, userID, header)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "uploaded",
		"file":    dto.FileMetaFrom(file),
	})
}

// UploadBulk stores several files for the current user.
func UploadBulk(c *gin.Context) {
	userID := currentUserID(c)
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}
	if len(headers) > config.AppConfig.BulkUploadMax {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many files"})
		return
	}

	created := make([]dto.FileMeta, 0, len(headers))
	for _, header := range headers {
		file, err := uploadOne(c, userID, header)
		if err != nil {
			fail(c, err)
			return
		}
		created = append(created, dto.FileMetaFrom(file))
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "bulk upload successful",
		"files":   created,
	})
}

// ListMyFiles returns the current user's own files.
func ListMyFiles(c *gin.Context) {
	files, err := service.ListOwnedFiles(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]dto.FileMeta, 0, len(files))
	for i := range files {
		out = append(out, dto.FileMetaFrom(&files[i]))
	}
	c.JSON(http.StatusOK, gin.H{"files": out})
}

// ListSharedWithMe returns files granted to the current user.
func ListSharedWithMe(c *gin.Context) {
	files, err := service.ListSharedWithMe(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]dto.FileMeta, 0, len(files))
	for i := range files {
		out = append(out, dto.FileMetaFrom(&files[i]))
	}
	c.JSON(http.StatusOK, gin.H{"files": out})
}

// GetFileMeta returns metadata for one accessible file.
func GetFileMeta(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}
	file, err := service.GetFileById(fileID)
	if err != nil {
		fail(c, err)
		return
	}
	if !service.CanAccess(file, currentUserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"file":         dto.FileMetaFrom(file),
		"download_url": fmt.Sprintf("/api/files/%d/download", file.ID),
	})
}

// DownloadFile redirects an authorized user to a presigned blob URL.
func DownloadFile(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}
	file, err := service.GetFileById(fileID)
	if err != nil {
		fail(c, err)
		return
	}
	if !service.CanAccess(file, currentUserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}
	signed, err := service.PresignDownloadURL(c.Request.Context(), file)
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, signed)
}
