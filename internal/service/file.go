package service

import (
	"CloudVault/config"
	"CloudVault/internal/repo"
	"CloudVault/internal/storage"
	"CloudVault/model"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/context"
	"gorm.io/gorm"
)

// UploadFile stores the content in the object store and creates the
// file record. The object key is random so filenames never collide in
// the bucket.
func UploadFile(ctx context.Context, ownerID uint64, filename, mimeType string, size int64, content io.Reader) (*model.File, error) {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	objectKey := config.AppConfig.UploadFolder + "/" + uuid.NewString()

	err := storage.Default.PutObject(ctx, config.AppConfig.BucketName, objectKey, content, size, storage.PutOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("put object: %w: %v", ErrUpstream, err)
	}

	file := &model.File{
		OwnerID:      ownerID,
		Filename:     filename,
		MimeType:     mimeType,
		Size:         size,
		ObjectKey:    objectKey,
		ResourceKind: model.KindForMime(mimeType),
		UploadedAt:   time.Now(),
	}
	if err := repo.Db.Create(file).Error; err != nil {
		// The record failed, do not leak the blob.
		_ = storage.Default.RemoveObject(ctx, config.AppConfig.BucketName, objectKey)
		return nil, err
	}
	return file, nil
}

// GetFileById returns a file with its grant set loaded.
func GetFileById(fileID uint64) (*model.File, error) {
	var file model.File
	err := repo.Db.Preload("Grants").Where("id = ?", fileID).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("file %d: %w", fileID, ErrNotFound)
		}
		return nil, err
	}
	return &file, nil
}

// ListOwnedFiles returns the user's own files, newest first.
func ListOwnedFiles(ownerID uint64) ([]model.File, error) {
	var files []model.File
	err := repo.Db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

// ListSharedWithMe returns files granted to the user, newest first.
func ListSharedWithMe(userID uint64) ([]model.File, error) {
	var files []model.File
	err := repo.Db.
		Joins("JOIN file_grant ON file_grant.file_id = file.id").
		Where("file_grant.user_id = ?", userID).
		Order("file.created_at DESC").
		Find(&files).Error
	return files, err
}

// PresignDownloadURL returns a time-limited direct URL for the file's
// blob, with the original filename in the content disposition.
func PresignDownloadURL(ctx context.Context, file *model.File) (string, error) {
	if storage.Default == nil {
		return "", fmt.Errorf("storage not initialized: %w", ErrUpstream)
	}
	params := map[string]string{
		"response-content-disposition": fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(file.Filename)),
		"response-content-type":        file.MimeType,
	}
	signed, err := storage.Default.PresignedGetObject(ctx, config.AppConfig.BucketName, file.ObjectKey, config.AppConfig.PresignExpiry, params)
	if err != nil {
		return "", fmt.Errorf("presign: %w: %v", ErrUpstream, err)
	}
	return signed, nil
}

// OpenFileObject opens the file's blob for streaming.
func OpenFileObject(ctx context.Context, file *model.File) (io.ReadCloser, *storage.ObjectInfo, error) {
	if storage.Default == nil {
		return nil, nil, fmt.Errorf("storage not initialized: %w", ErrUpstream)
	}
	object, info, err := storage.Default.GetObject(ctx, config.AppConfig.BucketName, file.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("get object: %w: %v", ErrUpstream, err)
	}
	return object, &info, nil
}
