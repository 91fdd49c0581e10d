package model

import (
	"strings"
	"time"
)

// Resource kinds stored in File.ResourceKind. They select how the
// object store handles the content.
const (
	ResourceImage = "image"
	ResourceVideo = "video"
	ResourceRaw   = "raw"
)

type File struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	// OwnerID never changes after creation.
	OwnerID uint64 `gorm:"column:owner_id;not null;index" json:"owner_id"`
	Owner   User   `gorm:"foreignKey:OwnerID;references:ID" json:"-"`

	Filename string `gorm:"column:filename;size:255;not null" json:"filename"`
	MimeType string `gorm:"column:mime_type;size:128;not null" json:"mime_type"`
	Size     int64  `gorm:"column:size;not null" json:"size"`

	// ObjectKey locates the blob in the object store bucket.
	ObjectKey    string `gorm:"column:object_key;size:512;not null" json:"-"`
	ResourceKind string `gorm:"column:resource_kind;type:varchar(16);not null;default:'raw'" json:"resource_kind"`

	Grants     []FileGrant `gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE" json:"-"`
	ShareLinks []ShareLink `gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE" json:"-"`

	UploadedAt time.Time `gorm:"column:uploaded_at;not null" json:"uploaded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (File) TableName() string {
	return "file"
}

// KindForMime classifies content for object store handling.
func KindForMime(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return ResourceImage
	case strings.HasPrefix(mimeType, "video/"):
		return ResourceVideo
	default:
		return ResourceRaw
	}
}
