package dto

import (
	"CloudVault/model"
	"time"
)

// FileMeta is the public metadata shape for a file. Authenticated
// metadata reads and share-link resolution both return it.
type FileMeta struct {
	ID           uint64    `json:"id"`
	Filename     string    `json:"filename"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	ResourceKind string    `json:"resource_kind"`
	UploadedAt   time.Time `json:"uploaded_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// FileMetaFrom maps a file record to its public metadata.
func FileMetaFrom(file *model.File) FileMeta {
	return FileMeta{
		ID:           file.ID,
		Filename:     file.Filename,
		MimeType:     file.MimeType,
		Size:         file.Size,
		ResourceKind: file.ResourceKind,
		UploadedAt:   file.UploadedAt,
		CreatedAt:    file.CreatedAt,
	}
}

type ShareLinkResponse struct {
	Token     string     `json:"token"`
	ShareURL  string     `json:"share_url"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type TicketResponse struct {
	Ticket    string    `json:"ticket"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
