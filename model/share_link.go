package model

import "time"

// ShareLink is a durable public access path to one file. The token is
// unique across the whole table because resolution is by token alone.
// A nil ExpireAt means the link never expires; expiry is evaluated at
// read time, revocation deletes the row.
type ShareLink struct {
	ID uint64 `gorm:"primaryKey"`

	Token string `gorm:"column:token;size:64;uniqueIndex;not null"`

	FileID uint64 `gorm:"column:file_id;not null;index"`

	CreatedBy uint64 `gorm:"column:created_by;not null"`
	Creator   User   `gorm:"foreignKey:CreatedBy;references:ID"`

	ExpireAt *time.Time `gorm:"column:expire_at"`

	CreatedAt time.Time
}

// TableName returns the database table name.
func (ShareLink) TableName() string {
	return "share_link"
}

// Expired reports whether the link has lapsed at the given instant.
// The boundary is exclusive: a link is still valid at its expiry
// instant and lapses strictly after it.
func (l *ShareLink) Expired(now time.Time) bool {
	return l.ExpireAt != nil && now.After(*l.ExpireAt)
}
