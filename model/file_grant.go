package model

import "time"

// FileGrant is one entry of a file's share grant set. The composite
// unique index gives the set semantics: inserting an existing pair is
// a no-op at the database level, so concurrent grants never lose
// entries to a read-modify-write race.
type FileGrant struct {
	ID uint64 `gorm:"primaryKey"`

	FileID uint64 `gorm:"column:file_id;not null;uniqueIndex:uk_file_user,priority:1"`
	UserID uint64 `gorm:"column:user_id;not null;uniqueIndex:uk_file_user,priority:2;index"`
	User   User   `gorm:"foreignKey:UserID;references:ID"`

	CreatedAt time.Time
}

// TableName returns the database table name.
func (FileGrant) TableName() string {
	return "file_grant"
}
