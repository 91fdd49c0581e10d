package model

import "time"

// Access log token kinds.
const (
	AccessKindLink   = "link"
	AccessKindTicket = "ticket"
)

// ShareAccessLog records one public access through a share link or a
// download ticket. Rows are written by the audit worker, not by the
// request path.
type ShareAccessLog struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Kind  string `gorm:"column:kind;type:varchar(16);not null" json:"kind"`
	Token string `gorm:"column:token;size:64;index;not null" json:"token"`

	FileID  uint64 `gorm:"column:file_id;index;not null" json:"file_id"`
	OwnerID uint64 `gorm:"column:owner_id;index;not null" json:"owner_id"`

	RemoteAddr string `gorm:"column:remote_addr;size:64" json:"remote_addr"`
	Outcome    string `gorm:"column:outcome;type:varchar(16);not null" json:"outcome"`

	OccurredAt time.Time `gorm:"column:occurred_at;index;not null" json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (ShareAccessLog) TableName() string {
	return "share_access_log"
}
