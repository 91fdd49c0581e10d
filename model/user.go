package model

import (
	"gorm.io/gorm"
	"time"
)

type User struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	Name string `gorm:"column:name;type:varchar(80);not null" json:"name"`

	// Email is stored lowercase and is the lookup key for share grants.
	Email string `gorm:"column:email;type:varchar(255);not null;unique" json:"email"`

	Password string `gorm:"column:pass_word;type:varchar(255);not null" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "user_db"
}
