package model

import (
	"time"
)

// AuthUser is a login identity. Admin privilege is granted by a separate
// admins row, not by this record.
type AuthUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (AuthUser) TableName() string {
	return "auth_users"
}
