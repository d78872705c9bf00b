package model

import (
	"time"
)

type AdminRole string // 管理者の権限種別

const (
	RoleAdmin      AdminRole = "admin"       // 一般管理者
	RoleSuperAdmin AdminRole = "super_admin" // 最初に登録された管理者
)

// Admin grants salon-staff privileges to an AuthUser. The caller's effective
// admin identity is the row whose auth_user_id matches and is_active is true.
type Admin struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	AuthUserID uint      `gorm:"uniqueIndex;not null" json:"auth_user_id"` // 認証ユーザーID
	Email      string    `gorm:"not null" json:"email"`
	Name       string    `gorm:"not null" json:"name"`
	Role       AdminRole `gorm:"type:varchar(20);default:'admin'" json:"role"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}
