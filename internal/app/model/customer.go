package model

import (
	"time"
)

type Customer struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`            // 名前
	Gender      *string   `json:"gender"`                          // 性別（男性/女性/その他）
	DateOfBirth *string   `json:"date_of_birth"`                   // 生年月日（YYYY-MM-DD）
	Phone       *string   `json:"phone"`                           // 電話番号
	Email       *string   `json:"email"`                           // メールアドレス
	Notes       *string   `json:"notes"`                           // 備考
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Deleting a customer cascades at the database level to treatments and
	// their images.
	Treatments []Treatment `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"treatments,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}
