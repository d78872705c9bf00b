package model

import (
	"time"
)

type Treatment struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CustomerID  uint      `gorm:"index;not null" json:"customer_id"` // 顧客ID（作成後は不変）
	Date        string    `gorm:"not null" json:"date"`              // 施術日（YYYY-MM-DD）
	Menu        string    `gorm:"not null" json:"menu"`              // 施術内容
	StylistName string    `gorm:"not null" json:"stylist_name"`      // スタイリスト名
	Price       *int      `json:"price"`                             // 料金（円）
	Duration    *int      `json:"duration"`                          // 施術時間（分）
	Notes       *string   `json:"notes"`                             // 備考
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Images []TreatmentImage `gorm:"foreignKey:TreatmentID;constraint:OnDelete:CASCADE" json:"treatment_images,omitempty"`
}

func (Treatment) TableName() string {
	return "treatments"
}
