package model

import (
	"time"
)

// TreatmentImage binds an uploaded blob to a treatment. Rows are append/delete
// only; there is no update.
type TreatmentImage struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	TreatmentID uint      `gorm:"index;not null" json:"treatment_id"`
	ImageURL    string    `gorm:"not null" json:"image_url"` // 公開URL
	CreatedAt   time.Time `json:"created_at"`
}

func (TreatmentImage) TableName() string {
	return "treatment_images"
}
