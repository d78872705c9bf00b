package repository

import (
	"gorm.io/gorm"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/pkg/logger"
)

type TreatmentImageRepository interface {
	FindByID(id uint) (*model.TreatmentImage, error)
	FindByTreatment(treatmentID uint) ([]model.TreatmentImage, error)
	Create(image *model.TreatmentImage) error
	Delete(id uint) error
}

type treatmentImageRepository struct {
	db *gorm.DB
}

func NewTreatmentImageRepository(db *gorm.DB) TreatmentImageRepository {
	return &treatmentImageRepository{db: db}
}

func (r *treatmentImageRepository) FindByID(id uint) (*model.TreatmentImage, error) {
	var image model.TreatmentImage
	if err := r.db.First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *treatmentImageRepository) FindByTreatment(treatmentID uint) ([]model.TreatmentImage, error) {
	var images []model.TreatmentImage
	err := r.db.
		Where("treatment_id = ?", treatmentID).
		Order("created_at ASC").
		Find(&images).Error
	if err != nil {
		logger.Error("Failed to list treatment images", err, map[string]interface{}{
			"treatment_id": treatmentID,
		})
		return nil, err
	}
	return images, nil
}

func (r *treatmentImageRepository) Create(image *model.TreatmentImage) error {
	if err := r.db.Create(image).Error; err != nil {
		logger.Error("Failed to create treatment image", err, map[string]interface{}{
			"treatment_id": image.TreatmentID,
		})
		return err
	}

	logger.Debug("Treatment image created", map[string]interface{}{
		"image_id":     image.ID,
		"treatment_id": image.TreatmentID,
	})
	return nil
}

func (r *treatmentImageRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.TreatmentImage{}, id).Error; err != nil {
		logger.Error("Failed to delete treatment image", err, map[string]interface{}{
			"image_id": id,
		})
		return err
	}
	return nil
}
