package repository

import (
	"gorm.io/gorm"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/pkg/logger"
)

type TreatmentRepository interface {
	FindByCustomer(customerID uint) ([]model.Treatment, error)
	FindByID(id uint) (*model.Treatment, error)
	Create(treatment *model.Treatment) error
	Update(treatment *model.Treatment) error
	Delete(id uint) error
	Exists(id uint) (bool, error)
}

type treatmentRepository struct {
	db *gorm.DB
}

func NewTreatmentRepository(db *gorm.DB) TreatmentRepository {
	return &treatmentRepository{db: db}
}

// FindByCustomer returns a customer's treatments newest first, images joined.
func (r *treatmentRepository) FindByCustomer(customerID uint) ([]model.Treatment, error) {
	var treatments []model.Treatment
	err := r.db.
		Preload("Images").
		Where("customer_id = ?", customerID).
		Order("date DESC").
		Find(&treatments).Error
	if err != nil {
		logger.Error("Failed to list treatments", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return treatments, nil
}

func (r *treatmentRepository) FindByID(id uint) (*model.Treatment, error) {
	var treatment model.Treatment
	if err := r.db.Preload("Images").First(&treatment, id).Error; err != nil {
		return nil, err
	}
	return &treatment, nil
}

func (r *treatmentRepository) Create(treatment *model.Treatment) error {
	if err := r.db.Create(treatment).Error; err != nil {
		logger.Error("Failed to create treatment", err, map[string]interface{}{
			"customer_id": treatment.CustomerID,
		})
		return err
	}

	logger.Debug("Treatment created", map[string]interface{}{
		"treatment_id": treatment.ID,
		"customer_id":  treatment.CustomerID,
	})
	return nil
}

func (r *treatmentRepository) Update(treatment *model.Treatment) error {
	if err := r.db.Save(treatment).Error; err != nil {
		logger.Error("Failed to update treatment", err, map[string]interface{}{
			"treatment_id": treatment.ID,
		})
		return err
	}
	return nil
}

// Delete removes the treatment row; image rows go with it via the cascade.
// Blob cleanup happens in the service before this is called.
func (r *treatmentRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Treatment{}, id).Error; err != nil {
		logger.Error("Failed to delete treatment", err, map[string]interface{}{
			"treatment_id": id,
		})
		return err
	}

	logger.Debug("Treatment deleted", map[string]interface{}{
		"treatment_id": id,
	})
	return nil
}

func (r *treatmentRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Treatment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
