package repository

import (
	"gorm.io/gorm"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/pkg/logger"
)

type AdminRepository interface {
	FindAll() ([]model.Admin, error)
	FindByID(id uint) (*model.Admin, error)
	FindByAuthUserID(authUserID uint) (*model.Admin, error)
	FindActiveByAuthUserID(authUserID uint) (*model.Admin, error)
	Count() (int64, error)
	Create(admin *model.Admin) error
	Update(admin *model.Admin) error
	Delete(id uint) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) FindAll() ([]model.Admin, error) {
	var admins []model.Admin
	if err := r.db.Order("created_at DESC").Find(&admins).Error; err != nil {
		logger.Error("Failed to list admins", err, nil)
		return nil, err
	}
	return admins, nil
}

func (r *adminRepository) FindByID(id uint) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindByAuthUserID(authUserID uint) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.Where("auth_user_id = ?", authUserID).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindActiveByAuthUserID resolves the caller's effective admin identity: the
// row matching the identity with is_active set.
func (r *adminRepository) FindActiveByAuthUserID(authUserID uint) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.
		Where("auth_user_id = ? AND is_active = ?", authUserID, true).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Admin{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *adminRepository) Create(admin *model.Admin) error {
	if err := r.db.Create(admin).Error; err != nil {
		logger.Error("Failed to create admin", err, map[string]interface{}{
			"email": admin.Email,
		})
		return err
	}

	logger.Debug("Admin created", map[string]interface{}{
		"admin_id": admin.ID,
		"role":     admin.Role,
	})
	return nil
}

func (r *adminRepository) Update(admin *model.Admin) error {
	if err := r.db.Save(admin).Error; err != nil {
		logger.Error("Failed to update admin", err, map[string]interface{}{
			"admin_id": admin.ID,
		})
		return err
	}
	return nil
}

func (r *adminRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Admin{}, id).Error; err != nil {
		logger.Error("Failed to delete admin", err, map[string]interface{}{
			"admin_id": id,
		})
		return err
	}
	return nil
}
