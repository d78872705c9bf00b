package repository

import (
	"gorm.io/gorm"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/pkg/logger"
)

type AuthUserRepository interface {
	FindByID(id uint) (*model.AuthUser, error)
	FindByEmail(email string) (*model.AuthUser, error)
	Create(user *model.AuthUser) error
	Delete(id uint) error
}

type authUserRepository struct {
	db *gorm.DB
}

func NewAuthUserRepository(db *gorm.DB) AuthUserRepository {
	return &authUserRepository{db: db}
}

func (r *authUserRepository) FindByID(id uint) (*model.AuthUser, error) {
	var user model.AuthUser
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *authUserRepository) FindByEmail(email string) (*model.AuthUser, error) {
	var user model.AuthUser
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *authUserRepository) Create(user *model.AuthUser) error {
	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create auth user", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}

	logger.Debug("Auth user created", map[string]interface{}{
		"user_id": user.ID,
	})
	return nil
}

func (r *authUserRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.AuthUser{}, id).Error; err != nil {
		logger.Error("Failed to delete auth user", err, map[string]interface{}{
			"user_id": id,
		})
		return err
	}
	return nil
}
