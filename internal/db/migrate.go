package db

import (
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/pkg/logger"
)

// Migrate runs database migrations. The cascade from customers to treatments
// to treatment_images lives in the foreign key constraints created here.
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.AuthUser{},
		&model.Admin{},
		&model.Customer{},
		&model.Treatment{},
		&model.TreatmentImage{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
