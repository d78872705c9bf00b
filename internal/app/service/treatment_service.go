package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/internal/app/repository"
	"salon-crm-backend/internal/storage"
	"salon-crm-backend/pkg/logger"
)

var ErrTreatmentNotFound = errors.New("treatment not found")

// ImageStorage is the blob store used for treatment photos.
type ImageStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys []string) error
}

// TreatmentInput is the write payload for both create and update. Update is
// not partial: date, menu and stylist name must always be resupplied.
type TreatmentInput struct {
	Date        string
	Menu        string
	StylistName string
	Price       *int
	Duration    *int
	Notes       *string
}

type TreatmentService interface {
	ListForCustomer(customerID uint) ([]model.Treatment, error)
	Get(id uint) (*model.Treatment, error)
	Create(customerID uint, input TreatmentInput) (*model.Treatment, error)
	Update(id uint, input TreatmentInput) (*model.Treatment, error)
	Delete(ctx context.Context, id uint) error
}

type treatmentService struct {
	treatmentRepo repository.TreatmentRepository
	imageRepo     repository.TreatmentImageRepository
	customerRepo  repository.CustomerRepository
	storage       ImageStorage
}

func NewTreatmentService(
	treatmentRepo repository.TreatmentRepository,
	imageRepo repository.TreatmentImageRepository,
	customerRepo repository.CustomerRepository,
	imageStorage ImageStorage,
) TreatmentService {
	return &treatmentService{
		treatmentRepo: treatmentRepo,
		imageRepo:     imageRepo,
		customerRepo:  customerRepo,
		storage:       imageStorage,
	}
}

func (s *treatmentService) ListForCustomer(customerID uint) ([]model.Treatment, error) {
	return s.treatmentRepo.FindByCustomer(customerID)
}

func (s *treatmentService) Get(id uint) (*model.Treatment, error) {
	treatment, err := s.treatmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTreatmentNotFound
		}
		return nil, err
	}
	return treatment, nil
}

func (s *treatmentService) Create(customerID uint, input TreatmentInput) (*model.Treatment, error) {
	if err := validateTreatmentInput(input); err != nil {
		return nil, err
	}

	// The customer must exist before the insert
	exists, err := s.customerRepo.Exists(customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCustomerNotFound
	}

	treatment := &model.Treatment{
		CustomerID:  customerID,
		Date:        input.Date,
		Menu:        input.Menu,
		StylistName: input.StylistName,
		Price:       input.Price,
		Duration:    input.Duration,
		Notes:       input.Notes,
	}

	if err := s.treatmentRepo.Create(treatment); err != nil {
		return nil, err
	}

	logger.Info("Treatment recorded", map[string]interface{}{
		"treatment_id": treatment.ID,
		"customer_id":  customerID,
	})
	return treatment, nil
}

func (s *treatmentService) Update(id uint, input TreatmentInput) (*model.Treatment, error) {
	if err := validateTreatmentInput(input); err != nil {
		return nil, err
	}

	treatment, err := s.treatmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTreatmentNotFound
		}
		return nil, err
	}

	treatment.Date = input.Date
	treatment.Menu = input.Menu
	treatment.StylistName = input.StylistName
	treatment.Price = input.Price
	treatment.Duration = input.Duration
	treatment.Notes = input.Notes

	if err := s.treatmentRepo.Update(treatment); err != nil {
		return nil, err
	}
	return treatment, nil
}

// Delete removes the treatment's blobs first (best effort), then the row.
// A blob-store failure may orphan a blob but never leaves an image row
// pointing at a deleted blob.
func (s *treatmentService) Delete(ctx context.Context, id uint) error {
	exists, err := s.treatmentRepo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTreatmentNotFound
	}

	images, err := s.imageRepo.FindByTreatment(id)
	if err != nil {
		return err
	}

	if len(images) > 0 {
		keys := make([]string, 0, len(images))
		for _, image := range images {
			if key := storage.KeyFromURL(image.ImageURL); key != "" {
				keys = append(keys, key)
			}
		}

		if err := s.storage.DeleteMany(ctx, keys); err != nil {
			logger.Warn("Failed to delete treatment blobs, proceeding with row delete", map[string]interface{}{
				"treatment_id": id,
				"image_count":  len(keys),
				"error":        err.Error(),
			})
		}
	}

	// Image rows go with the treatment via the cascade
	return s.treatmentRepo.Delete(id)
}

func validateTreatmentInput(input TreatmentInput) error {
	fieldErrs := newFieldErrors()
	if input.Date == "" {
		fieldErrs.add("date", "施術日は必須です")
	}
	if input.Menu == "" {
		fieldErrs.add("menu", "メニューは必須です")
	}
	if input.StylistName == "" {
		fieldErrs.add("stylist_name", "スタイリスト名は必須です")
	}
	if input.Price != nil && *input.Price < 0 {
		fieldErrs.add("price", "料金は0以上である必要があります")
	}
	if input.Duration != nil && *input.Duration < 0 {
		fieldErrs.add("duration", "施術時間は0以上である必要があります")
	}
	return fieldErrs.orNil()
}
