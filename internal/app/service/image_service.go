package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/internal/app/repository"
	"salon-crm-backend/internal/storage"
	"salon-crm-backend/pkg/logger"
)

var (
	ErrImageNotFound    = errors.New("treatment image not found")
	ErrInvalidImageType = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image exceeds the size limit")
)

// MaxImageSize is the upload ceiling for a single treatment photo.
const MaxImageSize = 10 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// Some mobile browsers send HEIC/HEIF files without a MIME type, so the file
// extension is accepted as a fallback.
var heicExtensions = map[string]bool{
	".heic": true,
	".heif": true,
}

type ImageService interface {
	Attach(ctx context.Context, treatmentID uint, data []byte, fileName, contentType string) (*model.TreatmentImage, error)
	Detach(ctx context.Context, imageID uint) error
}

type imageService struct {
	treatmentRepo repository.TreatmentRepository
	imageRepo     repository.TreatmentImageRepository
	storage       ImageStorage
}

func NewImageService(
	treatmentRepo repository.TreatmentRepository,
	imageRepo repository.TreatmentImageRepository,
	imageStorage ImageStorage,
) ImageService {
	return &imageService{
		treatmentRepo: treatmentRepo,
		imageRepo:     imageRepo,
		storage:       imageStorage,
	}
}

// Attach validates the file, uploads the blob, then inserts the image row.
// If the insert fails the just-uploaded blob is deleted, so either both the
// blob and the row exist afterwards or neither does.
func (s *imageService) Attach(ctx context.Context, treatmentID uint, data []byte, fileName, contentType string) (*model.TreatmentImage, error) {
	exists, err := s.treatmentRepo.Exists(treatmentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTreatmentNotFound
	}

	if err := validateImageFile(data, fileName, contentType); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	key := fmt.Sprintf("treatments/%d/%d-%s%s", treatmentID, time.Now().UnixNano(), uuid.New().String(), ext)

	imageURL, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		logger.Error("Failed to upload treatment image", err, map[string]interface{}{
			"treatment_id": treatmentID,
			"key":          key,
		})
		return nil, err
	}

	image := &model.TreatmentImage{
		TreatmentID: treatmentID,
		ImageURL:    imageURL,
	}

	if err := s.imageRepo.Create(image); err != nil {
		// Compensating delete: no orphaned blob on a failed insert
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.Warn("Compensating blob delete failed", map[string]interface{}{
				"treatment_id": treatmentID,
				"key":          key,
				"error":        delErr.Error(),
			})
		}
		return nil, err
	}

	logger.Info("Treatment image attached", map[string]interface{}{
		"image_id":     image.ID,
		"treatment_id": treatmentID,
	})
	return image, nil
}

// Detach deletes the blob best-effort, then the row. A blob-store failure is
// tolerated; the row never outlives its blob's deletion attempt.
func (s *imageService) Detach(ctx context.Context, imageID uint) error {
	image, err := s.imageRepo.FindByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return err
	}

	if key := storage.KeyFromURL(image.ImageURL); key != "" {
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.Warn("Failed to delete blob, proceeding with row delete", map[string]interface{}{
				"image_id": imageID,
				"key":      key,
				"error":    err.Error(),
			})
		}
	}

	return s.imageRepo.Delete(imageID)
}

func validateImageFile(data []byte, fileName, contentType string) error {
	if !allowedImageTypes[strings.ToLower(contentType)] &&
		!heicExtensions[strings.ToLower(filepath.Ext(fileName))] {
		return ErrInvalidImageType
	}
	if len(data) > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}
