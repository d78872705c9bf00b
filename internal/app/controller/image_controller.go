package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"salon-crm-backend/internal/app/service"
	apperrors "salon-crm-backend/internal/errors"
	"salon-crm-backend/internal/middleware"
)

type ImageController struct {
	imageService service.ImageService
}

func NewImageController(imageService service.ImageService) *ImageController {
	return &ImageController{
		imageService: imageService,
	}
}

// UploadImage attaches a photo to a treatment
// POST /api/v1/treatments/:id/images
func (ctrl *ImageController) UploadImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	treatmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		log.Warn("Image file missing from request", map[string]interface{}{
			"treatment_id": treatmentID,
		})
		apperrors.BadRequest(c, apperrors.UploadFileRequired, "画像ファイルを指定してください")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, map[string]interface{}{
			"treatment_id": treatmentID,
		})
		apperrors.BadRequest(c, apperrors.UploadFailed, "画像の読み込みに失敗しました")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("Failed to read uploaded file", err, map[string]interface{}{
			"treatment_id": treatmentID,
		})
		apperrors.BadRequest(c, apperrors.UploadFailed, "画像の読み込みに失敗しました")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")

	image, err := ctrl.imageService.Attach(c.Request.Context(), treatmentID, data, fileHeader.Filename, contentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTreatmentNotFound):
			apperrors.NotFound(c, apperrors.TreatmentNotFound, "施術が見つかりません")
		case errors.Is(err, service.ErrInvalidImageType):
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "対応していない画像形式です（JPEG/PNG/WebP/HEIC）")
		case errors.Is(err, service.ErrImageTooLarge):
			apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "画像サイズは10MB以下にしてください")
		default:
			log.Error("Failed to attach image", err, map[string]interface{}{
				"treatment_id": treatmentID,
			})
			apperrors.InternalError(c, "画像のアップロードに失敗しました")
		}
		return
	}

	log.Info("Image uploaded", map[string]interface{}{
		"image_id":     image.ID,
		"treatment_id": treatmentID,
	})
	c.JSON(http.StatusCreated, image)
}

// DeleteImage detaches a photo from a treatment
// DELETE /api/v1/treatments/:id/images/:imageId
func (ctrl *ImageController) DeleteImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	imageID, ok := parseIDParam(c, "imageId")
	if !ok {
		return
	}

	if err := ctrl.imageService.Detach(c.Request.Context(), imageID); err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			apperrors.NotFound(c, apperrors.ImageNotFound, "画像が見つかりません")
			return
		}
		log.Error("Failed to delete image", err, map[string]interface{}{
			"image_id": imageID,
		})
		apperrors.InternalError(c, "画像の削除に失敗しました")
		return
	}

	log.Info("Image deleted", map[string]interface{}{
		"image_id": imageID,
	})
	c.JSON(http.StatusOK, gin.H{
		"message": "画像を削除しました",
	})
}
