package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"salon-crm-backend/internal/app/service"
	apperrors "salon-crm-backend/internal/errors"
	"salon-crm-backend/internal/middleware"
)

type TreatmentController struct {
	treatmentService service.TreatmentService
}

func NewTreatmentController(treatmentService service.TreatmentService) *TreatmentController {
	return &TreatmentController{
		treatmentService: treatmentService,
	}
}

// TreatmentRequest is shared by create and update; update is a full resupply,
// not a partial patch.
type TreatmentRequest struct {
	Date        string  `json:"date" binding:"required"`
	Menu        string  `json:"menu" binding:"required"`
	StylistName string  `json:"stylist_name" binding:"required"`
	Price       *int    `json:"price"`
	Duration    *int    `json:"duration"`
	Notes       *string `json:"notes"`
}

// ListTreatments returns a customer's treatments with images
// GET /api/v1/customers/:id/treatments
func (ctrl *TreatmentController) ListTreatments(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	treatments, err := ctrl.treatmentService.ListForCustomer(customerID)
	if err != nil {
		log.Error("Failed to fetch treatments", err, map[string]interface{}{
			"customer_id": customerID,
		})
		apperrors.InternalError(c, "施術履歴の取得に失敗しました")
		return
	}

	c.JSON(http.StatusOK, treatments)
}

// GetTreatment returns one treatment with images
// GET /api/v1/treatments/:id
func (ctrl *TreatmentController) GetTreatment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	treatment, err := ctrl.treatmentService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrTreatmentNotFound) {
			apperrors.NotFound(c, apperrors.TreatmentNotFound, "施術が見つかりません")
			return
		}
		log.Error("Failed to fetch treatment", err, map[string]interface{}{
			"treatment_id": id,
		})
		apperrors.InternalError(c, "施術データの取得に失敗しました")
		return
	}

	c.JSON(http.StatusOK, treatment)
}

// CreateTreatment records a treatment for a customer
// POST /api/v1/customers/:id/treatments
func (ctrl *TreatmentController) CreateTreatment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req TreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid treatment creation request", map[string]interface{}{
			"customer_id": customerID,
			"error":       err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "入力値が正しくありません")
		return
	}

	treatment, err := ctrl.treatmentService.Create(customerID, service.TreatmentInput{
		Date:        req.Date,
		Menu:        req.Menu,
		StylistName: req.StylistName,
		Price:       req.Price,
		Duration:    req.Duration,
		Notes:       req.Notes,
	})
	if err != nil {
		if respondFieldErrors(c, err) {
			return
		}
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "顧客が見つかりません")
			return
		}
		log.Error("Failed to create treatment", err, map[string]interface{}{
			"customer_id": customerID,
		})
		apperrors.InternalError(c, "施術の登録に失敗しました")
		return
	}

	log.Info("Treatment created", map[string]interface{}{
		"treatment_id": treatment.ID,
		"customer_id":  customerID,
	})
	c.JSON(http.StatusCreated, treatment)
}

// UpdateTreatment updates a treatment (full resupply of mandatory fields)
// PUT /api/v1/treatments/:id
func (ctrl *TreatmentController) UpdateTreatment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req TreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid treatment update request", map[string]interface{}{
			"treatment_id": id,
			"error":        err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "入力値が正しくありません")
		return
	}

	treatment, err := ctrl.treatmentService.Update(id, service.TreatmentInput{
		Date:        req.Date,
		Menu:        req.Menu,
		StylistName: req.StylistName,
		Price:       req.Price,
		Duration:    req.Duration,
		Notes:       req.Notes,
	})
	if err != nil {
		if respondFieldErrors(c, err) {
			return
		}
		if errors.Is(err, service.ErrTreatmentNotFound) {
			apperrors.NotFound(c, apperrors.TreatmentNotFound, "施術が見つかりません")
			return
		}
		log.Error("Failed to update treatment", err, map[string]interface{}{
			"treatment_id": id,
		})
		apperrors.InternalError(c, "施術の更新に失敗しました")
		return
	}

	c.JSON(http.StatusOK, treatment)
}

// DeleteTreatment deletes a treatment, its image rows and their blobs
// DELETE /api/v1/treatments/:id
func (ctrl *TreatmentController) DeleteTreatment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.treatmentService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTreatmentNotFound) {
			apperrors.NotFound(c, apperrors.TreatmentNotFound, "施術が見つかりません")
			return
		}
		log.Error("Failed to delete treatment", err, map[string]interface{}{
			"treatment_id": id,
		})
		apperrors.InternalError(c, "施術の削除に失敗しました")
		return
	}

	log.Info("Treatment deleted", map[string]interface{}{
		"treatment_id": id,
	})
	c.JSON(http.StatusOK, gin.H{
		"message": "施術を削除しました",
	})
}
