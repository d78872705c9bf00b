package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"salon-crm-backend/internal/app/service"
	apperrors "salon-crm-backend/internal/errors"
	"salon-crm-backend/internal/middleware"
)

type IntakeController struct {
	intakeService service.IntakeService
}

func NewIntakeController(intakeService service.IntakeService) *IntakeController {
	return &IntakeController{
		intakeService: intakeService,
	}
}

type IntakeRequest struct {
	Name        string  `json:"name" binding:"required"`
	Gender      *string `json:"gender"`
	DateOfBirth *string `json:"date_of_birth"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Notes       *string `json:"notes"`
}

// Register lets a walk-in customer create their own record. No auth; the
// response carries only the new id, never the stored row.
// POST /api/v1/customer-register
func (ctrl *IntakeController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid self-registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, map[string]string{"name": "名前は必須です"})
		return
	}

	customer, err := ctrl.intakeService.Register(service.IntakeInput{
		Name:        req.Name,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Phone:       req.Phone,
		Email:       req.Email,
		Notes:       req.Notes,
	})
	if err != nil {
		if respondFieldErrors(c, err) {
			return
		}
		log.Error("Self-registration failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create customer")
		return
	}

	log.Info("Customer self-registration completed", map[string]interface{}{
		"customer_id": customer.ID,
	})
	c.JSON(http.StatusCreated, gin.H{
		"message":     "登録が完了しました",
		"customer_id": customer.ID,
	})
}
