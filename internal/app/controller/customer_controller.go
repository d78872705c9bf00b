package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"salon-crm-backend/internal/app/service"
	apperrors "salon-crm-backend/internal/errors"
	"salon-crm-backend/internal/middleware"
)

type CustomerController struct {
	customerService service.CustomerService
}

func NewCustomerController(customerService service.CustomerService) *CustomerController {
	return &CustomerController{
		customerService: customerService,
	}
}

type CustomerCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Gender      *string `json:"gender"`
	DateOfBirth *string `json:"date_of_birth"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Notes       *string `json:"notes"`
}

type CustomerUpdateRequest struct {
	Name        *string `json:"name"`
	Gender      *string `json:"gender"`
	DateOfBirth *string `json:"date_of_birth"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Notes       *string `json:"notes"`
}

// ListCustomers returns all customers with a treatment summary
// GET /api/v1/customers
func (ctrl *CustomerController) ListCustomers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := service.CustomerListFilter{
		Search:   c.Query("search"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}

	customers, err := ctrl.customerService.List(filter)
	if err != nil {
		log.Error("Failed to fetch customers", err, nil)
		apperrors.InternalError(c, "顧客データの取得に失敗しました")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer returns one customer with full treatment and image detail
// GET /api/v1/customers/:id
func (ctrl *CustomerController) GetCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := ctrl.customerService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "顧客が見つかりません")
			return
		}
		log.Error("Failed to fetch customer", err, map[string]interface{}{
			"customer_id": id,
		})
		apperrors.InternalError(c, "顧客データの取得に失敗しました")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// CreateCustomer registers a new customer
// POST /api/v1/customers
func (ctrl *CustomerController) CreateCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CustomerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid customer creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, map[string]string{"name": "名前は必須です"})
		return
	}

	customer, err := ctrl.customerService.Create(service.CustomerInput{
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
		log.Error("Failed to create customer", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "顧客の登録に失敗しました")
		return
	}

	log.Info("Customer created", map[string]interface{}{
		"customer_id": customer.ID,
	})
	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer partially updates a customer
// PUT /api/v1/customers/:id
func (ctrl *CustomerController) UpdateCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CustomerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid customer update request", map[string]interface{}{
			"customer_id": id,
			"error":       err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "入力値が正しくありません")
		return
	}

	customer, err := ctrl.customerService.Update(id, service.CustomerUpdateInput{
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
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "顧客が見つかりません")
			return
		}
		log.Error("Failed to update customer", err, map[string]interface{}{
			"customer_id": id,
		})
		apperrors.InternalError(c, "顧客の更新に失敗しました")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer deletes a customer; treatments and images go with it
// DELETE /api/v1/customers/:id
func (ctrl *CustomerController) DeleteCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.customerService.Delete(id); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "顧客が見つかりません")
			return
		}
		log.Error("Failed to delete customer", err, map[string]interface{}{
			"customer_id": id,
		})
		apperrors.InternalError(c, "顧客の削除に失敗しました")
		return
	}

	log.Info("Customer deleted", map[string]interface{}{
		"customer_id": id,
	})
	c.JSON(http.StatusOK, gin.H{
		"message": "顧客を削除しました",
	})
}

// parseIDParam parses a numeric path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "IDの形式が正しくありません")
		return 0, false
	}
	return uint(id), true
}

// respondFieldErrors converts a service-level validation error into a 400
// response. Returns false when err is not a validation error.
func respondFieldErrors(c *gin.Context, err error) bool {
	var fieldErrs *service.FieldErrors
	if errors.As(err, &fieldErrs) {
		apperrors.RespondWithValidationError(c, fieldErrs.Fields)
		return true
	}
	return false
}
