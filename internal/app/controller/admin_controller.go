package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/internal/app/service"
	apperrors "salon-crm-backend/internal/errors"
	"salon-crm-backend/internal/middleware"
)

type AdminController struct {
	adminService service.AdminService
}

func NewAdminController(adminService service.AdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

type AdminCreateRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"`
}

type AdminUpdateRequest struct {
	Name     string  `json:"name" binding:"required"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// ListAdmins returns all admin accounts
// GET /api/v1/admins
func (ctrl *AdminController) ListAdmins(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	admins, err := ctrl.adminService.List()
	if err != nil {
		log.Error("Failed to fetch admins", err, nil)
		apperrors.InternalError(c, "管理者データの取得に失敗しました")
		return
	}

	c.JSON(http.StatusOK, admins)
}

// CreateAdmin provisions a login identity and its admin row
// POST /api/v1/admins
func (ctrl *AdminController) CreateAdmin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AdminCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid admin creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "入力値が正しくありません")
		return
	}

	admin, err := ctrl.adminService.Create(service.AdminCreateInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     model.AdminRole(req.Role),
	})
	if err != nil {
		if respondFieldErrors(c, err) {
			return
		}
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "このメールアドレスは既に使用されています")
			return
		}
		log.Error("Failed to create admin", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create admin")
		return
	}

	log.Info("Admin created", map[string]interface{}{
		"admin_id": admin.ID,
	})
	c.JSON(http.StatusCreated, admin)
}

// UpdateAdmin updates an admin's name, role and active flag
// PUT /api/v1/admins/:id
func (ctrl *AdminController) UpdateAdmin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid admin update request", map[string]interface{}{
			"admin_id": id,
			"error":    err.Error(),
		})
		apperrors.RespondWithValidationError(c, map[string]string{"name": "名前は必須です"})
		return
	}

	input := service.AdminUpdateInput{
		Name:     req.Name,
		IsActive: req.IsActive,
	}
	if req.Role != nil {
		role := model.AdminRole(*req.Role)
		input.Role = &role
	}

	admin, err := ctrl.adminService.Update(id, input)
	if err != nil {
		if respondFieldErrors(c, err) {
			return
		}
		if errors.Is(err, service.ErrAdminNotFound) {
			apperrors.NotFound(c, apperrors.AdminNotFound, "管理者が見つかりません")
			return
		}
		log.Error("Failed to update admin", err, map[string]interface{}{
			"admin_id": id,
		})
		apperrors.InternalError(c, "管理者の更新に失敗しました")
		return
	}

	c.JSON(http.StatusOK, admin)
}

// DeleteAdmin removes an admin account and its login identity
// DELETE /api/v1/admins/:id
func (ctrl *AdminController) DeleteAdmin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	callerAdminID, _ := middleware.GetAdminID(c)

	if err := ctrl.adminService.Delete(id, callerAdminID); err != nil {
		if errors.Is(err, service.ErrSelfDelete) {
			apperrors.BadRequest(c, apperrors.AuthzSelfDelete, "自分自身は削除できません")
			return
		}
		if errors.Is(err, service.ErrAdminNotFound) {
			apperrors.NotFound(c, apperrors.AdminNotFound, "管理者が見つかりません")
			return
		}
		log.Error("Failed to delete admin", err, map[string]interface{}{
			"admin_id": id,
		})
		apperrors.InternalError(c, "管理者の削除に失敗しました")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "管理者を削除しました",
	})
}

// Migrate registers the caller as an admin; the first caller ever becomes
// super_admin. Requires a valid login but no existing admin row.
// POST /api/v1/admins/migrate
func (ctrl *AdminController) Migrate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	email, _ := middleware.GetUserEmail(c)

	result, err := ctrl.adminService.Bootstrap(userID, email)
	if err != nil {
		log.Error("Admin bootstrap failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create admin")
		return
	}

	status := http.StatusOK
	message := "既に管理者として登録されています"
	if result.Created {
		status = http.StatusCreated
		message = "管理者として登録しました"
	}

	c.JSON(status, gin.H{
		"message":        message,
		"admin":          result.Admin,
		"is_first_admin": result.IsFirstAdmin,
	})
}
