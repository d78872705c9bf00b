package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/internal/app/repository"
	"salon-crm-backend/pkg/logger"
	"salon-crm-backend/pkg/util"
)

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrSelfDelete         = errors.New("cannot delete yourself")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type AdminCreateInput struct {
	Email    string
	Password string
	Name     string
	Role     model.AdminRole
}

type AdminUpdateInput struct {
	Name     string
	Role     *model.AdminRole
	IsActive *bool
}

// BootstrapResult reports the outcome of the self-migration flow.
type BootstrapResult struct {
	Admin        *model.Admin
	IsFirstAdmin bool
	Created      bool
}

type AdminService interface {
	List() ([]model.Admin, error)
	Create(input AdminCreateInput) (*model.Admin, error)
	Update(id uint, input AdminUpdateInput) (*model.Admin, error)
	Delete(id, callerAdminID uint) error
	Bootstrap(authUserID uint, email string) (*BootstrapResult, error)
}

type adminService struct {
	adminRepo    repository.AdminRepository
	authUserRepo repository.AuthUserRepository
}

func NewAdminService(adminRepo repository.AdminRepository, authUserRepo repository.AuthUserRepository) AdminService {
	return &adminService{
		adminRepo:    adminRepo,
		authUserRepo: authUserRepo,
	}
}

func (s *adminService) List() ([]model.Admin, error) {
	return s.adminRepo.FindAll()
}

// Create provisions a login identity first, then inserts the admin row. If
// the insert fails the identity is deleted again so no orphaned login without
// admin privileges is left behind.
func (s *adminService) Create(input AdminCreateInput) (*model.Admin, error) {
	fieldErrs := newFieldErrors()
	if input.Email == "" {
		fieldErrs.add("email", "メールアドレスは必須です")
	} else if !isValidEmail(input.Email) {
		fieldErrs.add("email", "有効なメールアドレスを入力してください")
	}
	if input.Password == "" {
		fieldErrs.add("password", "パスワードは必須です")
	}
	if input.Name == "" {
		fieldErrs.add("name", "名前は必須です")
	}
	if err := fieldErrs.orNil(); err != nil {
		return nil, err
	}

	existing, err := s.authUserRepo.FindByEmail(input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	authUser := &model.AuthUser{
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}
	if err := s.authUserRepo.Create(authUser); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = model.RoleAdmin
	}

	admin := &model.Admin{
		AuthUserID: authUser.ID,
		Email:      input.Email,
		Name:       input.Name,
		Role:       role,
		IsActive:   true,
	}

	if err := s.adminRepo.Create(admin); err != nil {
		// Compensating delete: no orphaned login without admin privileges
		if delErr := s.authUserRepo.Delete(authUser.ID); delErr != nil {
			logger.Warn("Compensating identity delete failed", map[string]interface{}{
				"auth_user_id": authUser.ID,
				"error":        delErr.Error(),
			})
		}
		return nil, err
	}

	logger.Info("Admin account created", map[string]interface{}{
		"admin_id": admin.ID,
		"role":     admin.Role,
	})
	return admin, nil
}

func (s *adminService) Update(id uint, input AdminUpdateInput) (*model.Admin, error) {
	if input.Name == "" {
		fieldErrs := newFieldErrors()
		fieldErrs.add("name", "名前は必須です")
		return nil, fieldErrs.orNil()
	}

	admin, err := s.adminRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	admin.Name = input.Name
	if input.Role != nil {
		admin.Role = *input.Role
	} else {
		admin.Role = model.RoleAdmin
	}
	if input.IsActive != nil {
		admin.IsActive = *input.IsActive
	} else {
		admin.IsActive = true
	}

	if err := s.adminRepo.Update(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Delete removes the admin row and its login identity, so the account cannot
// log in at all afterwards. Deleting the caller's own row is refused.
func (s *adminService) Delete(id, callerAdminID uint) error {
	if id == callerAdminID {
		return ErrSelfDelete
	}

	admin, err := s.adminRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminNotFound
		}
		return err
	}

	if err := s.adminRepo.Delete(id); err != nil {
		return err
	}

	if err := s.authUserRepo.Delete(admin.AuthUserID); err != nil {
		logger.Warn("Failed to delete admin identity", map[string]interface{}{
			"auth_user_id": admin.AuthUserID,
			"error":        err.Error(),
		})
	}

	logger.Info("Admin account deleted", map[string]interface{}{
		"admin_id": id,
	})
	return nil
}

// Bootstrap registers the caller as an admin. The very first admin row ever
// created becomes super_admin; all later ones become plain admins. Calling
// it again for the same identity returns the existing row.
func (s *adminService) Bootstrap(authUserID uint, email string) (*BootstrapResult, error) {
	existing, err := s.adminRepo.FindByAuthUserID(authUserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return &BootstrapResult{
			Admin:        existing,
			IsFirstAdmin: existing.Role == model.RoleSuperAdmin,
			Created:      false,
		}, nil
	}

	count, err := s.adminRepo.Count()
	if err != nil {
		return nil, err
	}

	role := model.RoleAdmin
	if count == 0 {
		role = model.RoleSuperAdmin
	}

	admin := &model.Admin{
		AuthUserID: authUserID,
		Email:      email,
		Name:       emailLocalPart(email),
		Role:       role,
		IsActive:   true,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}

	logger.Info("Admin bootstrapped", map[string]interface{}{
		"admin_id":       admin.ID,
		"role":           admin.Role,
		"is_first_admin": role == model.RoleSuperAdmin,
	})

	return &BootstrapResult{
		Admin:        admin,
		IsFirstAdmin: role == model.RoleSuperAdmin,
		Created:      true,
	}, nil
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
