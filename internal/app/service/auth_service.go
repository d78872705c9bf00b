package service

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/internal/app/repository"
	"salon-crm-backend/pkg/logger"
	"salon-crm-backend/pkg/util"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// LoginResult bundles the issued tokens with the admin profile so the
// dashboard can render the signed-in header without a second round trip.
type LoginResult struct {
	Tokens util.TokenPair
	Admin  *model.Admin
}

type AuthService interface {
	Login(email, password string) (*LoginResult, error)
	Me(authUserID uint) (*model.Admin, error)
}

type authService struct {
	authUserRepo  repository.AuthUserRepository
	adminRepo     repository.AdminRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	authUserRepo repository.AuthUserRepository,
	adminRepo repository.AdminRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		authUserRepo:  authUserRepo,
		adminRepo:     adminRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// Login verifies the credentials and issues a token pair. The error is the
// same whether the email is unknown or the password is wrong.
func (s *authService) Login(email, password string) (*LoginResult, error) {
	authUser, err := s.authUserRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !util.VerifyPassword(authUser.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.adminRepo.FindActiveByAuthUserID(authUser.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := ""
	if admin != nil {
		role = string(admin.Role)
	}

	tokens, err := util.GenerateTokenPair(authUser.ID, authUser.Email, role, s.jwtSecret, s.accessExpiry, s.refreshExpiry)
	if err != nil {
		return nil, err
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"auth_user_id": authUser.ID,
	})

	return &LoginResult{Tokens: *tokens, Admin: admin}, nil
}

// Me resolves the active admin row for a verified login identity.
func (s *authService) Me(authUserID uint) (*model.Admin, error) {
	admin, err := s.adminRepo.FindActiveByAuthUserID(authUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}
