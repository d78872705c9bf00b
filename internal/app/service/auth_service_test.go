package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/internal/app/repository"
	"salon-crm-backend/internal/db"
	"salon-crm-backend/pkg/util"
)

func setupAuthServiceTest(t *testing.T) (AuthService, AdminService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	authUserRepo := repository.NewAuthUserRepository(testDB)
	adminRepo := repository.NewAdminRepository(testDB)

	authService := NewAuthService(
		authUserRepo,
		adminRepo,
		"test-jwt-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
	adminService := NewAdminService(adminRepo, authUserRepo)

	return authService, adminService, testDB
}

func TestAuthService_Login(t *testing.T) {
	authService, adminService, _ := setupAuthServiceTest(t)

	_, err := adminService.Create(AdminCreateInput{
		Email:    "staff@example.com",
		Password: "password123",
		Name:     "スタッフA",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Valid login",
			email:    "staff@example.com",
			password: "password123",
			wantErr:  nil,
		},
		{
			name:     "Wrong password",
			email:    "staff@example.com",
			password: "wrongpassword",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Unknown email",
			email:    "notfound@example.com",
			password: "password123",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.NotEmpty(t, result.Tokens.AccessToken)
				assert.NotEmpty(t, result.Tokens.RefreshToken)
				require.NotNil(t, result.Admin)
				assert.Equal(t, model.RoleAdmin, result.Admin.Role)

				claims, err := util.ValidateToken(result.Tokens.AccessToken, "test-jwt-secret")
				require.NoError(t, err)
				assert.Equal(t, tt.email, claims.Email)
			}
		})
	}
}

func TestAuthService_LoginWithoutAdminRow(t *testing.T) {
	authService, _, testDB := setupAuthServiceTest(t)

	hash, err := util.HashPassword("password123")
	require.NoError(t, err)
	require.NoError(t, testDB.Create(&model.AuthUser{
		Email:        "newcomer@example.com",
		PasswordHash: hash,
	}).Error)

	// A valid login without an admin row still gets tokens; the bootstrap
	// endpoint is how that identity becomes an admin
	result, err := authService.Login("newcomer@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.Nil(t, result.Admin)
}

func TestAuthService_Me(t *testing.T) {
	authService, adminService, testDB := setupAuthServiceTest(t)

	admin, err := adminService.Create(AdminCreateInput{
		Email:    "staff@example.com",
		Password: "password123",
		Name:     "スタッフA",
	})
	require.NoError(t, err)

	t.Run("Active admin", func(t *testing.T) {
		me, err := authService.Me(admin.AuthUserID)
		require.NoError(t, err)
		assert.Equal(t, admin.ID, me.ID)
	})

	t.Run("Deactivated admin", func(t *testing.T) {
		require.NoError(t, testDB.Model(&model.Admin{}).
			Where("id = ?", admin.ID).
			Update("is_active", false).Error)

		_, err := authService.Me(admin.AuthUserID)
		assert.ErrorIs(t, err, ErrAdminNotFound)
	})

	t.Run("Unknown identity", func(t *testing.T) {
		_, err := authService.Me(9999)
		assert.ErrorIs(t, err, ErrAdminNotFound)
	})
}
