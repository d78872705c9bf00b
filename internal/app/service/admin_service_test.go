package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/internal/app/repository"
	"salon-crm-backend/internal/db"
)

func setupAdminServiceTest(t *testing.T) (AdminService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	adminRepo := repository.NewAdminRepository(testDB)
	authUserRepo := repository.NewAuthUserRepository(testDB)
	return NewAdminService(adminRepo, authUserRepo), testDB
}

func createTestAuthUser(t *testing.T, testDB *gorm.DB, email string) *model.AuthUser {
	t.Helper()
	user := &model.AuthUser{Email: email, PasswordHash: "x"}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func TestAdminService_Create(t *testing.T) {
	adminService, testDB := setupAdminServiceTest(t)

	admin, err := adminService.Create(AdminCreateInput{
		Email:    "staff@example.com",
		Password: "password123",
		Name:     "スタッフA",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role, "role defaults to admin")
	assert.True(t, admin.IsActive)

	// The login identity is provisioned alongside the admin row
	var authUser model.AuthUser
	require.NoError(t, testDB.Where("email = ?", "staff@example.com").First(&authUser).Error)
	assert.Equal(t, authUser.ID, admin.AuthUserID)
	assert.NotEqual(t, "password123", authUser.PasswordHash, "password must be hashed")

	t.Run("Duplicate email", func(t *testing.T) {
		_, err := adminService.Create(AdminCreateInput{
			Email:    "staff@example.com",
			Password: "password456",
			Name:     "スタッフB",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("Missing fields", func(t *testing.T) {
		_, err := adminService.Create(AdminCreateInput{})
		var fieldErrs *FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs.Fields, "email")
		assert.Contains(t, fieldErrs.Fields, "password")
		assert.Contains(t, fieldErrs.Fields, "name")
	})
}

func TestAdminService_CreateCompensatesFailedInsert(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	authUserRepo := repository.NewAuthUserRepository(testDB)
	adminRepo := &failingAdminRepo{err: errors.New("insert failed")}
	adminService := NewAdminService(adminRepo, authUserRepo)

	_, err = adminService.Create(AdminCreateInput{
		Email:    "staff@example.com",
		Password: "password123",
		Name:     "スタッフA",
	})
	require.Error(t, err)

	// The provisioned identity must be removed again
	var count int64
	require.NoError(t, testDB.Model(&model.AuthUser{}).Count(&count).Error)
	assert.Zero(t, count, "no orphaned login without an admin row")
}

func TestAdminService_Update(t *testing.T) {
	adminService, _ := setupAdminServiceTest(t)

	admin, err := adminService.Create(AdminCreateInput{
		Email:    "staff@example.com",
		Password: "password123",
		Name:     "スタッフA",
		Role:     model.RoleSuperAdmin,
	})
	require.NoError(t, err)

	t.Run("Name required", func(t *testing.T) {
		_, err := adminService.Update(admin.ID, AdminUpdateInput{})
		var fieldErrs *FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs.Fields, "name")
	})

	t.Run("Omitted role and is_active fall back to defaults", func(t *testing.T) {
		updated, err := adminService.Update(admin.ID, AdminUpdateInput{Name: "スタッフA改"})
		require.NoError(t, err)
		assert.Equal(t, "スタッフA改", updated.Name)
		assert.Equal(t, model.RoleAdmin, updated.Role)
		assert.True(t, updated.IsActive)
	})

	t.Run("Explicit values are kept", func(t *testing.T) {
		role := model.RoleSuperAdmin
		inactive := false
		updated, err := adminService.Update(admin.ID, AdminUpdateInput{
			Name:     "スタッフA",
			Role:     &role,
			IsActive: &inactive,
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleSuperAdmin, updated.Role)
		assert.False(t, updated.IsActive)
	})

	t.Run("Missing admin", func(t *testing.T) {
		_, err := adminService.Update(9999, AdminUpdateInput{Name: "x"})
		assert.ErrorIs(t, err, ErrAdminNotFound)
	})
}

func TestAdminService_Delete(t *testing.T) {
	adminService, testDB := setupAdminServiceTest(t)

	first, err := adminService.Create(AdminCreateInput{
		Email:    "first@example.com",
		Password: "password123",
		Name:     "一人目",
	})
	require.NoError(t, err)
	second, err := adminService.Create(AdminCreateInput{
		Email:    "second@example.com",
		Password: "password123",
		Name:     "二人目",
	})
	require.NoError(t, err)

	t.Run("Self delete is refused", func(t *testing.T) {
		err := adminService.Delete(first.ID, first.ID)
		assert.ErrorIs(t, err, ErrSelfDelete)
	})

	t.Run("Missing admin", func(t *testing.T) {
		err := adminService.Delete(9999, first.ID)
		assert.ErrorIs(t, err, ErrAdminNotFound)
	})

	t.Run("Delete removes admin row and identity", func(t *testing.T) {
		require.NoError(t, adminService.Delete(second.ID, first.ID))

		var adminCount int64
		require.NoError(t, testDB.Model(&model.Admin{}).Count(&adminCount).Error)
		assert.EqualValues(t, 1, adminCount)

		var authCount int64
		require.NoError(t, testDB.Model(&model.AuthUser{}).
			Where("email = ?", "second@example.com").Count(&authCount).Error)
		assert.Zero(t, authCount, "login identity goes with the admin row")
	})
}

func TestAdminService_Bootstrap(t *testing.T) {
	adminService, testDB := setupAdminServiceTest(t)

	first := createTestAuthUser(t, testDB, "owner@example.com")
	second := createTestAuthUser(t, testDB, "staff@example.com")

	t.Run("First caller becomes super_admin", func(t *testing.T) {
		result, err := adminService.Bootstrap(first.ID, first.Email)
		require.NoError(t, err)
		assert.True(t, result.Created)
		assert.True(t, result.IsFirstAdmin)
		assert.Equal(t, model.RoleSuperAdmin, result.Admin.Role)
		assert.Equal(t, "owner", result.Admin.Name, "name derives from the email local part")
	})

	t.Run("Second caller becomes plain admin", func(t *testing.T) {
		result, err := adminService.Bootstrap(second.ID, second.Email)
		require.NoError(t, err)
		assert.True(t, result.Created)
		assert.False(t, result.IsFirstAdmin)
		assert.Equal(t, model.RoleAdmin, result.Admin.Role)
	})

	t.Run("Repeat call is idempotent", func(t *testing.T) {
		result, err := adminService.Bootstrap(first.ID, first.Email)
		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, model.RoleSuperAdmin, result.Admin.Role)

		var count int64
		require.NoError(t, testDB.Model(&model.Admin{}).Count(&count).Error)
		assert.EqualValues(t, 2, count)
	})
}

// failingAdminRepo fails every write, for compensation tests.
type failingAdminRepo struct {
	err error
}

func (r *failingAdminRepo) FindAll() ([]model.Admin, error) { return nil, nil }

func (r *failingAdminRepo) FindByID(id uint) (*model.Admin, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *failingAdminRepo) FindByAuthUserID(authUserID uint) (*model.Admin, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *failingAdminRepo) FindActiveByAuthUserID(authUserID uint) (*model.Admin, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *failingAdminRepo) Count() (int64, error) { return 0, nil }

func (r *failingAdminRepo) Create(admin *model.Admin) error { return r.err }

func (r *failingAdminRepo) Update(admin *model.Admin) error { return r.err }

func (r *failingAdminRepo) Delete(id uint) error { return r.err }
