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
)

func setupCustomerServiceTest(t *testing.T) (CustomerService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	customerRepo := repository.NewCustomerRepository(testDB)
	return NewCustomerService(customerRepo), testDB
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestCustomerService_Create(t *testing.T) {
	customerService, _ := setupCustomerServiceTest(t)

	tests := []struct {
		name     string
		input    CustomerInput
		wantErr  bool
		errField string
	}{
		{
			name: "Valid customer",
			input: CustomerInput{
				Name:   "山田太郎",
				Gender: strPtr("男性"),
				Phone:  strPtr("090-1234-5678"),
				Email:  strPtr("yamada@example.com"),
			},
			wantErr: false,
		},
		{
			name: "Minimal customer",
			input: CustomerInput{
				Name: "佐藤花子",
			},
			wantErr: false,
		},
		{
			name:     "Missing name",
			input:    CustomerInput{},
			wantErr:  true,
			errField: "name",
		},
		{
			name: "Invalid email",
			input: CustomerInput{
				Name:  "田中一郎",
				Email: strPtr("not-an-email"),
			},
			wantErr:  true,
			errField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customer, err := customerService.Create(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				var fieldErrs *FieldErrors
				require.ErrorAs(t, err, &fieldErrs)
				assert.Contains(t, fieldErrs.Fields, tt.errField)
				assert.Nil(t, customer)
			} else {
				require.NoError(t, err)
				require.NotNil(t, customer)
				assert.NotZero(t, customer.ID)
				assert.Equal(t, tt.input.Name, customer.Name)
				assert.False(t, customer.CreatedAt.IsZero())
			}
		})
	}
}

func TestCustomerService_ValidationWritesNothing(t *testing.T) {
	customerService, testDB := setupCustomerServiceTest(t)

	_, err := customerService.Create(CustomerInput{Email: strPtr("bad")})
	require.Error(t, err)

	var count int64
	require.NoError(t, testDB.Model(&model.Customer{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCustomerService_ListFilter(t *testing.T) {
	customerService, _ := setupCustomerServiceTest(t)

	for _, name := range []string{"山田太郎", "山本次郎", "佐藤花子"} {
		_, err := customerService.Create(CustomerInput{Name: name})
		require.NoError(t, err)
	}

	t.Run("No filter returns everyone", func(t *testing.T) {
		customers, err := customerService.List(CustomerListFilter{})
		require.NoError(t, err)
		assert.Len(t, customers, 3)
	})

	t.Run("Substring filter on name", func(t *testing.T) {
		customers, err := customerService.List(CustomerListFilter{Search: "山"})
		require.NoError(t, err)
		assert.Len(t, customers, 2)
	})

	t.Run("Date range params are a no-op", func(t *testing.T) {
		customers, err := customerService.List(CustomerListFilter{
			DateFrom: "2024-01-01",
			DateTo:   "2024-12-31",
		})
		require.NoError(t, err)
		assert.Len(t, customers, 3)
	})
}

func TestCustomerService_ListOrder(t *testing.T) {
	customerService, testDB := setupCustomerServiceTest(t)

	first, err := customerService.Create(CustomerInput{Name: "先客"})
	require.NoError(t, err)
	second, err := customerService.Create(CustomerInput{Name: "後客"})
	require.NoError(t, err)

	// Force distinct created_at values; SQLite timestamps can collide
	require.NoError(t, testDB.Model(&model.Customer{}).
		Where("id = ?", first.ID).
		Update("created_at", first.CreatedAt.Add(-time.Second)).Error)

	customers, err := customerService.List(CustomerListFilter{})
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, second.ID, customers[0].ID)
	assert.Equal(t, first.ID, customers[1].ID)
}

func TestCustomerService_Get(t *testing.T) {
	customerService, _ := setupCustomerServiceTest(t)

	created, err := customerService.Create(CustomerInput{Name: "山田太郎"})
	require.NoError(t, err)

	t.Run("Existing customer", func(t *testing.T) {
		customer, err := customerService.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, customer.ID)
	})

	t.Run("Missing customer", func(t *testing.T) {
		_, err := customerService.Get(9999)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}

func TestCustomerService_Update(t *testing.T) {
	customerService, _ := setupCustomerServiceTest(t)

	created, err := customerService.Create(CustomerInput{
		Name:  "山田太郎",
		Phone: strPtr("090-1111-2222"),
	})
	require.NoError(t, err)

	t.Run("Partial update keeps untouched fields", func(t *testing.T) {
		updated, err := customerService.Update(created.ID, CustomerUpdateInput{
			Notes: strPtr("カラーの履歴あり"),
		})
		require.NoError(t, err)
		assert.Equal(t, "山田太郎", updated.Name)
		require.NotNil(t, updated.Phone)
		assert.Equal(t, "090-1111-2222", *updated.Phone)
		require.NotNil(t, updated.Notes)
		assert.Equal(t, "カラーの履歴あり", *updated.Notes)
	})

	t.Run("Supplied empty name is rejected", func(t *testing.T) {
		_, err := customerService.Update(created.ID, CustomerUpdateInput{
			Name: strPtr(""),
		})
		var fieldErrs *FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs.Fields, "name")
	})

	t.Run("Missing customer", func(t *testing.T) {
		_, err := customerService.Update(9999, CustomerUpdateInput{
			Notes: strPtr("x"),
		})
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}

func TestCustomerService_DeleteCascades(t *testing.T) {
	customerService, testDB := setupCustomerServiceTest(t)

	created, err := customerService.Create(CustomerInput{Name: "山田太郎"})
	require.NoError(t, err)

	treatment := model.Treatment{
		CustomerID:  created.ID,
		Date:        "2025-03-07",
		Menu:        "カット",
		StylistName: "佐藤",
		Price:       intPtr(5500),
	}
	require.NoError(t, testDB.Create(&treatment).Error)
	require.NoError(t, testDB.Create(&model.TreatmentImage{
		TreatmentID: treatment.ID,
		ImageURL:    "https://cdn.example.com/treatments/1/a.jpg",
	}).Error)

	require.NoError(t, customerService.Delete(created.ID))

	var treatmentCount, imageCount int64
	require.NoError(t, testDB.Model(&model.Treatment{}).Count(&treatmentCount).Error)
	require.NoError(t, testDB.Model(&model.TreatmentImage{}).Count(&imageCount).Error)
	assert.Zero(t, treatmentCount, "treatments should be removed by the cascade")
	assert.Zero(t, imageCount, "image rows should be removed by the cascade")
}
