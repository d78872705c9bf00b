package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/internal/app/repository"
	"salon-crm-backend/internal/app/service"
	"salon-crm-backend/internal/db"
)

func setupCustomerControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	customerRepo := repository.NewCustomerRepository(testDB)
	customerService := service.NewCustomerService(customerRepo)
	customerController := NewCustomerController(customerService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/customers", customerController.ListCustomers)
	router.POST("/customers", customerController.CreateCustomer)
	router.GET("/customers/:id", customerController.GetCustomer)
	router.PUT("/customers/:id", customerController.UpdateCustomer)
	router.DELETE("/customers/:id", customerController.DeleteCustomer)

	return router, testDB
}

func TestCustomerController_Create(t *testing.T) {
	router, _ := setupCustomerControllerTest(t)

	body, _ := json.Marshal(gin.H{
		"name":   "山田太郎",
		"gender": "男性",
		"phone":  "090-1234-5678",
	})
	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created model.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "山田太郎", created.Name)
}

func TestCustomerController_CreateValidation(t *testing.T) {
	router, testDB := setupCustomerControllerTest(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{
			name: "Missing name",
			body: gin.H{"phone": "090-1234-5678"},
		},
		{
			name: "Invalid email",
			body: gin.H{"name": "山田太郎", "email": "not-an-email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_INPUT")
		})
	}

	var count int64
	require.NoError(t, testDB.Model(&model.Customer{}).Count(&count).Error)
	assert.Zero(t, count, "rejected requests write nothing")
}

func TestCustomerController_GetNotFound(t *testing.T) {
	router, _ := setupCustomerControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/customers/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CUSTOMER_NOT_FOUND")
}

func TestCustomerController_InvalidID(t *testing.T) {
	router, _ := setupCustomerControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/customers/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_ID")
}

func TestCustomerController_Update(t *testing.T) {
	router, testDB := setupCustomerControllerTest(t)

	customer := model.Customer{Name: "山田太郎"}
	require.NoError(t, testDB.Create(&customer).Error)

	body, _ := json.Marshal(gin.H{"notes": "常連"})
	req := httptest.NewRequest(http.MethodPut, "/customers/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated model.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "山田太郎", updated.Name)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "常連", *updated.Notes)
}

func TestCustomerController_Delete(t *testing.T) {
	router, testDB := setupCustomerControllerTest(t)

	customer := model.Customer{Name: "山田太郎"}
	require.NoError(t, testDB.Create(&customer).Error)

	req := httptest.NewRequest(http.MethodDelete, "/customers/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "顧客を削除しました")

	var count int64
	require.NoError(t, testDB.Model(&model.Customer{}).Count(&count).Error)
	assert.Zero(t, count)
}
