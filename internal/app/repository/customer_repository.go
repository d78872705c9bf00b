package repository

import (
	"gorm.io/gorm"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/pkg/logger"
)

type CustomerRepository interface {
	FindAll(search string) ([]model.Customer, error)
	FindByID(id uint) (*model.Customer, error)
	FindByIDWithTreatments(id uint) (*model.Customer, error)
	FindForExport(customerID *uint) ([]model.Customer, error)
	Create(customer *model.Customer) error
	Update(customer *model.Customer) error
	Delete(id uint) error
	Exists(id uint) (bool, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// FindAll returns all customers newest first, each with a lightweight
// projection of its treatments. An optional case-insensitive substring
// filter applies to the name.
func (r *customerRepository) FindAll(search string) ([]model.Customer, error) {
	var customers []model.Customer

	query := r.db.
		Preload("Treatments", func(db *gorm.DB) *gorm.DB {
			return db.
				Select("id", "customer_id", "date", "menu", "stylist_name", "price").
				Order("date DESC")
		}).
		Order("created_at DESC")

	if search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}

	if err := query.Find(&customers).Error; err != nil {
		logger.Error("Failed to list customers", err, map[string]interface{}{
			"search": search,
		})
		return nil, err
	}

	return customers, nil
}

func (r *customerRepository) FindByID(id uint) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByIDWithTreatments returns one customer with the full treatment list
// and each treatment's images.
func (r *customerRepository) FindByIDWithTreatments(id uint) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.
		Preload("Treatments", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Preload("Treatments.Images").
		First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindForExport returns the full customer/treatment/image join ordered oldest
// first. A non-nil customerID restricts the result to one customer.
func (r *customerRepository) FindForExport(customerID *uint) ([]model.Customer, error) {
	var customers []model.Customer

	query := r.db.
		Preload("Treatments", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		Preload("Treatments.Images").
		Order("created_at ASC")

	if customerID != nil {
		query = query.Where("id = ?", *customerID)
	}

	if err := query.Find(&customers).Error; err != nil {
		logger.Error("Failed to load customers for export", err, nil)
		return nil, err
	}

	return customers, nil
}

func (r *customerRepository) Create(customer *model.Customer) error {
	if err := r.db.Create(customer).Error; err != nil {
		logger.Error("Failed to create customer", err, map[string]interface{}{
			"name": customer.Name,
		})
		return err
	}

	logger.Debug("Customer created", map[string]interface{}{
		"customer_id": customer.ID,
	})
	return nil
}

func (r *customerRepository) Update(customer *model.Customer) error {
	if err := r.db.Save(customer).Error; err != nil {
		logger.Error("Failed to update customer", err, map[string]interface{}{
			"customer_id": customer.ID,
		})
		return err
	}
	return nil
}

// Delete removes the customer row. Treatments and treatment images go with it
// via the database cascade; nothing is orchestrated here.
func (r *customerRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Customer{}, id).Error; err != nil {
		logger.Error("Failed to delete customer", err, map[string]interface{}{
			"customer_id": id,
		})
		return err
	}

	logger.Debug("Customer deleted", map[string]interface{}{
		"customer_id": id,
	})
	return nil
}

func (r *customerRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Customer{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
