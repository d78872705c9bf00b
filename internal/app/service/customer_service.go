package service

import (
	"errors"

	"gorm.io/gorm"
	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/internal/app/repository"
	"salon-crm-backend/pkg/logger"
)

var ErrCustomerNotFound = errors.New("customer not found")

// CustomerListFilter carries the dashboard's list filters. DateFrom/DateTo
// are accepted for compatibility but not applied.
// TODO: apply the visit-date range filter once the dashboard exposes it.
type CustomerListFilter struct {
	Search   string
	DateFrom string
	DateTo   string
}

// CustomerInput is the write payload for create. Name is required; the rest
// stay nil when absent.
type CustomerInput struct {
	Name        string
	Gender      *string
	DateOfBirth *string
	Phone       *string
	Email       *string
	Notes       *string
}

// CustomerUpdateInput is the partial-update payload; every field is optional,
// but a supplied name must be non-empty.
type CustomerUpdateInput struct {
	Name        *string
	Gender      *string
	DateOfBirth *string
	Phone       *string
	Email       *string
	Notes       *string
}

type CustomerService interface {
	List(filter CustomerListFilter) ([]model.Customer, error)
	Get(id uint) (*model.Customer, error)
	Create(input CustomerInput) (*model.Customer, error)
	Update(id uint, input CustomerUpdateInput) (*model.Customer, error)
	Delete(id uint) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) List(filter CustomerListFilter) ([]model.Customer, error) {
	return s.customerRepo.FindAll(filter.Search)
}

func (s *customerService) Get(id uint) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByIDWithTreatments(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Create(input CustomerInput) (*model.Customer, error) {
	if err := validateCustomerInput(input.Name, input.Email); err != nil {
		return nil, err
	}

	customer := &model.Customer{
		Name:        input.Name,
		Gender:      input.Gender,
		DateOfBirth: input.DateOfBirth,
		Phone:       input.Phone,
		Email:       input.Email,
		Notes:       input.Notes,
	}

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}

	logger.Info("Customer registered", map[string]interface{}{
		"customer_id": customer.ID,
	})
	return customer, nil
}

func (s *customerService) Update(id uint, input CustomerUpdateInput) (*model.Customer, error) {
	fieldErrs := newFieldErrors()
	if input.Name != nil && *input.Name == "" {
		fieldErrs.add("name", "名前は必須です")
	}
	if input.Email != nil && !isValidEmail(*input.Email) {
		fieldErrs.add("email", "有効なメールアドレスを入力してください")
	}
	if err := fieldErrs.orNil(); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Gender != nil {
		customer.Gender = input.Gender
	}
	if input.DateOfBirth != nil {
		customer.DateOfBirth = input.DateOfBirth
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Notes != nil {
		customer.Notes = input.Notes
	}

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(id uint) error {
	exists, err := s.customerRepo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCustomerNotFound
	}
	return s.customerRepo.Delete(id)
}

func validateCustomerInput(name string, email *string) error {
	fieldErrs := newFieldErrors()
	if name == "" {
		fieldErrs.add("name", "名前は必須です")
	}
	if email != nil && !isValidEmail(*email) {
		fieldErrs.add("email", "有効なメールアドレスを入力してください")
	}
	return fieldErrs.orNil()
}
