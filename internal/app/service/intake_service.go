package service

import (
	"strings"

	"salon-crm-backend/internal/app/model"
	"salon-crm-backend/internal/app/repository"
	"salon-crm-backend/pkg/logger"
)

// intakeNoteMarker prefixes notes written by customers themselves, so staff
// can tell them apart from staff-entered notes at a glance.
const intakeNoteMarker = "【顧客入力】"

// IntakeInput is the payload of the public self-registration form.
type IntakeInput struct {
	Name        string
	Gender      *string
	DateOfBirth *string
	Phone       *string
	Email       *string
	Notes       *string
}

type IntakeService interface {
	Register(input IntakeInput) (*model.Customer, error)
}

type intakeService struct {
	customerRepo repository.CustomerRepository
}

func NewIntakeService(customerRepo repository.CustomerRepository) IntakeService {
	return &intakeService{customerRepo: customerRepo}
}

// Register creates a customer from the public form. Customer-written notes
// get the intake marker so staff notes and self-entered notes never mix.
func (s *intakeService) Register(input IntakeInput) (*model.Customer, error) {
	name := strings.TrimSpace(input.Name)

	fieldErrs := newFieldErrors()
	if name == "" {
		fieldErrs.add("name", "名前は必須です")
	}
	if input.Email != nil && !isValidEmail(*input.Email) {
		fieldErrs.add("email", "有効なメールアドレスを入力してください")
	}
	if err := fieldErrs.orNil(); err != nil {
		return nil, err
	}

	notes := input.Notes
	if notes != nil && strings.TrimSpace(*notes) != "" {
		marked := intakeNoteMarker + " " + strings.TrimSpace(*notes)
		notes = &marked
	} else {
		notes = nil
	}

	customer := &model.Customer{
		Name:        name,
		Gender:      input.Gender,
		DateOfBirth: input.DateOfBirth,
		Phone:       input.Phone,
		Email:       input.Email,
		Notes:       notes,
	}

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}

	logger.Info("Customer self-registered", map[string]interface{}{
		"customer_id": customer.ID,
	})
	return customer, nil
}
