package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/repository"
	"github.com/sellhub/pos-api/pkg/apperror"
	"github.com/sellhub/pos-api/pkg/pagination"
)

// CustomerService manages customers and their standing balances. Settlement
// writes the balance through the same ledger path; a manual adjustment here
// overwrites whatever was stored before it.
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerInput represents the create or update customer input
type CustomerInput struct {
	UserID        uuid.UUID
	Name          string
	Email         *string
	Phone         *string
	Address       *string
	CreditAllowed bool
}

// CreateCustomer creates a new customer with a zero balance
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	if input.Email != nil {
		existing, err := s.customerRepo.GetByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Customer with this email already exists")
		}
	}

	customer := &entity.Customer{
		UserID:        input.UserID,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		CreditAllowed: input.CreditAllowed,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateCustomer updates customer details. The balance is not touched here.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	customer.Name = input.Name
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.CreditAllowed = input.CreditAllowed

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// SetBalance overwrites a customer's standing balance. Amounts are signed:
// positive means the customer owes the store.
func (s *CustomerService) SetBalance(ctx context.Context, id uuid.UUID, balance float64) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	newBalance := toCents(balance)
	if err := s.customerRepo.UpdateBalance(ctx, id, newBalance); err != nil {
		return nil, err
	}
	customer.BalanceAmount = newBalance
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with pagination and search
func (s *CustomerService) ListCustomers(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// DeleteCustomer removes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}
