package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/sellhub/pos-api/internal/domain/repository"
	"github.com/sellhub/pos-api/internal/domain/settlement"
	"github.com/sellhub/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SettlementService records payments against transactions. The persistence
// sequence is not atomic: each step is an independent external write, so a
// failure mid-sequence replays the completed steps' compensations in reverse
// to restore the pre-settlement state.
type SettlementService struct {
	transactionRepo repository.TransactionRepository
	customerRepo    repository.CustomerRepository
	reservationRepo repository.ReservationRepository

	// inProgress guards against a duplicate settlement being started for the
	// same transaction, keyed by transaction id rather than a per-terminal
	// flag so the guard scope matches the contended resource.
	mu         sync.Mutex
	inProgress map[uuid.UUID]bool
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	transactionRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	reservationRepo repository.ReservationRepository,
) *SettlementService {
	return &SettlementService{
		transactionRepo: transactionRepo,
		customerRepo:    customerRepo,
		reservationRepo: reservationRepo,
		inProgress:      make(map[uuid.UUID]bool),
	}
}

// SettleInput represents a settlement request
type SettleInput struct {
	TransactionID uuid.UUID
	ActingUserID  uuid.UUID
	Payment       float64
}

// SettlementOutcome reports the applied settlement
type SettlementOutcome struct {
	Transaction     *entity.Transaction `json:"transaction"`
	BillTotal       float64             `json:"bill_total"`
	CreditRemaining float64             `json:"credit_remaining"`
	CustomerBalance float64             `json:"customer_balance"`
}

func toCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func (s *SettlementService) acquire(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inProgress[id] {
		return false
	}
	s.inProgress[id] = true
	return true
}

func (s *SettlementService) release(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inProgress, id)
}

// SettleTransaction applies a payment to a transaction: it derives the bill
// total against the customer's standing balance, validates the payment and
// the status transition, then persists payment fields, status, customer
// balance and reservation completion in order. A concurrent invocation for
// the same transaction returns ErrSettlementInProgress, which callers treat
// as a no-op.
func (s *SettlementService) SettleTransaction(ctx context.Context, input *SettleInput) (*SettlementOutcome, error) {
	if !s.acquire(input.TransactionID) {
		return nil, settlement.ErrSettlementInProgress
	}
	defer s.release(input.TransactionID)

	tx, err := s.transactionRepo.GetWithProducts(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	var customer *entity.Customer
	var customerBalance int64
	creditAllowed := false
	if tx.CustomerID != nil {
		customer, err = s.customerRepo.GetByID(ctx, *tx.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		customerBalance = customer.BalanceAmount
		creditAllowed = customer.CreditAllowed
	}

	result, err := settlement.Calculate(settlement.Input{
		TransactionTotal: tx.TotalAmount,
		AlreadyPaid:      tx.AmountPaidCash,
		CustomerBalance:  customerBalance,
		ProposedPayment:  toCents(input.Payment),
		CreditAllowed:    creditAllowed,
		CurrentStatus:    tx.Status,
	})
	if err != nil {
		return nil, err
	}

	if err := enum.ValidateTransition(tx.Status, result.NextStatus); err != nil {
		return nil, err
	}

	if err := s.persistSettlement(ctx, tx, customer, input.ActingUserID, result); err != nil {
		return nil, err
	}

	tx.AmountPaidCash = result.TotalPaid
	tx.AmountCreditRemaining = result.CreditRemaining
	tx.Status = result.NextStatus
	return &SettlementOutcome{
		Transaction:     tx,
		BillTotal:       float64(result.BillTotal) / 100,
		CreditRemaining: float64(result.CreditRemaining) / 100,
		CustomerBalance: float64(result.NewCustomerBalance) / 100,
	}, nil
}

// persistSettlement runs the four-step write sequence. Each completed step
// pushes its compensation; on failure the compensations replay in reverse
// against the pre-settlement snapshot.
func (s *SettlementService) persistSettlement(ctx context.Context, tx *entity.Transaction, customer *entity.Customer, actingUserID uuid.UUID, result settlement.Result) error {
	prevPaid := tx.AmountPaidCash
	prevCredit := tx.AmountCreditRemaining
	prevStatus := tx.Status

	var compensations []func(context.Context) error

	rollback := func(ctx context.Context, stepErr error) error {
		for i := len(compensations) - 1; i >= 0; i-- {
			if rbErr := compensations[i](ctx); rbErr != nil {
				return &settlement.RollbackFailureError{
					TransactionID: tx.ID,
					StepErr:       stepErr,
					RollbackErr:   rbErr,
				}
			}
		}
		return stepErr
	}

	if err := s.transactionRepo.UpdatePaymentFields(ctx, tx.ID, result.TotalPaid, result.CreditRemaining); err != nil {
		return err
	}
	compensations = append(compensations, func(ctx context.Context) error {
		return s.transactionRepo.UpdatePaymentFields(ctx, tx.ID, prevPaid, prevCredit)
	})

	if err := s.transactionRepo.UpdateStatus(ctx, tx.ID, result.NextStatus, actingUserID); err != nil {
		return rollback(ctx, err)
	}
	compensations = append(compensations, func(ctx context.Context) error {
		return s.transactionRepo.UpdateStatus(ctx, tx.ID, prevStatus, actingUserID)
	})

	if customer != nil {
		prevBalance := customer.BalanceAmount
		if err := s.customerRepo.UpdateBalance(ctx, customer.ID, result.NewCustomerBalance); err != nil {
			return rollback(ctx, err)
		}
		compensations = append(compensations, func(ctx context.Context) error {
			return s.customerRepo.UpdateBalance(ctx, customer.ID, prevBalance)
		})
		customer.BalanceAmount = result.NewCustomerBalance
	}

	if result.NextStatus == enum.TransactionStatusSettled && tx.ReservationID != nil {
		if err := s.reservationRepo.Complete(ctx, *tx.ReservationID); err != nil {
			return rollback(ctx, err)
		}
	}

	return nil
}
