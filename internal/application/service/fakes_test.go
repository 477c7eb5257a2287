package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sellhub/pos-api/internal/domain/entity"
	"github.com/sellhub/pos-api/internal/domain/enum"
	"github.com/sellhub/pos-api/internal/domain/repository"
	"github.com/sellhub/pos-api/pkg/pagination"
)

// In-memory repository fakes. Error-injection hooks take the 1-based call
// number so tests can fail a specific write in a sequence, including the
// compensating one.

type statusWrite struct {
	id     uuid.UUID
	status enum.TransactionStatus
	by     uuid.UUID
}

type paymentWrite struct {
	id              uuid.UUID
	paidCash        int64
	creditRemaining int64
}

type fakeTransactionRepo struct {
	byID map[uuid.UUID]*entity.Transaction

	statusWrites  []statusWrite
	paymentWrites []paymentWrite

	updateStatusHook  func(call int) error
	updatePaymentHook func(call int) error
}

func newFakeTransactionRepo(txs ...*entity.Transaction) *fakeTransactionRepo {
	r := &fakeTransactionRepo{byID: make(map[uuid.UUID]*entity.Transaction)}
	for _, tx := range txs {
		r.byID[tx.ID] = tx
	}
	return r
}

func (r *fakeTransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	r.byID[tx.ID] = tx
	return nil
}

func (r *fakeTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return r.byID[id], nil
}

func (r *fakeTransactionRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Transaction, error) {
	for _, tx := range r.byID {
		if tx.InvoiceNo == invoiceNo {
			return tx, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) GetWithProducts(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return r.byID[id], nil
}

func (r *fakeTransactionRepo) Update(ctx context.Context, tx *entity.Transaction) error {
	r.byID[tx.ID] = tx
	return nil
}

func (r *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeTransactionRepo) List(ctx context.Context, userID uuid.UUID, params *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var out []entity.Transaction
	for _, tx := range r.byID {
		if tx.UserID == userID {
			out = append(out, *tx)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeTransactionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TransactionStatus, actingUserID uuid.UUID) error {
	call := len(r.statusWrites) + 1
	if r.updateStatusHook != nil {
		if err := r.updateStatusHook(call); err != nil {
			return err
		}
	}
	r.statusWrites = append(r.statusWrites, statusWrite{id: id, status: status, by: actingUserID})
	if tx, ok := r.byID[id]; ok {
		tx.Status = status
		tx.StatusUpdatedBy = &actingUserID
	}
	return nil
}

func (r *fakeTransactionRepo) UpdatePaymentFields(ctx context.Context, id uuid.UUID, amountPaidCash, amountCreditRemaining int64) error {
	call := len(r.paymentWrites) + 1
	if r.updatePaymentHook != nil {
		if err := r.updatePaymentHook(call); err != nil {
			return err
		}
	}
	r.paymentWrites = append(r.paymentWrites, paymentWrite{id: id, paidCash: amountPaidCash, creditRemaining: amountCreditRemaining})
	if tx, ok := r.byID[id]; ok {
		tx.AmountPaidCash = amountPaidCash
		tx.AmountCreditRemaining = amountCreditRemaining
	}
	return nil
}

func (r *fakeTransactionRepo) GetDue(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Transaction, int64, error) {
	var out []entity.Transaction
	for _, tx := range r.byID {
		if tx.UserID == userID && tx.AmountCreditRemaining > 0 {
			out = append(out, *tx)
		}
	}
	return out, int64(len(out)), nil
}

type fakeLineRepo struct {
	txRepo *fakeTransactionRepo

	createBatchHook func(call int) error
	createCalls     int
}

func newFakeLineRepo(txRepo *fakeTransactionRepo) *fakeLineRepo {
	return &fakeLineRepo{txRepo: txRepo}
}

func (r *fakeLineRepo) CreateBatch(ctx context.Context, products []entity.TransactionProduct) error {
	r.createCalls++
	if r.createBatchHook != nil {
		if err := r.createBatchHook(r.createCalls); err != nil {
			return err
		}
	}
	for i := range products {
		if products[i].ID == uuid.Nil {
			products[i].ID = uuid.New()
		}
	}
	if len(products) > 0 {
		if tx, ok := r.txRepo.byID[products[0].TransactionID]; ok {
			tx.Products = append(tx.Products, products...)
		}
	}
	return nil
}

func (r *fakeLineRepo) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]entity.TransactionProduct, error) {
	if tx, ok := r.txRepo.byID[transactionID]; ok {
		return tx.Products, nil
	}
	return nil, nil
}

func (r *fakeLineRepo) DeleteByTransactionID(ctx context.Context, transactionID uuid.UUID) error {
	if tx, ok := r.txRepo.byID[transactionID]; ok {
		tx.Products = nil
	}
	return nil
}

type fakeDiscountRepo struct {
	byID map[uuid.UUID]*entity.Discount
}

func newFakeDiscountRepo(discounts ...*entity.Discount) *fakeDiscountRepo {
	r := &fakeDiscountRepo{byID: make(map[uuid.UUID]*entity.Discount)}
	for _, d := range discounts {
		r.byID[d.ID] = d
	}
	return r
}

func (r *fakeDiscountRepo) Create(ctx context.Context, discount *entity.Discount) error {
	if discount.ID == uuid.Nil {
		discount.ID = uuid.New()
	}
	r.byID[discount.ID] = discount
	return nil
}

func (r *fakeDiscountRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	return r.byID[id], nil
}

func (r *fakeDiscountRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Discount, error) {
	var out []entity.Discount
	for _, id := range ids {
		if d, ok := r.byID[id]; ok {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDiscountRepo) Update(ctx context.Context, discount *entity.Discount) error {
	r.byID[discount.ID] = discount
	return nil
}

func (r *fakeDiscountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeDiscountRepo) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Discount, error) {
	var out []entity.Discount
	for _, d := range r.byID {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDiscountRepo) ListActive(ctx context.Context, userID uuid.UUID) ([]entity.Discount, error) {
	var out []entity.Discount
	for _, d := range r.byID {
		if d.UserID == userID && d.IsActive {
			out = append(out, *d)
		}
	}
	return out, nil
}

type fakeTaxRepo struct {
	byID map[uuid.UUID]*entity.TaxType
}

func newFakeTaxRepo(taxes ...*entity.TaxType) *fakeTaxRepo {
	r := &fakeTaxRepo{byID: make(map[uuid.UUID]*entity.TaxType)}
	for _, tax := range taxes {
		r.byID[tax.ID] = tax
	}
	return r
}

func (r *fakeTaxRepo) Create(ctx context.Context, tax *entity.TaxType) error {
	if tax.ID == uuid.Nil {
		tax.ID = uuid.New()
	}
	r.byID[tax.ID] = tax
	return nil
}

func (r *fakeTaxRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxType, error) {
	return r.byID[id], nil
}

func (r *fakeTaxRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.TaxType, error) {
	var out []entity.TaxType
	for _, id := range ids {
		if tax, ok := r.byID[id]; ok {
			out = append(out, *tax)
		}
	}
	return out, nil
}

func (r *fakeTaxRepo) Update(ctx context.Context, tax *entity.TaxType) error {
	r.byID[tax.ID] = tax
	return nil
}

func (r *fakeTaxRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeTaxRepo) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.TaxType, error) {
	var out []entity.TaxType
	for _, tax := range r.byID {
		if tax.UserID == userID {
			out = append(out, *tax)
		}
	}
	return out, nil
}

func (r *fakeTaxRepo) ListActive(ctx context.Context, userID uuid.UUID) ([]entity.TaxType, error) {
	var out []entity.TaxType
	for _, tax := range r.byID {
		if tax.UserID == userID && tax.IsActive {
			out = append(out, *tax)
		}
	}
	return out, nil
}

type balanceWrite struct {
	id      uuid.UUID
	balance int64
}

type fakeCustomerRepo struct {
	byID map[uuid.UUID]*entity.Customer

	balanceWrites     []balanceWrite
	updateBalanceHook func(call int) error
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{byID: make(map[uuid.UUID]*entity.Customer)}
	for _, c := range customers {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.byID[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.byID[id], nil
}

func (r *fakeCustomerRepo) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	for _, c := range r.byID {
		if c.Email != nil && *c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.byID[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) UpdateBalance(ctx context.Context, id uuid.UUID, newBalance int64) error {
	call := len(r.balanceWrites) + 1
	if r.updateBalanceHook != nil {
		if err := r.updateBalanceHook(call); err != nil {
			return err
		}
	}
	r.balanceWrites = append(r.balanceWrites, balanceWrite{id: id, balance: newBalance})
	if c, ok := r.byID[id]; ok {
		c.BalanceAmount = newBalance
	}
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.byID {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakeReservationRepo struct {
	byID      map[uuid.UUID]*entity.Reservation
	completed []uuid.UUID

	completeHook func(call int) error
}

func newFakeReservationRepo(reservations ...*entity.Reservation) *fakeReservationRepo {
	r := &fakeReservationRepo{byID: make(map[uuid.UUID]*entity.Reservation)}
	for _, res := range reservations {
		r.byID[res.ID] = res
	}
	return r
}

func (r *fakeReservationRepo) Create(ctx context.Context, reservation *entity.Reservation) error {
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	r.byID[reservation.ID] = reservation
	return nil
}

func (r *fakeReservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	return r.byID[id], nil
}

func (r *fakeReservationRepo) Complete(ctx context.Context, id uuid.UUID) error {
	call := len(r.completed) + 1
	if r.completeHook != nil {
		if err := r.completeHook(call); err != nil {
			return err
		}
	}
	r.completed = append(r.completed, id)
	if res, ok := r.byID[id]; ok {
		res.IsCompleted = true
		now := time.Now()
		res.CompletedAt = &now
	}
	return nil
}

type fakeRefundRepo struct {
	byID map[uuid.UUID]*entity.RefundTransaction
}

func newFakeRefundRepo() *fakeRefundRepo {
	return &fakeRefundRepo{byID: make(map[uuid.UUID]*entity.RefundTransaction)}
}

func (r *fakeRefundRepo) Create(ctx context.Context, refund *entity.RefundTransaction) error {
	if refund.ID == uuid.Nil {
		refund.ID = uuid.New()
	}
	r.byID[refund.ID] = refund
	return nil
}

func (r *fakeRefundRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.RefundTransaction, error) {
	return r.byID[id], nil
}

func (r *fakeRefundRepo) GetBySellingTransactionID(ctx context.Context, sellingTransactionID uuid.UUID) ([]entity.RefundTransaction, error) {
	var out []entity.RefundTransaction
	for _, refund := range r.byID {
		if refund.SellingTransactionID == sellingTransactionID {
			out = append(out, *refund)
		}
	}
	return out, nil
}

func (r *fakeRefundRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.RefundTransaction, int64, error) {
	var out []entity.RefundTransaction
	for _, refund := range r.byID {
		if refund.UserID == userID {
			out = append(out, *refund)
		}
	}
	return out, int64(len(out)), nil
}

type fakeExchangeRepo struct {
	byID map[uuid.UUID]*entity.ExchangeTransaction
}

func newFakeExchangeRepo() *fakeExchangeRepo {
	return &fakeExchangeRepo{byID: make(map[uuid.UUID]*entity.ExchangeTransaction)}
}

func (r *fakeExchangeRepo) Create(ctx context.Context, exchange *entity.ExchangeTransaction) error {
	if exchange.ID == uuid.Nil {
		exchange.ID = uuid.New()
	}
	r.byID[exchange.ID] = exchange
	return nil
}

func (r *fakeExchangeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ExchangeTransaction, error) {
	return r.byID[id], nil
}

func (r *fakeExchangeRepo) GetBySellingTransactionID(ctx context.Context, sellingTransactionID uuid.UUID) ([]entity.ExchangeTransaction, error) {
	var out []entity.ExchangeTransaction
	for _, exchange := range r.byID {
		if exchange.SellingTransactionID == sellingTransactionID {
			out = append(out, *exchange)
		}
	}
	return out, nil
}

func (r *fakeExchangeRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.ExchangeTransaction, int64, error) {
	var out []entity.ExchangeTransaction
	for _, exchange := range r.byID {
		if exchange.UserID == userID {
			out = append(out, *exchange)
		}
	}
	return out, int64(len(out)), nil
}

type fakeProductRepo struct {
	byID map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{byID: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.byID[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.byID[id], nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.byID[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.byID {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) ListActive(ctx context.Context, userID uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.byID {
		if p.UserID == userID && p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}
