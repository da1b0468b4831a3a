package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/internal/domain/enum"
	"github.com/minhphamdev/banle-api/internal/domain/repository"
	"github.com/minhphamdev/banle-api/pkg/apperror"
)

var (
	ErrDebtAmountNotPositive = apperror.NewBadRequestError("Amount must be greater than zero")
	ErrDebtOverpayment       = apperror.NewBadRequestError("Payment exceeds the outstanding debt")
	ErrNoOutstandingDebt     = apperror.NewBadRequestError("Customer has no outstanding debt")
	ErrInvoiceNotDebt        = apperror.NewBadRequestError("Invoice is not an outstanding debt invoice")
	ErrInvoiceWrongCustomer  = apperror.NewBadRequestError("Invoice does not belong to this customer")
)

// DebtService is the customer debt ledger. Every balance change goes through
// CustomerRepository.MutateDebt, which locks the row and re-reads the current
// balance, so concurrent mutations serialize and the history stays an exact
// replay of the balance.
type DebtService struct {
	customers repository.CustomerRepository
	invoices  repository.InvoiceRepository
}

// NewDebtService creates a new debt service
func NewDebtService(customers repository.CustomerRepository, invoices repository.InvoiceRepository) *DebtService {
	return &DebtService{customers: customers, invoices: invoices}
}

// AddDebt increases a customer's debt by a manual amount (e.g. goods taken on
// credit without an invoice)
func (s *DebtService) AddDebt(ctx context.Context, customerID uuid.UUID, amount int64, note string) (*entity.Customer, error) {
	if amount <= 0 {
		return nil, ErrDebtAmountNotPositive
	}
	return s.customers.MutateDebt(ctx, customerID, func(current *entity.Customer) (*repository.DebtMutation, error) {
		return addMutation(current, amount, note, nil), nil
	})
}

// PayDebt records a repayment, moving the balance toward zero. Paying more
// than is owed is rejected so the history can never show a payment flipping
// the balance past zero.
func (s *DebtService) PayDebt(ctx context.Context, customerID uuid.UUID, amount int64, note string) (*entity.Customer, error) {
	if amount <= 0 {
		return nil, ErrDebtAmountNotPositive
	}
	return s.customers.MutateDebt(ctx, customerID, func(current *entity.Customer) (*repository.DebtMutation, error) {
		balance := current.CurrentDebt()
		if balance == 0 {
			return nil, ErrNoOutstandingDebt
		}

		var newAmount int64
		if balance > 0 {
			if amount > balance {
				return nil, ErrDebtOverpayment
			}
			newAmount = balance - amount
		} else {
			// Negative balance means the shop owes the customer; payment
			// still moves toward zero
			if amount > -balance {
				return nil, ErrDebtOverpayment
			}
			newAmount = balance + amount
		}

		return &repository.DebtMutation{
			Entry:     newEntry(current, newAmount, enum.DebtPay, note),
			NewAmount: newAmount,
		}, nil
	})
}

// RegisterInvoiceDebt books an unpaid invoice onto the customer's debt. Called
// as a checkout follow-up when the sale settles with the debt payment method.
func (s *DebtService) RegisterInvoiceDebt(ctx context.Context, customerID, invoiceID uuid.UUID, amount int64, invoiceCode string) (*entity.Customer, error) {
	if amount <= 0 {
		return nil, ErrDebtAmountNotPositive
	}
	note := fmt.Sprintf("Invoice %s", invoiceCode)
	return s.customers.MutateDebt(ctx, customerID, func(current *entity.Customer) (*repository.DebtMutation, error) {
		return addMutation(current, amount, note, []uuid.UUID{invoiceID}), nil
	})
}

// PayInvoices settles specific outstanding debt invoices in full. The total of
// the selected invoices is paid off in one ledger entry, the invoices leave
// the customer's outstanding list, and their payment method transitions from
// debt to the method actually used. Purchase statistics are untouched; they
// were recorded when the invoices were issued. Warnings report a failed
// method transition after the ledger entry committed.
func (s *DebtService) PayInvoices(ctx context.Context, customerID uuid.UUID, invoiceIDs []uuid.UUID, method enum.PaymentMethod) (*entity.Customer, []string, error) {
	if len(invoiceIDs) == 0 {
		return nil, nil, apperror.NewBadRequestError("At least one invoice is required")
	}
	if !method.ValidForDebtSettlement() {
		return nil, nil, apperror.NewBadRequestError("Debt can only be settled with cash or transfer")
	}

	invoices, err := s.invoices.GetByIDs(ctx, invoiceIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(invoices) != len(invoiceIDs) {
		return nil, nil, apperror.NewNotFoundError("Invoice")
	}

	var total int64
	codes := make([]string, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		if inv.CustomerID == nil || *inv.CustomerID != customerID {
			return nil, nil, ErrInvoiceWrongCustomer
		}
		if inv.PaymentMethod != enum.PaymentDebt {
			return nil, nil, ErrInvoiceNotDebt
		}
		total += inv.GrandTotal
		codes = append(codes, inv.Code)
	}

	customer, err := s.customers.MutateDebt(ctx, customerID, func(current *entity.Customer) (*repository.DebtMutation, error) {
		outstanding := make(map[uuid.UUID]bool, len(current.DebtInvoiceIDs))
		for _, id := range current.DebtInvoiceIDs {
			outstanding[id] = true
		}
		for _, id := range invoiceIDs {
			if !outstanding[id] {
				return nil, ErrInvoiceNotDebt
			}
		}

		balance := current.CurrentDebt()
		if balance > 0 && total > balance {
			return nil, ErrDebtOverpayment
		}
		newAmount := balance - total

		note := fmt.Sprintf("Paid invoices %s", strings.Join(codes, ", "))
		return &repository.DebtMutation{
			Entry:            newEntry(current, newAmount, enum.DebtPay, note),
			NewAmount:        newAmount,
			RemoveInvoiceIDs: invoiceIDs,
		}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	// The ledger entry is durable at this point; a failed method transition
	// must not be reported as a failed payment
	var warnings []string
	if err := s.invoices.UpdatePaymentMethod(ctx, invoiceIDs, method); err != nil {
		log.Printf("debt settlement for customer %s: failed to update invoice payment method: %v", customerID, err)
		warnings = append(warnings, "Failed to update the invoice payment method")
	}
	return customer, warnings, nil
}

// GetDebtHistory returns a customer with the full ordered debt ledger loaded
func (s *DebtService) GetDebtHistory(ctx context.Context, customerID uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customers.GetWithDebtHistory(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// OutstandingInvoices returns the customer's unpaid debt invoices
func (s *DebtService) OutstandingInvoices(ctx context.Context, customerID uuid.UUID) ([]entity.Invoice, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	if len(customer.DebtInvoiceIDs) == 0 {
		return []entity.Invoice{}, nil
	}
	return s.invoices.GetByIDs(ctx, customer.DebtInvoiceIDs)
}

func addMutation(current *entity.Customer, amount int64, note string, invoiceIDs []uuid.UUID) *repository.DebtMutation {
	newAmount := current.CurrentDebt() + amount
	action := enum.DebtAdd
	if !current.HasDebtHistory() {
		action = enum.DebtInit
	}
	return &repository.DebtMutation{
		Entry:         newEntry(current, newAmount, action, note),
		NewAmount:     newAmount,
		AddInvoiceIDs: invoiceIDs,
	}
}

// newEntry builds the ledger line for a balance transition. The initializing
// entry carries no previous amount.
func newEntry(current *entity.Customer, newAmount int64, action enum.DebtAction, note string) *entity.DebtEntry {
	entry := &entity.DebtEntry{
		CustomerID:   current.ID,
		NewAmount:    newAmount,
		ChangeAmount: newAmount - current.CurrentDebt(),
		Action:       action,
	}
	if current.HasDebtHistory() {
		prev := current.CurrentDebt()
		entry.PreviousAmount = &prev
	}
	if note != "" {
		entry.Note = &note
	}
	return entry
}
