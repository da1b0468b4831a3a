package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	domainRepo "github.com/minhphamdev/banle-api/internal/domain/repository"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetWithDebtHistory(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).
		Preload("DebtEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, params *domainRepo.CustomerFilterParams) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{})
	if params.Search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.WithDebt {
		query = query.Where("debt_amount IS NOT NULL AND debt_amount <> 0")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&customers).Error
	return customers, total, err
}

// MutateDebt serializes balance changes through a row lock. The compute
// callback sees the current committed state and either vetoes the change or
// returns the new balance with its ledger entry; everything is applied in one
// transaction.
func (r *customerRepository) MutateDebt(ctx context.Context, customerID uuid.UUID, compute func(current *entity.Customer) (*domainRepo.DebtMutation, error)) (*entity.Customer, error) {
	var result *entity.Customer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer entity.Customer
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&customer, "id = ?", customerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		if err != nil {
			return err
		}

		mutation, err := compute(&customer)
		if err != nil {
			return err
		}

		customer.DebtAmount = &mutation.NewAmount
		if len(mutation.AddInvoiceIDs) > 0 {
			customer.DebtInvoiceIDs = append(customer.DebtInvoiceIDs, mutation.AddInvoiceIDs...)
		}
		if len(mutation.RemoveInvoiceIDs) > 0 {
			remove := make(map[uuid.UUID]bool, len(mutation.RemoveInvoiceIDs))
			for _, id := range mutation.RemoveInvoiceIDs {
				remove[id] = true
			}
			kept := customer.DebtInvoiceIDs[:0]
			for _, id := range customer.DebtInvoiceIDs {
				if !remove[id] {
					kept = append(kept, id)
				}
			}
			customer.DebtInvoiceIDs = kept
		}

		if err := tx.Save(&customer).Error; err != nil {
			return err
		}
		if mutation.Entry != nil {
			if err := tx.Create(mutation.Entry).Error; err != nil {
				return err
			}
		}

		result = &customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordPurchase folds one settled invoice into the customer's cumulative
// statistics under the same row lock as debt mutations
func (r *customerRepository) RecordPurchase(ctx context.Context, customerID uuid.UUID, amount int64, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer entity.Customer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&customer, "id = ?", customerID).Error; err != nil {
			return err
		}

		customer.TotalSpent += amount
		customer.PurchaseCount++
		customer.LastPurchaseDate = &at

		// Purchases per 30 days, measured from the first recorded purchase
		days := at.Sub(customer.CreatedAt).Hours() / 24
		if days < 1 {
			days = 1
		}
		customer.PurchaseFrequency = float64(customer.PurchaseCount) / days * 30

		return tx.Save(&customer).Error
	})
}
