package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/internal/domain/enum"
	"github.com/minhphamdev/banle-api/internal/domain/repository"
)

// In-memory fakes for the repository interfaces. Each fake embeds its
// interface so only the methods the services under test actually call need an
// implementation; anything else panics loudly.

type fakeCartStore struct {
	data    map[uuid.UUID][]byte
	saveErr error
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{data: make(map[uuid.UUID][]byte)}
}

func (s *fakeCartStore) Load(ctx context.Context, userID uuid.UUID) (*entity.CartSet, error) {
	raw, ok := s.data[userID]
	if !ok {
		return nil, nil
	}
	return entity.UnmarshalCartSet(raw)
}

func (s *fakeCartStore) Save(ctx context.Context, userID uuid.UUID, set *entity.CartSet) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	raw, err := set.Marshal()
	if err != nil {
		return err
	}
	s.data[userID] = raw
	return nil
}

func (s *fakeCartStore) Delete(ctx context.Context, userID uuid.UUID) error {
	delete(s.data, userID)
	return nil
}

type fakeProductRepo struct {
	repository.ProductRepository
	products     map[uuid.UUID]*entity.Product
	decremented  map[uuid.UUID]int
	decrementErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:    make(map[uuid.UUID]*entity.Product),
		decremented: make(map[uuid.UUID]int),
	}
}

func (r *fakeProductRepo) add(p entity.Product) *entity.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = &p
	return &p
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) DecrementStockFloored(ctx context.Context, id uuid.UUID, amount int) error {
	if r.decrementErr != nil {
		return r.decrementErr
	}
	p, ok := r.products[id]
	if !ok {
		return nil
	}
	p.Quantity -= amount
	if p.Quantity < 0 {
		p.Quantity = 0
	}
	r.decremented[id] += amount
	return nil
}

type fakePromotionRepo struct {
	repository.PromotionRepository
	promotions []entity.Promotion
	used       map[uuid.UUID]int
	incErr     error
}

func newFakePromotionRepo() *fakePromotionRepo {
	return &fakePromotionRepo{used: make(map[uuid.UUID]int)}
}

func (r *fakePromotionRepo) add(p entity.Promotion) entity.Promotion {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.promotions = append(r.promotions, p)
	return p
}

func (r *fakePromotionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	for i := range r.promotions {
		if r.promotions[i].ID == id {
			cp := r.promotions[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePromotionRepo) ListCandidates(ctx context.Context, today time.Time) ([]entity.Promotion, error) {
	var out []entity.Promotion
	for i := range r.promotions {
		if r.promotions[i].InDateRange(today) {
			out = append(out, r.promotions[i])
		}
	}
	return out, nil
}

func (r *fakePromotionRepo) IncrementUsed(ctx context.Context, id uuid.UUID) error {
	if r.incErr != nil {
		return r.incErr
	}
	r.used[id]++
	return nil
}

type recordedRedemption struct {
	customerID uuid.UUID
	invoiceID  uuid.UUID
	ruleIDs    []uuid.UUID
}

type fakeRedemptionRepo struct {
	redeemed map[uuid.UUID]map[uuid.UUID]bool
	records  []recordedRedemption
}

func newFakeRedemptionRepo() *fakeRedemptionRepo {
	return &fakeRedemptionRepo{redeemed: make(map[uuid.UUID]map[uuid.UUID]bool)}
}

func (r *fakeRedemptionRepo) markRedeemed(customerID, ruleID uuid.UUID) {
	if r.redeemed[customerID] == nil {
		r.redeemed[customerID] = make(map[uuid.UUID]bool)
	}
	r.redeemed[customerID][ruleID] = true
}

func (r *fakeRedemptionRepo) RedeemedRuleIDs(ctx context.Context, customerID uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool)
	for id := range r.redeemed[customerID] {
		out[id] = true
	}
	return out, nil
}

func (r *fakeRedemptionRepo) Record(ctx context.Context, customerID, invoiceID uuid.UUID, ruleIDs []uuid.UUID) error {
	r.records = append(r.records, recordedRedemption{customerID: customerID, invoiceID: invoiceID, ruleIDs: ruleIDs})
	for _, id := range ruleIDs {
		r.markRedeemed(customerID, id)
	}
	return nil
}

type fakeVoucherRepo struct {
	repository.VoucherRepository
	vouchers map[string]*entity.Voucher
	used     map[uuid.UUID]int
	getErr   error
}

func newFakeVoucherRepo() *fakeVoucherRepo {
	return &fakeVoucherRepo{
		vouchers: make(map[string]*entity.Voucher),
		used:     make(map[uuid.UUID]int),
	}
}

func (r *fakeVoucherRepo) add(v entity.Voucher) entity.Voucher {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.Code = entity.NormalizeVoucherCode(v.Code)
	r.vouchers[v.Code] = &v
	return v
}

func (r *fakeVoucherRepo) GetByCode(ctx context.Context, code string) (*entity.Voucher, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	v, ok := r.vouchers[entity.NormalizeVoucherCode(code)]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVoucherRepo) IncrementUsed(ctx context.Context, id uuid.UUID) error {
	for _, v := range r.vouchers {
		if v.ID == id {
			v.Used++
			r.used[id]++
			return nil
		}
	}
	return nil
}

type recordedPurchase struct {
	customerID uuid.UUID
	amount     int64
	at         time.Time
}

type fakeCustomerRepo struct {
	repository.CustomerRepository
	customers map[uuid.UUID]*entity.Customer
	entries   map[uuid.UUID][]entity.DebtEntry
	purchases []recordedPurchase
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		customers: make(map[uuid.UUID]*entity.Customer),
		entries:   make(map[uuid.UUID][]entity.DebtEntry),
	}
}

func (r *fakeCustomerRepo) add(c entity.Customer) *entity.Customer {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.customers[c.ID] = &c
	return &c
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	customer.CreatedAt = time.Now()
	cp := *customer
	r.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) GetWithDebtHistory(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.DebtEntries = append([]entity.DebtEntry(nil), r.entries[id]...)
	return &cp, nil
}

func (r *fakeCustomerRepo) MutateDebt(ctx context.Context, customerID uuid.UUID, compute func(current *entity.Customer) (*repository.DebtMutation, error)) (*entity.Customer, error) {
	c, ok := r.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("customer not found")
	}

	mutation, err := compute(c)
	if err != nil {
		return nil, err
	}

	newAmount := mutation.NewAmount
	c.DebtAmount = &newAmount
	if len(mutation.AddInvoiceIDs) > 0 {
		c.DebtInvoiceIDs = append(c.DebtInvoiceIDs, mutation.AddInvoiceIDs...)
	}
	if len(mutation.RemoveInvoiceIDs) > 0 {
		remove := make(map[uuid.UUID]bool, len(mutation.RemoveInvoiceIDs))
		for _, id := range mutation.RemoveInvoiceIDs {
			remove[id] = true
		}
		kept := c.DebtInvoiceIDs[:0]
		for _, id := range c.DebtInvoiceIDs {
			if !remove[id] {
				kept = append(kept, id)
			}
		}
		c.DebtInvoiceIDs = kept
	}
	if mutation.Entry != nil {
		entry := *mutation.Entry
		entry.ID = uuid.New()
		entry.CreatedAt = time.Now()
		r.entries[customerID] = append(r.entries[customerID], entry)
	}

	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) RecordPurchase(ctx context.Context, customerID uuid.UUID, amount int64, at time.Time) error {
	c, ok := r.customers[customerID]
	if !ok {
		return fmt.Errorf("customer not found")
	}
	c.TotalSpent += amount
	c.PurchaseCount++
	c.LastPurchaseDate = &at
	r.purchases = append(r.purchases, recordedPurchase{customerID: customerID, amount: amount, at: at})
	return nil
}

func (r *fakeCustomerRepo) lastEntry(customerID uuid.UUID) *entity.DebtEntry {
	entries := r.entries[customerID]
	if len(entries) == 0 {
		return nil
	}
	return &entries[len(entries)-1]
}

type fakeInvoiceRepo struct {
	repository.InvoiceRepository
	invoices  map[uuid.UUID]*entity.Invoice
	created   []*entity.Invoice
	createErr error
	updateErr error
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]*entity.Invoice)}
}

func (r *fakeInvoiceRepo) add(inv entity.Invoice) *entity.Invoice {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	r.invoices[inv.ID] = &inv
	return &inv
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *invoice
	r.invoices[invoice.ID] = &cp
	r.created = append(r.created, &cp)
	return nil
}

func (r *fakeInvoiceRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Invoice, error) {
	var out []entity.Invoice
	for _, id := range ids {
		if inv, ok := r.invoices[id]; ok {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) UpdatePaymentMethod(ctx context.Context, ids []uuid.UUID, method enum.PaymentMethod) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for _, id := range ids {
		if inv, ok := r.invoices[id]; ok {
			inv.PaymentMethod = method
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type fakeShopRepo struct {
	profile *entity.ShopProfile
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{profile: &entity.ShopProfile{ID: uuid.New(), Name: "Test Shop"}}
}

func (r *fakeShopRepo) Get(ctx context.Context) (*entity.ShopProfile, error) {
	cp := *r.profile
	return &cp, nil
}

func (r *fakeShopRepo) Update(ctx context.Context, profile *entity.ShopProfile) error {
	cp := *profile
	r.profile = &cp
	return nil
}

func (r *fakeShopRepo) NextInvoiceNumber(ctx context.Context) (int64, error) {
	r.profile.InvoiceCounter++
	return r.profile.InvoiceCounter, nil
}

func (r *fakeShopRepo) PeekInvoiceNumber(ctx context.Context) (int64, error) {
	return r.profile.InvoiceCounter + 1, nil
}
