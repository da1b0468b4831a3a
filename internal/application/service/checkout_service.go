package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/internal/domain/enum"
	"github.com/minhphamdev/banle-api/internal/domain/repository"
	"github.com/minhphamdev/banle-api/pkg/apperror"
	"github.com/minhphamdev/banle-api/pkg/bankqr"
)

var (
	ErrEmptyCart            = apperror.NewBadRequestError("Cart is empty")
	ErrInvalidPaymentMethod = apperror.NewBadRequestError("Invalid payment method")
	ErrDebtRequiresCustomer = apperror.NewBadRequestError("Debt payment requires a customer")
)

// CheckoutRequest describes how the active cart should be settled
type CheckoutRequest struct {
	PaymentMethod enum.PaymentMethod
	// NewCustomerName creates a customer on the fly when no customer is
	// attached to the cart. Required for debt payment of a walk-in customer.
	NewCustomerName string
}

// CheckoutPreview shows what committing the active cart right now would
// produce. The invoice code is a peek, not a reservation.
type CheckoutPreview struct {
	Cart        *entity.Cart `json:"cart"`
	InvoiceCode string       `json:"invoice_code"`
	SubTotal    int64        `json:"-"`
	Discount    int64        `json:"-"`
	GrandTotal  int64        `json:"-"`
	QRURL       string       `json:"qr_url,omitempty"`
	Warnings    []string     `json:"warnings,omitempty"`
}

// CheckoutResult is the outcome of a committed checkout. Warnings report
// follow-up steps that failed after the invoice was written.
type CheckoutResult struct {
	Invoice  *entity.Invoice `json:"invoice"`
	QRURL    string          `json:"qr_url,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
}

// CheckoutService turns the active cart into an immutable invoice. The
// invoice write is the single hard-fail step; everything after it (stock,
// usage counters, redemptions, stats, debt, cart reset) is best-effort and
// reported through warnings.
type CheckoutService struct {
	carts       repository.CartStore
	products    repository.ProductRepository
	promotions  repository.PromotionRepository
	redemptions repository.RedemptionRepository
	vouchers    repository.VoucherRepository
	customers   repository.CustomerRepository
	invoices    repository.InvoiceRepository
	shop        repository.ShopRepository
	cartSvc     *CartService
	debtSvc     *DebtService
	qr          *bankqr.Resolver
	prefix      string
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	carts repository.CartStore,
	products repository.ProductRepository,
	promotions repository.PromotionRepository,
	redemptions repository.RedemptionRepository,
	vouchers repository.VoucherRepository,
	customers repository.CustomerRepository,
	invoices repository.InvoiceRepository,
	shop repository.ShopRepository,
	cartSvc *CartService,
	debtSvc *DebtService,
	qr *bankqr.Resolver,
	invoicePrefix string,
) *CheckoutService {
	return &CheckoutService{
		carts:       carts,
		products:    products,
		promotions:  promotions,
		redemptions: redemptions,
		vouchers:    vouchers,
		customers:   customers,
		invoices:    invoices,
		shop:        shop,
		cartSvc:     cartSvc,
		debtSvc:     debtSvc,
		qr:          qr,
		prefix:      invoicePrefix,
	}
}

// FormatInvoiceCode renders a counter value as an invoice code
func FormatInvoiceCode(prefix string, number int64) string {
	return fmt.Sprintf("%s%06d", prefix, number)
}

// Preview reprices the active cart and shows the totals, the upcoming invoice
// code and, when the shop has a bank account, the payment QR. The code is
// peeked without reserving, so an abandoned preview leaves no gap in the
// sequence.
func (s *CheckoutService) Preview(ctx context.Context, userID uuid.UUID) (*CheckoutPreview, error) {
	result, err := s.cartSvc.GetCarts(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart := result.Set.Active()
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	preview := &CheckoutPreview{
		Cart:       cart,
		SubTotal:   cart.Subtotal(),
		Discount:   cart.TotalDiscount,
		GrandTotal: cart.Total(),
		Warnings:   result.Warnings,
	}

	number, err := s.shop.PeekInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}
	preview.InvoiceCode = FormatInvoiceCode(s.prefix, number)

	qrURL, qrWarn := s.paymentQR(ctx, preview.InvoiceCode, cart.Total())
	preview.QRURL = qrURL
	if qrWarn != "" {
		preview.Warnings = append(preview.Warnings, qrWarn)
	}
	return preview, nil
}

// Commit settles the active cart. The flow is: final reprice, payment
// validation, atomic code allocation, invoice write (abort on failure), then
// best-effort follow-ups, and finally the cart resets for the next sale.
func (s *CheckoutService) Commit(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*CheckoutResult, error) {
	if !req.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	set, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if set == nil || len(set.Carts) == 0 {
		return nil, ErrEmptyCart
	}
	cart := set.Active()
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	// Final reprice against live stock and current rules. A cart the reprice
	// had to change no longer matches what the cashier confirmed, so the
	// corrected cart is persisted and the commit rejected for another look.
	repriceWarnings, err := s.cartSvc.reprice(ctx, cart)
	if err != nil {
		return nil, err
	}
	if len(repriceWarnings) > 0 {
		if err := s.carts.Save(ctx, userID, set); err != nil {
			return nil, err
		}
		return nil, apperror.NewBadRequestError("Cart changed during checkout: " + strings.Join(repriceWarnings, "; "))
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	if cart.CustomerID == nil && req.NewCustomerName != "" {
		customer := &entity.Customer{Name: req.NewCustomerName, Active: true}
		if err := s.customers.Create(ctx, customer); err != nil {
			return nil, err
		}
		cart.CustomerID = &customer.ID
	}
	if req.PaymentMethod == enum.PaymentDebt && cart.CustomerID == nil {
		return nil, ErrDebtRequiresCustomer
	}

	invoice, appliedVoucher, appliedPromos, err := s.buildInvoice(ctx, cart, userID, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	// Hard-fail step: nothing is settled until the invoice row exists
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}

	warnings := s.runFollowUps(ctx, invoice, cart, appliedVoucher, appliedPromos)

	cart.ClearForNextSale()
	if err := s.carts.Save(ctx, userID, set); err != nil {
		warnings = append(warnings, "Failed to reset the cart after checkout")
	}

	result := &CheckoutResult{Invoice: invoice, Warnings: warnings}
	if req.PaymentMethod == enum.PaymentTransfer && invoice.BankSnapshot != nil {
		snap := invoice.BankSnapshot.Data()
		qrURL, qrErr := bankqr.FormatQRURL(bankqr.QRRequest{
			BankCode:      snap.BankCode,
			AccountNumber: snap.AccountNumber,
			AccountHolder: snap.AccountHolder,
			Amount:        invoice.GrandTotal / 100,
			Description:   snap.QRDescription,
		})
		if qrErr == nil {
			result.QRURL = qrURL
		}
	}
	return result, nil
}

// buildInvoice assembles the immutable invoice from the repriced cart,
// freezing item lines, promotion shares and the voucher terms
func (s *CheckoutService) buildInvoice(ctx context.Context, cart *entity.Cart, userID uuid.UUID, method enum.PaymentMethod) (*entity.Invoice, *entity.Voucher, []entity.Promotion, error) {
	number, err := s.shop.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	subtotal := cart.Subtotal()
	invoice := &entity.Invoice{
		ID:                uuid.New(),
		Code:              FormatInvoiceCode(s.prefix, number),
		IssuedAt:          time.Now(),
		CustomerID:        cart.CustomerID,
		UserID:            userID,
		SubTotal:          subtotal,
		Discount:          cart.TotalDiscount,
		PromotionDiscount: cart.PromotionDiscount,
		VoucherDiscount:   cart.VoucherDiscount,
		GrandTotal:        cart.Total(),
		PaymentMethod:     method,
	}

	for i := range cart.Lines {
		line := &cart.Lines[i]
		invoice.Items = append(invoice.Items, entity.InvoiceItem{
			InvoiceID: invoice.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Unit:      line.Unit,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.Total(),
		})
	}

	var appliedPromos []entity.Promotion
	if len(cart.PromotionIDs) > 0 {
		for _, id := range cart.PromotionIDs {
			promo, err := s.promotions.GetByID(ctx, id)
			if err != nil {
				continue
			}
			appliedPromos = append(appliedPromos, *promo)
		}

		// The promotion side of the capped total is what remains after the
		// voucher takes its discount in full
		cappedPromo := invoice.Discount - invoice.VoucherDiscount
		if cappedPromo < 0 {
			cappedPromo = 0
		}
		shares := AttributePromotionShares(subtotal, cappedPromo, appliedPromos)
		for _, share := range shares {
			invoice.PromotionSnapshots = append(invoice.PromotionSnapshots, entity.PromotionSnapshot{
				InvoiceID:      invoice.ID,
				PromotionID:    share.Promotion.ID,
				Name:           share.Promotion.Name,
				Type:           share.Promotion.Type,
				Value:          share.Promotion.Value,
				DiscountAmount: share.Attributed,
			})
		}
	}

	var appliedVoucher *entity.Voucher
	if cart.VoucherCode != "" {
		voucher, err := s.vouchers.GetByCode(ctx, cart.VoucherCode)
		if err != nil {
			return nil, nil, nil, err
		}
		if voucher != nil {
			appliedVoucher = voucher
			snap := datatypes.NewJSONType(entity.VoucherSnapshot{
				VoucherID:      voucher.ID,
				Code:           voucher.Code,
				Type:           voucher.Type,
				Value:          voucher.Value,
				DiscountAmount: invoice.VoucherDiscount,
			})
			invoice.VoucherSnapshot = &snap
		}
	}

	if method == enum.PaymentTransfer {
		if bankSnap := s.bankSnapshot(ctx, invoice.Code); bankSnap != nil {
			snap := datatypes.NewJSONType(*bankSnap)
			invoice.BankSnapshot = &snap
		}
	}

	return invoice, appliedVoucher, appliedPromos, nil
}

// runFollowUps performs the post-invoice settlement steps. Each failure is
// logged and reported as a warning; none of them roll the invoice back.
func (s *CheckoutService) runFollowUps(ctx context.Context, invoice *entity.Invoice, cart *entity.Cart, voucher *entity.Voucher, promos []entity.Promotion) []string {
	var warnings []string
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		log.Printf("checkout %s: %s", invoice.Code, msg)
		warnings = append(warnings, msg)
	}

	for i := range invoice.Items {
		item := &invoice.Items[i]
		if err := s.products.DecrementStockFloored(ctx, item.ProductID, item.Quantity); err != nil {
			warn("Failed to update stock for %s", item.Name)
		}
	}

	var redeemedRules []uuid.UUID
	for i := range promos {
		if err := s.promotions.IncrementUsed(ctx, promos[i].ID); err != nil {
			warn("Failed to update usage for promotion %s", promos[i].Name)
		}
		redeemedRules = append(redeemedRules, promos[i].ID)
	}
	if voucher != nil {
		if err := s.vouchers.IncrementUsed(ctx, voucher.ID); err != nil {
			warn("Failed to update usage for voucher %s", voucher.Code)
		}
		redeemedRules = append(redeemedRules, voucher.ID)
	}

	if cart.CustomerID != nil {
		customerID := *cart.CustomerID
		if len(redeemedRules) > 0 {
			if err := s.redemptions.Record(ctx, customerID, invoice.ID, redeemedRules); err != nil {
				warn("Failed to record discount redemptions")
			}
		}
		if err := s.customers.RecordPurchase(ctx, customerID, invoice.GrandTotal, invoice.IssuedAt); err != nil {
			warn("Failed to update purchase statistics")
		}
		if invoice.PaymentMethod == enum.PaymentDebt {
			if _, err := s.debtSvc.RegisterInvoiceDebt(ctx, customerID, invoice.ID, invoice.GrandTotal, invoice.Code); err != nil {
				warn("Failed to register the invoice as debt")
			}
		}
	}

	return warnings
}

// paymentQR builds the transfer QR for a preview. A missing bank account or a
// formatting failure degrades to no QR with a warning, never an error.
func (s *CheckoutService) paymentQR(ctx context.Context, invoiceCode string, amount int64) (string, string) {
	profile, err := s.shop.Get(ctx)
	if err != nil || !profile.HasBankAccount() {
		return "", ""
	}

	bankCode, err := s.qr.ResolveCode(*profile.BankName)
	if err != nil {
		if rerr := s.qr.Refresh(ctx); rerr == nil {
			bankCode, err = s.qr.ResolveCode(*profile.BankName)
		}
		if err != nil {
			return "", "QR unavailable"
		}
	}

	holder := ""
	if profile.BankAccountHolder != nil {
		holder = *profile.BankAccountHolder
	}
	qrURL, err := bankqr.FormatQRURL(bankqr.QRRequest{
		BankCode:      bankCode,
		AccountNumber: *profile.BankAccountNumber,
		AccountHolder: holder,
		Amount:        amount / 100,
		Description:   invoiceCode,
	})
	if err != nil {
		return "", "QR unavailable"
	}
	return qrURL, ""
}

// bankSnapshot freezes the shop's bank details for a transfer invoice
func (s *CheckoutService) bankSnapshot(ctx context.Context, invoiceCode string) *entity.BankAccountSnapshot {
	profile, err := s.shop.Get(ctx)
	if err != nil || !profile.HasBankAccount() {
		return nil
	}
	bankCode, err := s.qr.ResolveCode(*profile.BankName)
	if err != nil {
		bankCode = ""
	}
	holder := ""
	if profile.BankAccountHolder != nil {
		holder = *profile.BankAccountHolder
	}
	return &entity.BankAccountSnapshot{
		BankName:      *profile.BankName,
		BankCode:      bankCode,
		AccountNumber: *profile.BankAccountNumber,
		AccountHolder: holder,
		QRDescription: invoiceCode,
	}
}
