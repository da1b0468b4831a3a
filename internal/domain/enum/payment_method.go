package enum

// PaymentMethod represents how an invoice was (or will be) paid
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentDebt     PaymentMethod = "debt"
)

// Valid reports whether the payment method is one of the known values
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentDebt:
		return true
	}
	return false
}

// ValidForDebtSettlement reports whether the method may settle a debt invoice
func (m PaymentMethod) ValidForDebtSettlement() bool {
	return m == PaymentCash || m == PaymentTransfer
}
