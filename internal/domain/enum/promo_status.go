package enum

// PromoStatus is the derived lifecycle status of a promotion or voucher.
// It is always computed from dates and usage, never stored.
type PromoStatus string

const (
	// PromoActive means the rule is currently redeemable
	PromoActive PromoStatus = "active"
	// PromoInactive means the rule has not started or its quota is used up
	PromoInactive PromoStatus = "inactive"
	// PromoExpired means the rule's end date has passed
	PromoExpired PromoStatus = "expired"
)
