package enum

// DebtAction tags a debt history entry with the operation that produced it
type DebtAction string

const (
	// DebtInit is the first entry ever recorded for a customer
	DebtInit DebtAction = "init"
	// DebtAdd increases what the customer owes
	DebtAdd DebtAction = "add"
	// DebtPay moves the balance toward zero
	DebtPay DebtAction = "pay"
)
