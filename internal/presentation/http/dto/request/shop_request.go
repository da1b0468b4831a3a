package request

// UpdateShopProfileRequest represents a shop profile update request
type UpdateShopProfileRequest struct {
	Name              *string `json:"name" binding:"omitempty,min=1,max=255"`
	Address           *string `json:"address"`
	Phone             *string `json:"phone" binding:"omitempty,max=50"`
	BankName          *string `json:"bank_name" binding:"omitempty,max=255"`
	BankAccountNumber *string `json:"bank_account_number" binding:"omitempty,max=100"`
	BankAccountHolder *string `json:"bank_account_holder" binding:"omitempty,max=255"`
}
