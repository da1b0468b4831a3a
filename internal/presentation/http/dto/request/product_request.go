package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=255"`
	Code          string  `json:"code" binding:"required,max=100"`
	Unit          string  `json:"unit" binding:"omitempty,max=50"`
	SellingPrice  float64 `json:"selling_price" binding:"min=0"`
	Quantity      int     `json:"quantity" binding:"min=0"`
	QuantityAlert int     `json:"quantity_alert" binding:"min=0"`
	ImageURL      *string `json:"image_url"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Code          *string  `json:"code" binding:"omitempty,min=1,max=100"`
	Unit          *string  `json:"unit" binding:"omitempty,max=50"`
	SellingPrice  *float64 `json:"selling_price" binding:"omitempty,min=0"`
	Quantity      *int     `json:"quantity" binding:"omitempty,min=0"`
	QuantityAlert *int     `json:"quantity_alert" binding:"omitempty,min=0"`
	ImageURL      *string  `json:"image_url"`
	Active        *bool    `json:"active"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	LowStock   bool   `form:"low_stock"`
	ActiveOnly bool   `form:"active_only"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
