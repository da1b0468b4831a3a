package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/minhphamdev/banle-api/internal/application/service"
	"github.com/minhphamdev/banle-api/internal/presentation/http/dto/request"
	"github.com/minhphamdev/banle-api/internal/presentation/http/dto/response"
)

// CartHandler handles cart HTTP requests. All operations act on the
// authenticated cashier's cart set.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) respond(c *gin.Context, message string, result *service.CartResult, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithWarnings(c, 200, message, result.Set, result.Warnings)
}

// Get returns the cashier's cart set
func (h *CartHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.cartService.GetCarts(c.Request.Context(), *userID)
	h.respond(c, "Carts retrieved successfully", result, err)
}

// Create adds a new empty cart
func (h *CartHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.cartService.CreateCart(c.Request.Context(), *userID)
	h.respond(c, "Cart created successfully", result, err)
}

// Switch makes another cart active
func (h *CartHandler) Switch(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.cartService.SwitchCart(c.Request.Context(), *userID, c.Param("id"))
	h.respond(c, "Cart switched successfully", result, err)
}

// Delete removes a cart
func (h *CartHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.cartService.DeleteCart(c.Request.Context(), *userID, c.Param("id"))
	h.respond(c, "Cart deleted successfully", result, err)
}

// AddItem adds a product to the active cart
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.cartService.AddItem(c.Request.Context(), *userID, req.ProductID, req.Quantity)
	h.respond(c, "Item added successfully", result, err)
}

// UpdateItem changes a cart line's quantity
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	productID, ok := ParseIDParam(c, "productId")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.cartService.UpdateItemQuantity(c.Request.Context(), *userID, productID, req.Quantity)
	h.respond(c, "Item updated successfully", result, err)
}

// RemoveItem deletes a line from the active cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	productID, ok := ParseIDParam(c, "productId")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	result, err := h.cartService.RemoveItem(c.Request.Context(), *userID, productID)
	h.respond(c, "Item removed successfully", result, err)
}

// ApplyVoucher applies a voucher code to the active cart
func (h *CartHandler) ApplyVoucher(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ApplyVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.cartService.ApplyVoucher(c.Request.Context(), *userID, req.Code)
	h.respond(c, "Voucher applied successfully", result, err)
}

// RemoveVoucher clears the applied voucher
func (h *CartHandler) RemoveVoucher(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.cartService.RemoveVoucher(c.Request.Context(), *userID)
	h.respond(c, "Voucher removed successfully", result, err)
}

// SetCustomer attaches or detaches a customer on the active cart
func (h *CartHandler) SetCustomer(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SetCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.cartService.SetCustomer(c.Request.Context(), *userID, req.CustomerID)
	h.respond(c, "Customer updated successfully", result, err)
}

// Clear empties the active cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.cartService.ClearCart(c.Request.Context(), *userID)
	h.respond(c, "Cart cleared successfully", result, err)
}
