package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/minhphamdev/banle-api/internal/application/service"
	"github.com/minhphamdev/banle-api/internal/domain/enum"
	"github.com/minhphamdev/banle-api/internal/presentation/http/dto/request"
	"github.com/minhphamdev/banle-api/internal/presentation/http/dto/response"
)

// CheckoutHandler handles checkout HTTP requests
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Preview shows what committing the active cart would produce
func (h *CheckoutHandler) Preview(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	preview, err := h.checkoutService.Preview(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithWarnings(c, 200, "Checkout preview", preview, preview.Warnings)
}

// Commit settles the active cart into an invoice
func (h *CheckoutHandler) Commit(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.checkoutService.Commit(c.Request.Context(), *userID, service.CheckoutRequest{
		PaymentMethod:   enum.PaymentMethod(req.PaymentMethod),
		NewCustomerName: req.NewCustomerName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithWarnings(c, 201, "Checkout completed successfully", result, result.Warnings)
}
