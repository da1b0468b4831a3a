package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/minhphamdev/banle-api/internal/application/service"
	"github.com/minhphamdev/banle-api/internal/presentation/http/dto/request"
	"github.com/minhphamdev/banle-api/internal/presentation/http/dto/response"
)

// ShopHandler handles shop profile HTTP requests
type ShopHandler struct {
	shopService *service.ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopService *service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// Get returns the shop profile
func (h *ShopHandler) Get(c *gin.Context) {
	profile, err := h.shopService.GetProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Shop profile retrieved successfully", profile)
}

// Update updates the shop profile
func (h *ShopHandler) Update(c *gin.Context) {
	var req request.UpdateShopProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.shopService.UpdateProfile(c.Request.Context(), &service.UpdateProfileInput{
		Name:              req.Name,
		Address:           req.Address,
		Phone:             req.Phone,
		BankName:          req.BankName,
		BankAccountNumber: req.BankAccountNumber,
		BankAccountHolder: req.BankAccountHolder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Shop profile updated successfully", profile)
}
