package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/minhphamdev/banle-api/internal/application/service"
	"github.com/minhphamdev/banle-api/internal/domain/enum"
	"github.com/minhphamdev/banle-api/internal/domain/repository"
	"github.com/minhphamdev/banle-api/internal/presentation/http/dto/request"
	"github.com/minhphamdev/banle-api/internal/presentation/http/dto/response"
	"github.com/minhphamdev/banle-api/pkg/pagination"
)

// PromotionHandler handles promotion HTTP requests
type PromotionHandler struct {
	promotionService *service.PromotionService
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(promotionService *service.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

func promotionInput(req *request.PromotionRequest) *service.PromotionInput {
	return &service.PromotionInput{
		Name:        req.Name,
		Type:        enum.DiscountType(req.Type),
		Value:       req.Value,
		MinPurchase: req.MinPurchase,
		Quantity:    req.Quantity,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ProductIDs:  req.ProductIDs,
		CustomerIDs: req.CustomerIDs,
	}
}

// List handles listing promotions
func (h *PromotionHandler) List(c *gin.Context) {
	params := &repository.PromotionFilterParams{
		Pagination: &pagination.PaginationParams{},
		Search:     c.Query("search"),
	}
	if err := c.ShouldBindQuery(params.Pagination); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.promotionService.ListPromotions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Promotions retrieved successfully", result)
}

// Get handles retrieving a single promotion
func (h *PromotionHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid promotion ID")
		return
	}

	promotion, err := h.promotionService.GetPromotion(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Promotion retrieved successfully", promotion)
}

// Create handles promotion creation
func (h *PromotionHandler) Create(c *gin.Context) {
	var req request.PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	promotion, err := h.promotionService.CreatePromotion(c.Request.Context(), promotionInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Promotion created successfully", promotion)
}

// Update handles promotion updates
func (h *PromotionHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid promotion ID")
		return
	}

	var req request.PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	promotion, err := h.promotionService.UpdatePromotion(c.Request.Context(), id, promotionInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Promotion updated successfully", promotion)
}

// Delete handles promotion deletion
func (h *PromotionHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid promotion ID")
		return
	}

	if err := h.promotionService.DeletePromotion(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Promotion deleted successfully", nil)
}
