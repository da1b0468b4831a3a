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

// VoucherHandler handles voucher HTTP requests
type VoucherHandler struct {
	voucherService *service.VoucherService
}

// NewVoucherHandler creates a new voucher handler
func NewVoucherHandler(voucherService *service.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

func voucherInput(req *request.VoucherRequest) *service.VoucherInput {
	return &service.VoucherInput{
		Code:        req.Code,
		Name:        req.Name,
		Type:        enum.DiscountType(req.Type),
		Value:       req.Value,
		MaxDiscount: req.MaxDiscount,
		MinPurchase: req.MinPurchase,
		Quantity:    req.Quantity,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ProductIDs:  req.ProductIDs,
		CustomerIDs: req.CustomerIDs,
	}
}

// List handles listing vouchers
func (h *VoucherHandler) List(c *gin.Context) {
	params := &repository.VoucherFilterParams{
		Pagination: &pagination.PaginationParams{},
		Search:     c.Query("search"),
	}
	if err := c.ShouldBindQuery(params.Pagination); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.voucherService.ListVouchers(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Vouchers retrieved successfully", result)
}

// Get handles retrieving a single voucher
func (h *VoucherHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid voucher ID")
		return
	}

	voucher, err := h.voucherService.GetVoucher(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Voucher retrieved successfully", voucher)
}

// Create handles voucher creation
func (h *VoucherHandler) Create(c *gin.Context) {
	var req request.VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), voucherInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Voucher created successfully", voucher)
}

// Update handles voucher updates
func (h *VoucherHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid voucher ID")
		return
	}

	var req request.VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	voucher, err := h.voucherService.UpdateVoucher(c.Request.Context(), id, voucherInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Voucher updated successfully", voucher)
}

// Delete handles voucher deletion
func (h *VoucherHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid voucher ID")
		return
	}

	if err := h.voucherService.DeleteVoucher(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Voucher deleted successfully", nil)
}
