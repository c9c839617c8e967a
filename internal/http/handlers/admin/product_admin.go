package admin

import (
	"errors"
	"strings"

	"github.com/tshirt-admin/internal/http/response"
	"github.com/tshirt-admin/internal/repository"
	"github.com/tshirt-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminListProducts 상품 목록
func (h *Handler) AdminListProducts(c *gin.Context) {
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:        page,
		PageSize:    pageSize,
		Category:    strings.ToUpper(strings.TrimSpace(c.Query("category"))),
		Search:      strings.TrimSpace(c.Query("search")),
		OnlyActive:  c.Query("only_active") == "true",
		WithOptions: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "상품 목록 조회에 실패했습니다", err)
		return
	}

	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// AdminGetProduct 상품 상세
func (h *Handler) AdminGetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "상품을 찾을 수 없습니다", nil)
			return
		}
		respondError(c, response.CodeInternal, "상품 조회에 실패했습니다", err)
		return
	}

	response.Success(c, product)
}

// ProductOptionRequest 상품 옵션 요청
type ProductOptionRequest struct {
	ID             uint   `json:"id"`
	OptionDetail   string `json:"option_detail" binding:"required"`
	Price          int64  `json:"price"`
	Cost           int64  `json:"cost"`
	StockQuantity  *int   `json:"stock_quantity"`
	TrackInventory bool   `json:"track_inventory"`
	IsActive       *bool  `json:"is_active"`
	SortOrder      int    `json:"sort_order"`
}

// ProductRequest 상품 생성/수정 요청
type ProductRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	IsActive    *bool                  `json:"is_active"`
	SortOrder   int                    `json:"sort_order"`
	Options     []ProductOptionRequest `json:"options"`
}

func (r ProductRequest) toInput() service.CreateProductInput {
	options := make([]service.ProductOptionInput, 0, len(r.Options))
	for _, opt := range r.Options {
		active := true
		if opt.IsActive != nil {
			active = *opt.IsActive
		}
		options = append(options, service.ProductOptionInput{
			ID:             opt.ID,
			OptionDetail:   opt.OptionDetail,
			Price:          opt.Price,
			Cost:           opt.Cost,
			StockQuantity:  opt.StockQuantity,
			TrackInventory: opt.TrackInventory,
			IsActive:       active,
			SortOrder:      opt.SortOrder,
		})
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.CreateProductInput{
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		IsActive:    active,
		SortOrder:   r.SortOrder,
		Options:     options,
	}
}

// AdminCreateProduct 상품 생성
func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNameRequired):
			respondError(c, response.CodeBadRequest, "상품명을 입력해 주세요", nil)
		case errors.Is(err, service.ErrProductNameExists):
			respondError(c, response.CodeBadRequest, "이미 등록된 상품명입니다", nil)
		default:
			respondError(c, response.CodeInternal, "상품 생성에 실패했습니다", err)
		}
		return
	}

	response.Success(c, product)
}

// AdminUpdateProduct 상품 수정
func (h *Handler) AdminUpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "상품을 찾을 수 없습니다", nil)
		case errors.Is(err, service.ErrProductNameExists):
			respondError(c, response.CodeBadRequest, "이미 등록된 상품명입니다", nil)
		case errors.Is(err, service.ErrProductOptionNotFound):
			respondError(c, response.CodeBadRequest, "존재하지 않는 상품 옵션입니다", nil)
		default:
			respondError(c, response.CodeInternal, "상품 수정에 실패했습니다", err)
		}
		return
	}

	response.Success(c, product)
}

// AdminDeleteProduct 상품 삭제 (소프트 삭제)
func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.Delete(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "상품을 찾을 수 없습니다", nil)
			return
		}
		respondError(c, response.CodeInternal, "상품 삭제에 실패했습니다", err)
		return
	}

	response.Success(c, nil)
}

// AdjustStockRequest 재고 조정 요청
// stock_quantity 를 비우면 무제한 판매로 전환한다.
type AdjustStockRequest struct {
	StockQuantity *int `json:"stock_quantity"`
}

// AdminAdjustOptionStock 옵션 재고 조정
func (h *Handler) AdminAdjustOptionStock(c *gin.Context) {
	optionID, ok := parseIDParam(c, "option_id")
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	option, err := h.ProductService.AdjustStock(optionID, req.StockQuantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductOptionNotFound):
			respondError(c, response.CodeNotFound, "상품 옵션을 찾을 수 없습니다", nil)
		case errors.Is(err, service.ErrInvalidAmount):
			respondError(c, response.CodeBadRequest, "재고 수량은 0 이상이어야 합니다", nil)
		default:
			respondError(c, response.CodeInternal, "재고 조정에 실패했습니다", err)
		}
		return
	}

	response.Success(c, option)
}

// AdminLowStockOptions 재고 임박 옵션 목록
func (h *Handler) AdminLowStockOptions(c *gin.Context) {
	threshold := queryInt(c, "threshold", 5)
	options, err := h.OptionRepo.ListLowStock(threshold)
	if err != nil {
		respondError(c, response.CodeInternal, "재고 현황 조회에 실패했습니다", err)
		return
	}

	response.Success(c, options)
}
