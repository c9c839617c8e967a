package admin

import (
	"errors"
	"strings"
	"time"

	"github.com/tshirt-admin/internal/http/response"
	"github.com/tshirt-admin/internal/repository"
	"github.com/tshirt-admin/internal/service"

	"github.com/gin-gonic/gin"
)

func buildLedgerFilter(c *gin.Context) (repository.LedgerListFilter, error) {
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	from, err := parseTimeNullable(strings.TrimSpace(c.Query("from")))
	if err != nil {
		return repository.LedgerListFilter{}, err
	}
	to, err := parseTimeNullable(strings.TrimSpace(c.Query("to")))
	if err != nil {
		return repository.LedgerListFilter{}, err
	}
	return repository.LedgerListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.ToUpper(strings.TrimSpace(c.Query("category"))),
		From:     from,
		To:       to,
	}, nil
}

// ====================  지출 관리  ====================

// ExpenseRequest 지출 등록/수정 요청
type ExpenseRequest struct {
	ExpenseDate time.Time `json:"expense_date" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount" binding:"required"`
	Quantity    int       `json:"quantity"`
}

func (r ExpenseRequest) toInput() service.ExpenseInput {
	return service.ExpenseInput{
		ExpenseDate: r.ExpenseDate,
		Category:    r.Category,
		Description: r.Description,
		Amount:      r.Amount,
		Quantity:    r.Quantity,
	}
}

// AdminListExpenses 지출 목록
func (h *Handler) AdminListExpenses(c *gin.Context) {
	filter, err := buildLedgerFilter(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "조회 기간이 올바르지 않습니다", err)
		return
	}

	expenses, total, err := h.LedgerService.ListExpenses(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "지출 목록 조회에 실패했습니다", err)
		return
	}

	response.SuccessWithPage(c, expenses, buildPagination(filter.Page, filter.PageSize, total))
}

// AdminCreateExpense 지출 등록
func (h *Handler) AdminCreateExpense(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	expense, err := h.LedgerService.CreateExpense(req.toInput())
	if err != nil {
		respondLedgerError(c, err, "지출 등록에 실패했습니다")
		return
	}

	response.Success(c, expense)
}

// AdminUpdateExpense 지출 수정
func (h *Handler) AdminUpdateExpense(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	expense, err := h.LedgerService.UpdateExpense(id, req.toInput())
	if err != nil {
		respondLedgerError(c, err, "지출 수정에 실패했습니다")
		return
	}

	response.Success(c, expense)
}

// AdminDeleteExpense 지출 삭제
func (h *Handler) AdminDeleteExpense(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.LedgerService.DeleteExpense(id); err != nil {
		respondLedgerError(c, err, "지출 삭제에 실패했습니다")
		return
	}

	response.Success(c, nil)
}

// ====================  매입 관리  ====================

// PurchaseRequest 매입 등록/수정 요청
type PurchaseRequest struct {
	PurchaseDate time.Time `json:"purchase_date" binding:"required"`
	Category     string    `json:"category" binding:"required"`
	ItemName     string    `json:"item_name" binding:"required"`
	Quantity     int       `json:"quantity"`
	UnitCost     int64     `json:"unit_cost" binding:"required"`
}

func (r PurchaseRequest) toInput() service.PurchaseInput {
	return service.PurchaseInput{
		PurchaseDate: r.PurchaseDate,
		Category:     r.Category,
		ItemName:     r.ItemName,
		Quantity:     r.Quantity,
		UnitCost:     r.UnitCost,
	}
}

// AdminListPurchases 매입 목록
func (h *Handler) AdminListPurchases(c *gin.Context) {
	filter, err := buildLedgerFilter(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "조회 기간이 올바르지 않습니다", err)
		return
	}

	purchases, total, err := h.LedgerService.ListPurchases(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "매입 목록 조회에 실패했습니다", err)
		return
	}

	response.SuccessWithPage(c, purchases, buildPagination(filter.Page, filter.PageSize, total))
}

// AdminCreatePurchase 매입 등록
func (h *Handler) AdminCreatePurchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	purchase, err := h.LedgerService.CreatePurchase(req.toInput())
	if err != nil {
		respondLedgerError(c, err, "매입 등록에 실패했습니다")
		return
	}

	response.Success(c, purchase)
}

// AdminUpdatePurchase 매입 수정
func (h *Handler) AdminUpdatePurchase(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	purchase, err := h.LedgerService.UpdatePurchase(id, req.toInput())
	if err != nil {
		respondLedgerError(c, err, "매입 수정에 실패했습니다")
		return
	}

	response.Success(c, purchase)
}

// AdminDeletePurchase 매입 삭제
func (h *Handler) AdminDeletePurchase(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.LedgerService.DeletePurchase(id); err != nil {
		respondLedgerError(c, err, "매입 삭제에 실패했습니다")
		return
	}

	response.Success(c, nil)
}

func respondLedgerError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "기록을 찾을 수 없습니다", nil)
	case errors.Is(err, service.ErrInvalidCategory):
		respondError(c, response.CodeBadRequest, "항목 분류가 올바르지 않습니다", nil)
	case errors.Is(err, service.ErrInvalidAmount):
		respondError(c, response.CodeBadRequest, "금액은 0 이상이어야 합니다", nil)
	case errors.Is(err, service.ErrInvalidPeriod):
		respondError(c, response.CodeBadRequest, "날짜를 입력해 주세요", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}
