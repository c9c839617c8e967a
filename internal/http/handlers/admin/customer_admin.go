package admin

import (
	"strings"

	"github.com/tshirt-admin/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AdminCheckCustomer 기존 고객 여부 확인
// 수기 주문 입력 중 이름/연락처로 재구매 고객인지 조회한다.
func (h *Handler) AdminCheckCustomer(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	phone := strings.TrimSpace(c.Query("phone"))
	if name == "" {
		respondError(c, response.CodeBadRequest, "고객명을 입력해 주세요", nil)
		return
	}

	exists, err := h.CustomerService.IsExistingCustomer(name, phone)
	if err != nil {
		respondError(c, response.CodeInternal, "고객 조회에 실패했습니다", err)
		return
	}

	response.Success(c, gin.H{"exists": exists})
}

// AdminCustomerOrders 고객 식별자 기준 주문 이력
func (h *Handler) AdminCustomerOrders(c *gin.Context) {
	customerID := strings.TrimSpace(c.Param("customer_id"))
	if customerID == "" {
		respondError(c, response.CodeBadRequest, "고객 식별자를 입력해 주세요", nil)
		return
	}
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))

	orders, total, err := h.CustomerService.ListCustomerOrders(customerID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "주문 이력 조회에 실패했습니다", err)
		return
	}

	response.SuccessWithPage(c, orders, buildPagination(page, pageSize, total))
}
