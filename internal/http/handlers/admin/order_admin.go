package admin

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/tshirt-admin/internal/http/response"
	"github.com/tshirt-admin/internal/models"
	"github.com/tshirt-admin/internal/repository"
	"github.com/tshirt-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderView 파생 금액을 덧붙인 주문 응답
type OrderView struct {
	models.Order
	TotalCost models.Money `json:"total_cost"` // 품목 원가 + 배송비
	Profit    models.Money `json:"profit"`     // 주문 총액 - 원가 합계
	Category  string       `json:"category"`   // GOODS / GENERAL
}

func newOrderView(order models.Order) OrderView {
	return OrderView{
		Order:     order,
		TotalCost: order.TotalCost(),
		Profit:    order.Profit(),
		Category:  order.Category(),
	}
}

func newOrderViews(orders []models.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, newOrderView(order))
	}
	return views
}

// AdminListOrders 주문 목록
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))

	status := strings.ToUpper(strings.TrimSpace(c.Query("status")))
	search := strings.TrimSpace(c.Query("search"))
	externalOrderID := strings.TrimSpace(c.Query("external_order_id"))
	customerID := strings.TrimSpace(c.Query("customer_id"))

	paymentFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("payment_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "조회 기간이 올바르지 않습니다", err)
		return
	}
	paymentTo, err := parseTimeNullable(strings.TrimSpace(c.Query("payment_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "조회 기간이 올바르지 않습니다", err)
		return
	}

	orders, total, err := h.OrderService.ListOrders(repository.OrderListFilter{
		Page:            page,
		PageSize:        pageSize,
		Status:          status,
		Search:          search,
		ExternalOrderID: externalOrderID,
		CustomerID:      customerID,
		PaymentFrom:     paymentFrom,
		PaymentTo:       paymentTo,
		WithItems:       true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "주문 목록 조회에 실패했습니다", err)
		return
	}

	response.SuccessWithPage(c, newOrderViews(orders), buildPagination(page, pageSize, total))
}

// AdminGetOrder 주문 상세
func (h *Handler) AdminGetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetOrder(orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "주문을 찾을 수 없습니다", nil)
		default:
			respondError(c, response.CodeInternal, "주문 조회에 실패했습니다", err)
		}
		return
	}

	response.Success(c, newOrderView(*order))
}

// AdminOrderStatusCounts 상태별 주문 수
func (h *Handler) AdminOrderStatusCounts(c *gin.Context) {
	counts, err := h.OrderService.CountByStatus()
	if err != nil {
		respondError(c, response.CodeInternal, "주문 집계에 실패했습니다", err)
		return
	}
	response.Success(c, counts)
}

// CreateManualOrderItemRequest 수기 주문 품목 요청
type CreateManualOrderItemRequest struct {
	ProductOptionID uint   `json:"product_option_id"`
	ManualDetail    string `json:"manual_detail"`
	Quantity        int    `json:"quantity" binding:"required"`
	UnitPrice       *int64 `json:"unit_price"`
}

// CreateManualOrderRequest 수기 주문 생성 요청
type CreateManualOrderRequest struct {
	ExternalOrderID string                         `json:"external_order_id"`
	CustomerName    string                         `json:"customer_name" binding:"required"`
	CustomerPhone   string                         `json:"customer_phone"`
	ShippingAddress string                         `json:"shipping_address"`
	PaymentDate     *time.Time                     `json:"payment_date"`
	ShippingCost    *int64                         `json:"shipping_cost"`
	Memo            string                         `json:"memo"`
	Items           []CreateManualOrderItemRequest `json:"items"`
}

// AdminCreateManualOrder 수기 주문 생성
func (h *Handler) AdminCreateManualOrder(c *gin.Context) {
	var req CreateManualOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	items := make([]service.CreateManualOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreateManualOrderItem{
			ProductOptionID: item.ProductOptionID,
			ManualDetail:    item.ManualDetail,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
		})
	}

	order, err := h.OrderService.CreateManualOrder(service.CreateManualOrderInput{
		ExternalOrderID: req.ExternalOrderID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		PaymentDate:     req.PaymentDate,
		ShippingCost:    req.ShippingCost,
		Memo:            req.Memo,
		Items:           items,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExternalOrderIDExists):
			respondError(c, response.CodeBadRequest, "이미 등록된 주문번호입니다", nil)
		case errors.Is(err, service.ErrInvalidOrderItem):
			respondError(c, response.CodeBadRequest, "주문 품목이 올바르지 않습니다", err)
		case errors.Is(err, service.ErrProductOptionNotFound):
			respondError(c, response.CodeBadRequest, "존재하지 않는 상품 옵션입니다", nil)
		case errors.Is(err, service.ErrOrderCreateFailed):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "주문 생성에 실패했습니다", err)
		}
		return
	}

	response.Success(c, order)
}

// UpdateOrderStatusRequest 주문 상태 변경 요청
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminUpdateOrderStatus 주문 상태 변경
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	order, err := h.OrderService.ChangeStatus(orderID, req.Status)
	if err != nil {
		var shortage *service.StockShortageError
		switch {
		case errors.As(err, &shortage):
			respondErrorWithData(c, response.CodeBadRequest, shortage.Error(), gin.H{"shortages": shortage.Shortages}, nil)
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "주문을 찾을 수 없습니다", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "허용되지 않는 상태 변경입니다", err)
		case errors.Is(err, service.ErrTrackingNumberMissing):
			respondError(c, response.CodeBadRequest, "송장번호 또는 발송 사진 등록이 필요합니다", nil)
		default:
			respondError(c, response.CodeInternal, "주문 상태 변경에 실패했습니다", err)
		}
		return
	}

	response.Success(c, order)
}

// AdminConfirmDesign 시안 확정 (CONSULTING -> PRODUCING)
// 멀티파트 업로드가 먼저 끝난 뒤에 상태 전이 트랜잭션이 시작된다.
func (h *Handler) AdminConfirmDesign(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}
	driveFolderURL := strings.TrimSpace(c.PostForm("drive_folder_url"))

	designImageURLs := make(map[uint]string)
	if c.Request.MultipartForm != nil {
		for field, files := range c.Request.MultipartForm.File {
			itemID, ok := parseItemFileField(field)
			if !ok || len(files) == 0 {
				continue
			}
			url, err := h.UploadService.SaveFile(files[0], "design")
			if err != nil {
				respondError(c, response.CodeInternal, "시안 이미지 업로드에 실패했습니다", err)
				return
			}
			designImageURLs[itemID] = url
		}
	}

	order, err := h.OrderService.ConfirmDesign(orderID, driveFolderURL, designImageURLs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "주문을 찾을 수 없습니다", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "시안 협의 중인 주문만 확정할 수 있습니다", nil)
		case errors.Is(err, service.ErrDesignUploadRequired):
			respondError(c, response.CodeBadRequest, "시안 이미지 또는 드라이브 폴더 주소가 필요합니다", nil)
		default:
			respondError(c, response.CodeInternal, "시안 확정에 실패했습니다", err)
		}
		return
	}

	response.Success(c, order)
}

// OrderIDsRequest 주문 일괄 처리 요청
type OrderIDsRequest struct {
	OrderIDs []uint `json:"order_ids" binding:"required"`
}

// AdminCompleteOrders 제작 완료 주문 일괄 발송 완료 처리
func (h *Handler) AdminCompleteOrders(c *gin.Context) {
	var req OrderIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	completed, err := h.OrderService.CompleteOrders(req.OrderIDs)
	if err != nil {
		if errors.Is(err, service.ErrNoOrdersSelected) {
			respondError(c, response.CodeBadRequest, "선택된 주문이 없습니다", nil)
			return
		}
		respondError(c, response.CodeInternal, "발송 완료 처리에 실패했습니다", err)
		return
	}

	response.Success(c, gin.H{"completed": completed})
}

// AdminExportShippingList 발송 목록 엑셀 다운로드 (작성 성공 시 일괄 발송 완료 처리)
func (h *Handler) AdminExportShippingList(c *gin.Context) {
	var req OrderIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	filename := service.ShippingFilename(time.Now())
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	result, err := h.ExportService.ExportShippingList(req.OrderIDs, c.Writer)
	if err != nil {
		// 본문 스트리밍 이전이므로 일반 오류 응답으로 교체 가능하다.
		c.Header("Content-Type", "application/json; charset=utf-8")
		c.Header("Content-Disposition", "")
		if errors.Is(err, service.ErrNoOrdersSelected) {
			respondError(c, response.CodeBadRequest, "발송 처리할 제작 완료 주문이 없습니다", nil)
			return
		}
		respondError(c, response.CodeInternal, "발송 목록 작성에 실패했습니다", err)
		return
	}

	requestLog(c).Infow("shipping_list_exported",
		"filename", result.Filename,
		"exported", result.Exported,
		"completed", result.Completed,
	)
}

// AdminRegisterCompletion 발송 완료 주문의 정산 처리 (송장/사진 등록)
// 사진 업로드가 먼저 끝난 뒤에 상태 전이 트랜잭션이 시작된다.
func (h *Handler) AdminRegisterCompletion(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}
	trackingNumber := strings.TrimSpace(c.PostForm("tracking_number"))

	var photos []*multipart.FileHeader
	if c.Request.MultipartForm != nil {
		photos = c.Request.MultipartForm.File["photos"]
	}
	photoURLs, err := h.UploadService.SaveFiles(photos, "completion")
	if err != nil {
		respondError(c, response.CodeInternal, "발송 사진 업로드에 실패했습니다", err)
		return
	}

	order, err := h.OrderService.RegisterCompletion(orderID, trackingNumber, photoURLs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "주문을 찾을 수 없습니다", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "발송 완료 상태의 주문만 정산할 수 있습니다", nil)
		case errors.Is(err, service.ErrTrackingNumberMissing):
			respondError(c, response.CodeBadRequest, "송장번호 또는 발송 사진이 필요합니다", nil)
		default:
			respondError(c, response.CodeInternal, "정산 처리에 실패했습니다", err)
		}
		return
	}

	response.Success(c, order)
}

// AdminArchiveOrder 정산 완료 주문 보관 처리
func (h *Handler) AdminArchiveOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.ArchiveOrder(orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "주문을 찾을 수 없습니다", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "정산 완료 상태의 주문만 보관할 수 있습니다", nil)
		default:
			respondError(c, response.CodeInternal, "보관 처리에 실패했습니다", err)
		}
		return
	}

	response.Success(c, order)
}

// AdminArchiveOrders 정산 완료 주문 일괄 보관 처리
func (h *Handler) AdminArchiveOrders(c *gin.Context) {
	var req OrderIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	archived, err := h.OrderService.ArchiveOrders(req.OrderIDs)
	if err != nil {
		if errors.Is(err, service.ErrNoOrdersSelected) {
			respondError(c, response.CodeBadRequest, "선택된 주문이 없습니다", nil)
			return
		}
		respondError(c, response.CodeInternal, "보관 처리에 실패했습니다", err)
		return
	}

	response.Success(c, gin.H{"archived": archived})
}

// AdminCancelOrder 주문 취소
// 이미 취소된 주문은 오류 없이 already_canceled 로 알려준다.
func (h *Handler) AdminCancelOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, alreadyCanceled, err := h.OrderService.CancelOrder(orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "주문을 찾을 수 없습니다", nil)
		case errors.Is(err, service.ErrOrderCancelNotAllowed):
			respondError(c, response.CodeBadRequest, "발송 이후 단계의 주문은 취소할 수 없습니다", nil)
		default:
			respondError(c, response.CodeInternal, "주문 취소에 실패했습니다", err)
		}
		return
	}

	response.Success(c, gin.H{
		"order":            order,
		"already_canceled": alreadyCanceled,
	})
}

// UpdateOrderRequest 주문 정보 수정 요청
type UpdateOrderRequest struct {
	CustomerName    *string `json:"customer_name"`
	CustomerPhone   *string `json:"customer_phone"`
	ShippingAddress *string `json:"shipping_address"`
	Memo            *string `json:"memo"`
	TrackingNumber  *string `json:"tracking_number"`
	DriveFolderURL  *string `json:"drive_folder_url"`
}

// AdminUpdateOrder 주문 기본 정보 수정
func (h *Handler) AdminUpdateOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	updates := map[string]interface{}{}
	if req.CustomerName != nil {
		updates["customer_name"] = strings.TrimSpace(*req.CustomerName)
	}
	if req.CustomerPhone != nil {
		updates["customer_phone"] = strings.TrimSpace(*req.CustomerPhone)
	}
	if req.ShippingAddress != nil {
		updates["shipping_address"] = strings.TrimSpace(*req.ShippingAddress)
	}
	if req.Memo != nil {
		updates["memo"] = *req.Memo
	}
	if req.TrackingNumber != nil {
		updates["tracking_number"] = strings.TrimSpace(*req.TrackingNumber)
	}
	if req.DriveFolderURL != nil {
		updates["drive_folder_url"] = strings.TrimSpace(*req.DriveFolderURL)
	}
	if len(updates) == 0 {
		respondError(c, response.CodeBadRequest, "수정할 항목이 없습니다", nil)
		return
	}

	order, err := h.OrderService.UpdateOrder(orderID, updates)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "주문을 찾을 수 없습니다", nil)
		default:
			respondError(c, response.CodeInternal, "주문 수정에 실패했습니다", err)
		}
		return
	}

	response.Success(c, order)
}

// AdminProductionSchedule 제작 일정 (출고 예정일 임박 순)
func (h *Handler) AdminProductionSchedule(c *gin.Context) {
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))

	dueBefore := time.Now().AddDate(0, 0, queryInt(c, "days", 7))
	orders, total, err := h.OrderService.ProductionSchedule(dueBefore, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "제작 일정 조회에 실패했습니다", err)
		return
	}

	response.SuccessWithPage(c, orders, buildPagination(page, pageSize, total))
}

// AdminSettlementList 월별 정산 완료 주문 목록
func (h *Handler) AdminSettlementList(c *gin.Context) {
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	year := queryInt(c, "year", time.Now().Year())
	month := queryInt(c, "month", 0)

	orders, total, err := h.OrderService.SettlementList(year, month, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			respondError(c, response.CodeBadRequest, "조회 기간이 올바르지 않습니다", nil)
			return
		}
		respondError(c, response.CodeInternal, "정산 목록 조회에 실패했습니다", err)
		return
	}

	response.SuccessWithPage(c, newOrderViews(orders), buildPagination(page, pageSize, total))
}

// AdminSalesStatus 결제일 기준 판매 현황
func (h *Handler) AdminSalesStatus(c *gin.Context) {
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	year := queryInt(c, "year", time.Now().Year())
	month := queryInt(c, "month", 0)

	orders, total, err := h.OrderService.SalesStatus(year, month, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			respondError(c, response.CodeBadRequest, "조회 기간이 올바르지 않습니다", nil)
			return
		}
		respondError(c, response.CodeInternal, "판매 현황 조회에 실패했습니다", err)
		return
	}

	response.SuccessWithPage(c, newOrderViews(orders), buildPagination(page, pageSize, total))
}

// AdminArchivedOrders 최근 보관 주문 목록
func (h *Handler) AdminArchivedOrders(c *gin.Context) {
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	windowDays := queryInt(c, "window_days", 0)

	orders, total, err := h.OrderService.ArchivedList(windowDays, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "보관 목록 조회에 실패했습니다", err)
		return
	}

	response.SuccessWithPage(c, newOrderViews(orders), buildPagination(page, pageSize, total))
}

// parseItemFileField "item_<id>" 형태의 파일 필드명에서 품목 ID 를 읽는다.
func parseItemFileField(field string) (uint, bool) {
	raw, found := strings.CutPrefix(field, "item_")
	if !found {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
