package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tshirt-admin/internal/config"
	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/logger"
	"github.com/tshirt-admin/internal/models"
	"github.com/tshirt-admin/internal/queue"
	"github.com/tshirt-admin/internal/repository"

	"gorm.io/gorm"
)

// OrderService 주문 서비스
type OrderService struct {
	orderRepo       repository.OrderRepository
	productRepo     repository.ProductRepository
	optionRepo      repository.ProductOptionRepository
	customerService *CustomerService
	queueClient     *queue.Client
	orderCfg        config.OrderConfig
}

// NewOrderService 주문 서비스 생성
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, optionRepo repository.ProductOptionRepository, customerService *CustomerService, queueClient *queue.Client, orderCfg config.OrderConfig) *OrderService {
	if orderCfg.DueDateLeadDays <= 0 {
		orderCfg.DueDateLeadDays = 3
	}
	return &OrderService{
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		optionRepo:      optionRepo,
		customerService: customerService,
		queueClient:     queueClient,
		orderCfg:        orderCfg,
	}
}

// allowedTransitions 주문 상태 전이 테이블
// 취소는 COMPLETED / SETTLED / ARCHIVED 이전 단계에서만 허용한다.
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusNew: {
		constants.OrderStatusConsulting: true,
		constants.OrderStatusProduced:   true,
		constants.OrderStatusCanceled:   true,
	},
	constants.OrderStatusConsulting: {
		constants.OrderStatusProducing: true,
		constants.OrderStatusCanceled:  true,
	},
	constants.OrderStatusProducing: {
		constants.OrderStatusProduced: true,
		constants.OrderStatusCanceled: true,
	},
	constants.OrderStatusProduced: {
		constants.OrderStatusCompleted: true,
		constants.OrderStatusCanceled:  true,
	},
	constants.OrderStatusCompleted: {
		constants.OrderStatusSettled: true,
	},
	constants.OrderStatusSettled: {
		constants.OrderStatusArchived: true,
	},
}

// stockDecrementTransitions 재고를 차감하는 전이 (NEW 에서 빠져나가는 진행 전이)
var stockDecrementTransitions = map[string]map[string]bool{
	constants.OrderStatusNew: {
		constants.OrderStatusConsulting: true,
		constants.OrderStatusProduced:   true,
	},
}

// CreateManualOrderItem 수기 주문 품목 입력
type CreateManualOrderItem struct {
	ProductOptionID uint   // 카탈로그 옵션 참조 (0이면 수기 품목)
	ManualDetail    string // 수기 품목 내용
	Quantity        int
	UnitPrice       *int64 // 옵션 단가를 덮어쓰거나 수기 품목 단가 지정
}

// CreateManualOrderInput 수기 주문 생성 입력
type CreateManualOrderInput struct {
	ExternalOrderID string // 비우면 접두어 채번
	CustomerName    string
	CustomerPhone   string
	ShippingAddress string
	PaymentDate     *time.Time
	ShippingCost    *int64 // 비우면 기본 배송비
	Memo            string
	Items           []CreateManualOrderItem
}

// CreateManualOrder 수기 주문 생성
// 고객 식별자 채번과 옵션 스냅샷을 포함해 한 트랜잭션으로 기록한다.
func (s *OrderService) CreateManualOrder(input CreateManualOrderInput) (*models.Order, error) {
	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name required", ErrOrderCreateFailed)
	}
	if len(input.Items) == 0 && !s.orderCfg.AllowEmptyItems {
		return nil, ErrInvalidOrderItem
	}

	externalID := strings.TrimSpace(input.ExternalOrderID)
	if externalID != "" {
		existing, err := s.orderRepo.GetByExternalID(externalID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrExternalOrderIDExists
		}
	} else {
		generated, err := s.nextExternalOrderID()
		if err != nil {
			return nil, err
		}
		externalID = generated
	}

	customerID, err := s.customerService.GenerateCustomerID(name, strings.TrimSpace(input.CustomerPhone))
	if err != nil {
		return nil, err
	}

	items, err := s.buildOrderItems(input.Items)
	if err != nil {
		return nil, err
	}

	shippingCost := s.orderCfg.DefaultShippingCost
	if input.ShippingCost != nil {
		if *input.ShippingCost < 0 {
			return nil, ErrInvalidAmount
		}
		shippingCost = *input.ShippingCost
	}

	now := time.Now()
	paymentDate := now
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}

	total := models.NewMoneyFromInt(shippingCost)
	for _, item := range items {
		total = models.NewMoneyFromDecimal(total.Add(item.LineTotal().Decimal))
	}

	order := &models.Order{
		ExternalOrderID:  externalID,
		Source:           models.OrderSourceManual,
		Status:           constants.OrderStatusNew,
		CustomerID:       customerID,
		CustomerName:     name,
		CustomerPhone:    strings.TrimSpace(input.CustomerPhone),
		ShippingAddress:  strings.TrimSpace(input.ShippingAddress),
		PaymentDate:      &paymentDate,
		ShippingCost:     models.NewMoneyFromInt(shippingCost),
		TotalOrderAmount: total,
		Memo:             input.Memo,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(order, items)
	})
	if err != nil {
		logger.Errorw("수기 주문 생성 실패", "external_order_id", externalID, "error", err)
		return nil, err
	}
	order.Items = items
	return order, nil
}

// nextExternalOrderID 수기 주문번호 채번 (접두어-일련번호)
func (s *OrderService) nextExternalOrderID() (string, error) {
	prefix := strings.TrimSpace(s.orderCfg.ExternalIDPrefix)
	if prefix == "" {
		prefix = "MANUAL"
	}
	last, err := s.orderRepo.MaxExternalIDWithPrefix(prefix + "-")
	if err != nil {
		return "", err
	}
	next := 1
	if last != "" {
		suffix := strings.TrimPrefix(last, prefix+"-")
		if n, convErr := strconv.Atoi(suffix); convErr == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s-%06d", prefix, next), nil
}

// buildOrderItems 입력 품목을 스냅샷 품목으로 변환
func (s *OrderService) buildOrderItems(inputs []CreateManualOrderItem) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
		if in.ProductOptionID > 0 {
			option, err := s.optionRepo.GetByID(in.ProductOptionID)
			if err != nil {
				return nil, err
			}
			if option == nil {
				return nil, ErrProductOptionNotFound
			}
			productName := ""
			productCategory := constants.ProductCategoryGeneral
			if option.Product != nil {
				productName = option.Product.Name
				if option.Product.Category != "" {
					productCategory = option.Product.Category
				}
			}
			unitPrice := option.Price
			if in.UnitPrice != nil {
				if *in.UnitPrice < 0 {
					return nil, ErrInvalidAmount
				}
				unitPrice = models.NewMoneyFromInt(*in.UnitPrice)
			}
			optionID := option.ID
			items = append(items, models.OrderItem{
				ProductOptionID: &optionID,
				ProductName:     productName,
				OptionDetail:    option.OptionDetail,
				ProductCategory: productCategory,
				Quantity:        in.Quantity,
				UnitPrice:       unitPrice,
				UnitCost:        option.Cost,
			})
			continue
		}
		detail := strings.TrimSpace(in.ManualDetail)
		if detail == "" || in.UnitPrice == nil {
			return nil, ErrInvalidOrderItem
		}
		if *in.UnitPrice < 0 {
			return nil, ErrInvalidAmount
		}
		items = append(items, models.OrderItem{
			ManualDetail:    detail,
			ProductName:     detail,
			ProductCategory: constants.ProductCategoryGeneral,
			Quantity:        in.Quantity,
			UnitPrice:       models.NewMoneyFromInt(*in.UnitPrice),
		})
	}
	return items, nil
}

// ChangeStatus 주문 상태 전이
// 재고 차감이 걸린 전이는 부족 품목을 전부 모아 한 번에 반환하고 아무것도 바꾸지 않는다.
func (s *OrderService) ChangeStatus(orderID uint, toStatus string) (*models.Order, error) {
	toStatus = strings.ToUpper(strings.TrimSpace(toStatus))
	if !constants.IsValidOrderStatus(toStatus) {
		return nil, ErrOrderStatusInvalid
	}
	if toStatus == constants.OrderStatusCanceled {
		order, _, err := s.CancelOrder(orderID)
		return order, err
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !allowedTransitions[order.Status][toStatus] {
		return nil, fmt.Errorf("%w: %s -> %s", ErrOrderStatusInvalid, order.Status, toStatus)
	}
	if order.Status == constants.OrderStatusCompleted && toStatus == constants.OrderStatusSettled {
		// 정산 전이는 발송 완료 등록(송장 또는 완료 사진)이 선행되어야 한다.
		if strings.TrimSpace(order.TrackingNumber) == "" && len(order.CompletionPhotos) == 0 {
			return nil, ErrTrackingNumberMissing
		}
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	if order.Status == constants.OrderStatusConsulting && toStatus == constants.OrderStatusProducing {
		dueDate := AddBusinessDays(now, s.orderCfg.DueDateLeadDays)
		updates["confirmed_date"] = now
		updates["due_date"] = dueDate
	}

	decrementStock := stockDecrementTransitions[order.Status][toStatus]
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if decrementStock {
			if stockErr := s.decreaseStockForItems(tx, order.Items); stockErr != nil {
				return stockErr
			}
		}
		return s.orderRepo.WithTx(tx).UpdateStatus(order.ID, toStatus, updates)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("주문 상태 전이", "order_id", order.ID, "from", order.Status, "to", toStatus)
	return s.orderRepo.GetByID(order.ID)
}

// decreaseStockForItems 품목 재고 일괄 차감 (전부 성공 또는 전부 실패)
// 추적하지 않거나 무제한(NULL) 재고인 옵션은 차감 없이 통과한다.
func (s *OrderService) decreaseStockForItems(tx *gorm.DB, items []models.OrderItem) error {
	optionRepo := s.optionRepo.WithTx(tx)

	optionIDs := make([]uint, 0, len(items))
	for _, item := range items {
		if item.ProductOptionID != nil {
			optionIDs = append(optionIDs, *item.ProductOptionID)
		}
	}
	if len(optionIDs) == 0 {
		return nil
	}

	options, err := optionRepo.ListByIDs(optionIDs)
	if err != nil {
		return err
	}
	optionByID := make(map[uint]models.ProductOption, len(options))
	for _, option := range options {
		optionByID[option.ID] = option
	}

	var shortages []StockShortage
	for _, item := range items {
		if item.ProductOptionID == nil {
			continue
		}
		option, ok := optionByID[*item.ProductOptionID]
		if !ok {
			// 옵션이 삭제된 품목은 차감 대상에서 제외
			continue
		}
		if !option.TrackInventory || option.StockUnlimited() {
			continue
		}
		if *option.StockQuantity < item.Quantity {
			shortages = append(shortages, StockShortage{
				OptionID:  option.ID,
				Label:     item.ProductName + " - " + item.OptionDetail,
				Requested: item.Quantity,
				Available: *option.StockQuantity,
			})
		}
	}
	if len(shortages) > 0 {
		return &StockShortageError{Shortages: shortages}
	}

	for _, item := range items {
		if item.ProductOptionID == nil {
			continue
		}
		option, ok := optionByID[*item.ProductOptionID]
		if !ok || !option.TrackInventory || option.StockUnlimited() {
			continue
		}
		affected, err := optionRepo.DecreaseStock(option.ID, item.Quantity)
		if err != nil {
			return err
		}
		if affected == 0 {
			// 동시 차감으로 잔량이 바뀐 경우
			return &StockShortageError{Shortages: []StockShortage{{
				OptionID:  option.ID,
				Label:     item.ProductName + " - " + item.OptionDetail,
				Requested: item.Quantity,
				Available: *option.StockQuantity,
			}}}
		}
	}
	return nil
}

// restoreStockForItems 취소 시 재고 복원 (무제한 옵션은 NULL 유지)
func (s *OrderService) restoreStockForItems(tx *gorm.DB, items []models.OrderItem) error {
	optionRepo := s.optionRepo.WithTx(tx)
	for _, item := range items {
		if item.ProductOptionID == nil {
			continue
		}
		if _, err := optionRepo.IncreaseStock(*item.ProductOptionID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// ConfirmDesign 시안 확정 (CONSULTING -> PRODUCING)
// 시안 파일 업로드가 먼저 끝난 뒤에 호출해야 하며, 확정일과 출고 예정일을 함께 기록한다.
func (s *OrderService) ConfirmDesign(orderID uint, driveFolderURL string, designImageURLs map[uint]string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusConsulting {
		return nil, fmt.Errorf("%w: %s -> %s", ErrOrderStatusInvalid, order.Status, constants.OrderStatusProducing)
	}
	if strings.TrimSpace(driveFolderURL) == "" && len(designImageURLs) == 0 {
		return nil, ErrDesignUploadRequired
	}

	now := time.Now()
	dueDate := AddBusinessDays(now, s.orderCfg.DueDateLeadDays)
	updates := map[string]interface{}{
		"confirmed_date": now,
		"due_date":       dueDate,
		"updated_at":     now,
	}
	if strings.TrimSpace(driveFolderURL) != "" {
		updates["drive_folder_url"] = strings.TrimSpace(driveFolderURL)
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for itemID, url := range designImageURLs {
			if strings.TrimSpace(url) == "" {
				continue
			}
			result := tx.Model(&models.OrderItem{}).
				Where("id = ? AND order_id = ?", itemID, order.ID).
				Update("design_image_url", strings.TrimSpace(url))
			if result.Error != nil {
				return result.Error
			}
		}
		return s.orderRepo.WithTx(tx).UpdateStatus(order.ID, constants.OrderStatusProducing, updates)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("시안 확정", "order_id", order.ID, "due_date", dueDate.Format("2006-01-02"))
	return s.orderRepo.GetByID(order.ID)
}

// CompleteOrders 발송 목록 내보내기 후 일괄 발송 완료 처리 (PRODUCED -> COMPLETED)
func (s *OrderService) CompleteOrders(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoOrdersSelected
	}
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	affected, err := s.orderRepo.UpdateStatusBulk(ids, constants.OrderStatusProduced, constants.OrderStatusCompleted, updates)
	if err != nil {
		return 0, err
	}
	logger.Infow("발송 완료 일괄 처리", "selected", len(ids), "updated", affected)
	return affected, nil
}

// RegisterCompletion 발송 완료 등록 (COMPLETED -> SETTLED)
// 송장번호가 비어 있어도 완료 사진이 있으면 등록을 허용한다.
func (s *OrderService) RegisterCompletion(orderID uint, trackingNumber string, photoURLs []string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusCompleted {
		return nil, fmt.Errorf("%w: %s -> %s", ErrOrderStatusInvalid, order.Status, constants.OrderStatusSettled)
	}
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" && len(photoURLs) == 0 {
		return nil, ErrTrackingNumberMissing
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	if trackingNumber != "" {
		updates["tracking_number"] = trackingNumber
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		txOrderRepo := s.orderRepo.WithTx(tx)
		if len(photoURLs) > 0 {
			photos := make([]models.OrderCompletionPhoto, 0, len(photoURLs))
			for _, url := range photoURLs {
				if strings.TrimSpace(url) == "" {
					continue
				}
				photos = append(photos, models.OrderCompletionPhoto{
					OrderID:  order.ID,
					PhotoURL: strings.TrimSpace(url),
				})
			}
			if len(photos) > 0 {
				if err := txOrderRepo.AddCompletionPhotos(photos); err != nil {
					return err
				}
			}
		}
		return txOrderRepo.UpdateStatus(order.ID, constants.OrderStatusSettled, updates)
	})
	if err != nil {
		return nil, err
	}

	if queueErr := s.queueClient.EnqueueCompletionNotify(queue.CompletionNotifyPayload{OrderID: order.ID}); queueErr != nil {
		logger.Warnw("제작 완료 알림 등록 실패", "order_id", order.ID, "error", queueErr)
	}
	logger.Infow("발송 완료 등록", "order_id", order.ID, "tracking_number", trackingNumber, "photos", len(photoURLs))
	return s.orderRepo.GetByID(order.ID)
}

// ArchiveOrder 단건 보관 처리 (SETTLED -> ARCHIVED)
func (s *OrderService) ArchiveOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusSettled {
		return nil, fmt.Errorf("%w: %s -> %s", ErrOrderStatusInvalid, order.Status, constants.OrderStatusArchived)
	}
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusArchived, updates); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

// ArchiveOrders 일괄 보관 처리
func (s *OrderService) ArchiveOrders(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoOrdersSelected
	}
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	return s.orderRepo.UpdateStatusBulk(ids, constants.OrderStatusSettled, constants.OrderStatusArchived, updates)
}

// CancelOrder 주문 취소
// 이미 취소된 주문은 오류가 아니라 alreadyCanceled=true 로 현재 상태를 돌려준다.
// 재고를 차감한 뒤의 취소는 차감분을 복원한다.
func (s *OrderService) CancelOrder(orderID uint) (*models.Order, bool, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, false, err
	}
	if order == nil {
		return nil, false, ErrOrderNotFound
	}

	switch order.Status {
	case constants.OrderStatusCanceled:
		return order, true, nil
	case constants.OrderStatusCompleted, constants.OrderStatusSettled, constants.OrderStatusArchived:
		return nil, false, fmt.Errorf("%w: %s", ErrOrderCancelNotAllowed, order.Status)
	}

	restoreStock := order.Status != constants.OrderStatusNew
	now := time.Now()
	updates := map[string]interface{}{
		"canceled_at": now,
		"updated_at":  now,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if restoreStock {
			if restoreErr := s.restoreStockForItems(tx, order.Items); restoreErr != nil {
				return restoreErr
			}
		}
		return s.orderRepo.WithTx(tx).UpdateStatus(order.ID, constants.OrderStatusCanceled, updates)
	})
	if err != nil {
		return nil, false, err
	}

	logger.Infow("주문 취소", "order_id", order.ID, "from", order.Status, "stock_restored", restoreStock)
	canceled, err := s.orderRepo.GetByID(order.ID)
	if err != nil {
		return nil, false, err
	}
	return canceled, false, nil
}

// UpdateOrder 주문 기본 정보 수정 (고객/배송/메모)
func (s *OrderService) UpdateOrder(orderID uint, updates map[string]interface{}) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	allowed := map[string]bool{
		"customer_name":    true,
		"customer_phone":   true,
		"shipping_address": true,
		"memo":             true,
		"tracking_number":  true,
		"drive_folder_url": true,
	}
	filtered := map[string]interface{}{}
	for key, value := range updates {
		if allowed[key] {
			filtered[key] = value
		}
	}
	if len(filtered) == 0 {
		return order, nil
	}
	filtered["updated_at"] = time.Now()
	if err := s.orderRepo.UpdateStatus(order.ID, order.Status, filtered); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}
