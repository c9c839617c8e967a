package models

import (
	"time"

	"github.com/tshirt-admin/internal/constants"

	"gorm.io/gorm"
)

// 주문 유입 경로 상수
const (
	OrderSourceSmartstore = "SMARTSTORE" // 스마트스토어 수집
	OrderSourceManual     = "MANUAL"     // 수기 등록
)

// Order 주문 테이블
type Order struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                           // 기본키
	ExternalOrderID  string         `gorm:"uniqueIndex;not null" json:"external_order_id"`                  // 외부 주문번호 (스마트스토어 주문번호 또는 수기 채번)
	Source           string         `gorm:"type:varchar(20);not null;default:'MANUAL'" json:"source"`       // 유입 경로
	Status           string         `gorm:"type:varchar(20);index;not null" json:"status"`                  // 주문 상태
	CustomerID       string         `gorm:"type:varchar(64);index" json:"customer_id"`                      // 고객 식별자 (이름 기반 라벨)
	CustomerName     string         `gorm:"type:varchar(100);not null;index" json:"customer_name"`          // 고객명
	CustomerPhone    string         `gorm:"type:varchar(32)" json:"customer_phone"`                         // 연락처
	ShippingAddress  string         `gorm:"type:varchar(500)" json:"shipping_address"`                      // 배송 주소
	PaymentDate      *time.Time     `gorm:"index" json:"payment_date"`                                      // 결제일
	ShippingCost     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_cost"`     // 배송비
	TotalOrderAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_order_amount"` // 주문 총액 (배송비 포함)
	ConfirmedDate    *time.Time     `gorm:"index" json:"confirmed_date"`                                    // 시안 확정일
	DueDate          *time.Time     `gorm:"index" json:"due_date"`                                          // 출고 예정일
	TrackingNumber   string         `gorm:"type:varchar(64)" json:"tracking_number"`                        // 송장번호
	DriveFolderURL   string         `gorm:"type:varchar(500)" json:"drive_folder_url"`                      // 시안 보관 폴더 URL
	Memo             string         `gorm:"type:text" json:"memo"`                                          // 메모
	CanceledAt       *time.Time     `gorm:"index" json:"canceled_at"`                                       // 취소 시각
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                        // 생성 시각
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                                        // 수정 시각
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                                 // 소프트 삭제 시각

	// 연관
	Items            []OrderItem            `gorm:"foreignKey:OrderID" json:"items,omitempty"`             // 주문 품목
	CompletionPhotos []OrderCompletionPhoto `gorm:"foreignKey:OrderID" json:"completion_photos,omitempty"` // 발송 완료 사진
}

// TableName 테이블명 지정
func (Order) TableName() string {
	return "orders"
}

// ItemsTotal 품목 합계 금액 (배송비 제외)
func (o Order) ItemsTotal() Money {
	total := Money{}
	for _, item := range o.Items {
		total = NewMoneyFromDecimal(total.Add(item.LineTotal().Decimal))
	}
	return total
}

// TotalCost 주문 원가 합계 (품목 원가 + 배송비)
func (o Order) TotalCost() Money {
	total := o.ShippingCost
	for _, item := range o.Items {
		total = NewMoneyFromDecimal(total.Add(item.LineCost().Decimal))
	}
	return total
}

// Profit 주문 이익 (주문 총액 - 원가 합계)
func (o Order) Profit() Money {
	return NewMoneyFromDecimal(o.TotalOrderAmount.Sub(o.TotalCost().Decimal))
}

// IsGoodsOrder GOODS 품목 포함 여부
// GOODS 주문만 시안 협의/확정 단계를 거친다.
func (o Order) IsGoodsOrder() bool {
	for _, item := range o.Items {
		if item.ProductCategory == constants.ProductCategoryGoods {
			return true
		}
	}
	return false
}

// Category 주문 분류 (GOODS 품목이 하나라도 있으면 GOODS, 없으면 GENERAL)
func (o Order) Category() string {
	if o.IsGoodsOrder() {
		return constants.ProductCategoryGoods
	}
	return constants.ProductCategoryGeneral
}
