package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 주문 품목 테이블
type OrderItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                       // 기본키
	OrderID         uint           `gorm:"index;not null" json:"order_id"`                             // 주문ID
	ProductOptionID *uint          `gorm:"index" json:"product_option_id,omitempty"`                   // 상품 옵션ID (옵션 삭제 시 NULL)
	ProductName     string         `gorm:"type:varchar(200);not null" json:"product_name"`             // 상품명 스냅샷
	OptionDetail    string         `gorm:"type:varchar(200)" json:"option_detail"`                     // 옵션 내용 스냅샷
	ManualDetail    string         `gorm:"type:varchar(500)" json:"manual_detail"`                     // 수기 입력 품목 내용
	ProductCategory string         `gorm:"type:varchar(20);not null;default:'GENERAL'" json:"product_category"` // 상품 카테고리 스냅샷 (GOODS/GENERAL)
	Quantity        int            `gorm:"not null;default:1" json:"quantity"`                         // 수량
	UnitPrice       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`   // 판매 단가 스냅샷
	UnitCost        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_cost"`    // 원가 단가 스냅샷
	DesignImageURL  string         `gorm:"type:varchar(500)" json:"design_image_url"`                  // 시안 이미지 URL
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                    // 생성 시각
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                    // 수정 시각
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                             // 소프트 삭제 시각

	ProductOption *ProductOption `gorm:"foreignKey:ProductOptionID;constraint:OnDelete:SET NULL" json:"product_option,omitempty"` // 연관 옵션
}

// TableName 테이블명 지정
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal 품목 금액 (단가 x 수량)
func (i OrderItem) LineTotal() Money {
	return NewMoneyFromDecimal(i.UnitPrice.Mul(intToDecimal(i.Quantity)))
}

// LineCost 품목 원가 (원가 단가 x 수량)
func (i OrderItem) LineCost() Money {
	return NewMoneyFromDecimal(i.UnitCost.Mul(intToDecimal(i.Quantity)))
}

// LineProfit 품목 이익 (품목 금액 - 품목 원가)
func (i OrderItem) LineProfit() Money {
	return NewMoneyFromDecimal(i.LineTotal().Sub(i.LineCost().Decimal))
}

// DisplayName 화면 표시용 품목명
func (i OrderItem) DisplayName() string {
	if i.ManualDetail != "" {
		return i.ManualDetail
	}
	if i.OptionDetail != "" {
		return i.ProductName + " - " + i.OptionDetail
	}
	return i.ProductName
}
