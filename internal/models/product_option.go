package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductOption 상품 옵션 테이블 (색상/사이즈 조합 단위)
type ProductOption struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                      // 기본키
	ProductID      uint           `gorm:"not null;index" json:"product_id"`                          // 상품ID
	OptionDetail   string         `gorm:"type:varchar(200);not null" json:"option_detail"`           // 옵션 내용 (예: 화이트 / L)
	Price          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 판매가
	Cost           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cost"`         // 원가
	StockQuantity  *int           `json:"stock_quantity"`                                            // 재고 수량 (NULL 이면 무제한)
	TrackInventory bool           `gorm:"not null;default:false" json:"track_inventory"`             // 재고 추적 여부
	IsActive       bool           `gorm:"default:true;index" json:"is_active"`                       // 판매 여부
	SortOrder      int            `gorm:"default:0;index" json:"sort_order"`                         // 정렬 순서
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                   // 생성 시각
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                   // 수정 시각
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                            // 소프트 삭제 시각

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 소속 상품
}

// TableName 테이블명 지정
func (ProductOption) TableName() string {
	return "product_options"
}

// StockUnlimited 재고 무제한 여부
func (o ProductOption) StockUnlimited() bool {
	return o.StockQuantity == nil
}
