package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 상품 테이블
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                    // 기본키
	Name        string         `gorm:"type:varchar(200);not null;index" json:"name"`            // 상품명
	Category    string         `gorm:"type:varchar(20);not null;default:'GOODS'" json:"category"` // 카테고리 (GOODS/GENERAL)
	Description string         `gorm:"type:text" json:"description"`                            // 상품 설명
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                     // 판매 여부
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                       // 정렬 순서
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                 // 생성 시각
	UpdatedAt   time.Time      `json:"updated_at"`                                              // 수정 시각
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                          // 소프트 삭제 시각

	// 연관
	Options []ProductOption `gorm:"foreignKey:ProductID" json:"options,omitempty"` // 옵션 목록
}

// TableName 테이블명 지정
func (Product) TableName() string {
	return "products"
}
