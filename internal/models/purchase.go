package models

import (
	"time"

	"gorm.io/gorm"
)

// Purchase 매입 테이블 (원자재 입고 내역)
type Purchase struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                     // 기본키
	PurchaseDate time.Time      `gorm:"index;not null" json:"purchase_date"`                      // 매입일
	Category     string         `gorm:"type:varchar(32);not null;index" json:"category"`          // 매입 항목
	ItemName     string         `gorm:"type:varchar(200);not null" json:"item_name"`              // 품목명
	Quantity     int            `gorm:"not null;default:1" json:"quantity"`                       // 수량
	UnitCost     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_cost"`   // 단가
	TotalAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 합계 금액
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                  // 생성 시각
	UpdatedAt    time.Time      `json:"updated_at"`                                               // 수정 시각
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                           // 소프트 삭제 시각
}

// TableName 테이블명 지정
func (Purchase) TableName() string {
	return "purchases"
}
