package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense 지출 테이블
type Expense struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                  // 기본키
	ExpenseDate time.Time      `gorm:"index;not null" json:"expense_date"`                    // 지출일
	Category    string         `gorm:"type:varchar(32);not null;index" json:"category"`       // 지출 항목
	Description string         `gorm:"type:varchar(500)" json:"description"`                  // 내용
	Amount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`   // 금액 (단가)
	Quantity    int            `gorm:"not null;default:1" json:"quantity"`                    // 수량
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                               // 생성 시각
	UpdatedAt   time.Time      `json:"updated_at"`                                            // 수정 시각
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                        // 소프트 삭제 시각
}

// TotalAmount 총 지출 금액 (금액 × 수량)
func (e *Expense) TotalAmount() Money {
	return NewMoneyFromDecimal(e.Amount.Mul(intToDecimal(e.Quantity)))
}

// TableName 테이블명 지정
func (Expense) TableName() string {
	return "expenses"
}
