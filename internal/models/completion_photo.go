package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderCompletionPhoto 발송 완료 사진 테이블
type OrderCompletionPhoto struct {
	ID        uint           `gorm:"primarykey" json:"id"`                       // 기본키
	OrderID   uint           `gorm:"index;not null" json:"order_id"`             // 주문ID
	PhotoURL  string         `gorm:"type:varchar(500);not null" json:"photo_url"` // 사진 URL
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                    // 생성 시각
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                             // 소프트 삭제 시각
}

// TableName 테이블명 지정
func (OrderCompletionPhoto) TableName() string {
	return "order_completion_photos"
}
