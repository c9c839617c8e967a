package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin 관리자 테이블
type Admin struct {
	ID           uint           `gorm:"primarykey" json:"id"`                 // 기본키
	Username     string         `gorm:"uniqueIndex;not null" json:"username"` // 관리자 계정
	PasswordHash string         `gorm:"not null" json:"-"`                    // 비밀번호 해시 (응답에 포함하지 않음)
	LastLoginAt  *time.Time     `json:"last_login_at"`                        // 최근 로그인 시각
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`              // 생성 시각
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                       // 소프트 삭제 시각
}

// TableName 테이블명 지정
func (Admin) TableName() string {
	return "admins"
}
