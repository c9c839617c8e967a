package repository

import "time"

// OrderListFilter 주문 목록 조회 필터
type OrderListFilter struct {
	Page            int
	PageSize        int
	Status          string
	Statuses        []string
	IDs             []uint
	ExternalOrderID string
	CustomerID      string
	Search          string // 고객명 / 주문번호 부분 일치
	PaymentFrom     *time.Time
	PaymentTo       *time.Time
	UpdatedFrom     *time.Time
	DueBefore       *time.Time
	WithItems       bool
	WithPhotos      bool
}

// ProductListFilter 상품 목록 조회 필터
type ProductListFilter struct {
	Page        int
	PageSize    int
	Category    string
	Search      string
	OnlyActive  bool
	WithOptions bool
}

// LedgerListFilter 지출/매입 목록 조회 필터
type LedgerListFilter struct {
	Page     int
	PageSize int
	Category string
	From     *time.Time
	To       *time.Time
}
