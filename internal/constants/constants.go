package constants

// 주문 상태 상수
const (
	OrderStatusNew        = "NEW"        // 신규 주문
	OrderStatusConsulting = "CONSULTING" // 시안 협의 중
	OrderStatusProducing  = "PRODUCING"  // 제작 중
	OrderStatusProduced   = "PRODUCED"   // 제작 완료
	OrderStatusCompleted  = "COMPLETED"  // 발송 완료
	OrderStatusSettled    = "SETTLED"    // 정산 완료
	OrderStatusArchived   = "ARCHIVED"   // 보관
	OrderStatusCanceled   = "CANCELED"   // 취소
)

// OrderStatuses 전체 주문 상태 목록 (화면 표시 순서)
var OrderStatuses = []string{
	OrderStatusNew,
	OrderStatusConsulting,
	OrderStatusProducing,
	OrderStatusProduced,
	OrderStatusCompleted,
	OrderStatusSettled,
	OrderStatusArchived,
	OrderStatusCanceled,
}

// SalesStatuses 매출로 집계하는 주문 상태 (결제일 기준 판매 현황)
var SalesStatuses = []string{
	OrderStatusProducing,
	OrderStatusProduced,
	OrderStatusCompleted,
	OrderStatusSettled,
	OrderStatusArchived,
}

// ClosedOutStatuses 발송 이후 단계의 주문 상태
var ClosedOutStatuses = []string{
	OrderStatusCompleted,
	OrderStatusSettled,
	OrderStatusArchived,
}

// 상품 카테고리 상수
const (
	ProductCategoryGoods   = "GOODS"   // 커스텀 굿즈
	ProductCategoryGeneral = "GENERAL" // 일반 상품
)

// 지출 항목 상수
const (
	ExpenseCategoryShipping    = "SHIPPING"    // 배송비
	ExpenseCategoryAdvertising = "ADVERTISING" // 광고비
	ExpenseCategoryMaterials   = "MATERIALS"   // 부자재
	ExpenseCategoryEquipment   = "EQUIPMENT"   // 장비
	ExpenseCategoryUtilities   = "UTILITIES"   // 공과금
	ExpenseCategoryRent        = "RENT"        // 임대료
	ExpenseCategoryOther       = "OTHER"       // 기타
)

// ExpenseCategories 지출 항목 목록
var ExpenseCategories = []string{
	ExpenseCategoryShipping,
	ExpenseCategoryAdvertising,
	ExpenseCategoryMaterials,
	ExpenseCategoryEquipment,
	ExpenseCategoryUtilities,
	ExpenseCategoryRent,
	ExpenseCategoryOther,
}

// 매입 항목 상수
const (
	PurchaseCategoryTShirt          = "TSHIRT"           // 티셔츠
	PurchaseCategoryHoodie          = "HOODIE"           // 후드
	PurchaseCategoryInk             = "INK"              // 잉크
	PurchaseCategoryPrinterSupplies = "PRINTER_SUPPLIES" // 프린터 소모품
	PurchaseCategoryOther           = "OTHER"            // 기타
)

// PurchaseCategories 매입 항목 목록
var PurchaseCategories = []string{
	PurchaseCategoryTShirt,
	PurchaseCategoryHoodie,
	PurchaseCategoryInk,
	PurchaseCategoryPrinterSupplies,
	PurchaseCategoryOther,
}

// 큐 상수
const (
	QueueDefault           = "default"
	QueueCritical          = "critical"
	TaskOrderArchive       = "order:archive"
	TaskSmartstoreSync     = "smartstore:sync"
	TaskCompletionNotify   = "order:completion_notify"
)

// 캐시 기본 설정 상수
const (
	RedisPrefixDefault = "ts"
)

// 설정 키 상수
const (
	SettingKeyDriveAPIConfig      = "drive_api_config"      // 구글 드라이브 연동 설정
	SettingKeySmartstoreAPIConfig = "smartstore_api_config" // 스마트스토어 연동 설정
	SettingKeyStoreConfig         = "store_config"          // 스토어 일반 설정
)

// 통화 상수
const (
	SiteCurrencyDefault = "KRW"
)

// TaxBracket 종합소득세 누진 구간
type TaxBracket struct {
	UpperBound int64   // 과세표준 상한 (원), 0 이면 무제한
	Rate       float64 // 세율
	Deduction  int64   // 누진공제액 (원)
}

// IncomeTaxBrackets 종합소득세 과세표준 구간표 (2023년 귀속분 이후)
var IncomeTaxBrackets = []TaxBracket{
	{UpperBound: 14_000_000, Rate: 0.06, Deduction: 0},
	{UpperBound: 50_000_000, Rate: 0.15, Deduction: 1_260_000},
	{UpperBound: 88_000_000, Rate: 0.24, Deduction: 5_760_000},
	{UpperBound: 150_000_000, Rate: 0.35, Deduction: 15_440_000},
	{UpperBound: 300_000_000, Rate: 0.38, Deduction: 19_940_000},
	{UpperBound: 500_000_000, Rate: 0.40, Deduction: 25_940_000},
	{UpperBound: 1_000_000_000, Rate: 0.42, Deduction: 35_940_000},
	{UpperBound: 0, Rate: 0.45, Deduction: 65_940_000},
}

// IsValidOrderStatus 허용된 주문 상태인지 확인
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidExpenseCategory 허용된 지출 항목인지 확인
func IsValidExpenseCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

// IsValidPurchaseCategory 허용된 매입 항목인지 확인
func IsValidPurchaseCategory(category string) bool {
	for _, c := range PurchaseCategories {
		if c == category {
			return true
		}
	}
	return false
}
