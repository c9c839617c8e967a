package service

import (
	"strings"

	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/models"
	"github.com/tshirt-admin/internal/repository"

	"gorm.io/gorm"
)

// ProductService 상품 카탈로그 서비스
type ProductService struct {
	productRepo repository.ProductRepository
	optionRepo  repository.ProductOptionRepository
}

// NewProductService 상품 서비스 생성
func NewProductService(productRepo repository.ProductRepository, optionRepo repository.ProductOptionRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		optionRepo:  optionRepo,
	}
}

// ProductOptionInput 상품 옵션 입력
type ProductOptionInput struct {
	ID             uint // 0이면 신규
	OptionDetail   string
	Price          int64
	Cost           int64
	StockQuantity  *int // nil 이면 무제한
	TrackInventory bool
	IsActive       bool
	SortOrder      int
}

// CreateProductInput 상품 생성/수정 입력
type CreateProductInput struct {
	Name        string
	Category    string
	Description string
	IsActive    bool
	SortOrder   int
	Options     []ProductOptionInput
}

// List 상품 목록 조회
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetByID 상품 상세 조회 (옵션 포함)
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 상품 생성 (옵션 일괄 포함)
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductNameRequired
	}
	existing, err := s.productRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProductNameExists
	}

	category := normalizeProductCategory(input.Category)
	product := &models.Product{
		Name:        name,
		Category:    category,
		Description: strings.TrimSpace(input.Description),
		IsActive:    input.IsActive,
		SortOrder:   input.SortOrder,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		txProductRepo := s.productRepo.WithTx(tx)
		if err := txProductRepo.Create(product); err != nil {
			return err
		}
		options := buildOptions(product.ID, input.Options)
		if len(options) == 0 {
			return nil
		}
		return s.optionRepo.WithTx(tx).CreateBatch(options)
	})
	if err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(product.ID)
}

// Update 상품 수정
// 옵션은 입력에 있는 것만 남기고 갱신하되, 주문 품목이 참조할 수 있어 소프트 삭제한다.
func (s *ProductService) Update(id uint, input CreateProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name != "" && name != product.Name {
		existing, err := s.productRepo.GetByName(name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, ErrProductNameExists
		}
		product.Name = name
	}
	product.Category = normalizeProductCategory(input.Category)
	product.Description = strings.TrimSpace(input.Description)
	product.IsActive = input.IsActive
	product.SortOrder = input.SortOrder

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		txProductRepo := s.productRepo.WithTx(tx)
		txOptionRepo := s.optionRepo.WithTx(tx)
		if err := txProductRepo.Update(product); err != nil {
			return err
		}

		keep := map[uint]bool{}
		for _, in := range input.Options {
			if in.ID == 0 {
				continue
			}
			keep[in.ID] = true
		}
		current, err := txOptionRepo.ListByProduct(product.ID, false)
		if err != nil {
			return err
		}
		for _, option := range current {
			if !keep[option.ID] {
				if err := txOptionRepo.Delete(option.ID); err != nil {
					return err
				}
			}
		}

		for _, in := range input.Options {
			if in.ID == 0 {
				option := buildOption(product.ID, in)
				if err := txOptionRepo.Create(&option); err != nil {
					return err
				}
				continue
			}
			option, err := txOptionRepo.GetByID(in.ID)
			if err != nil {
				return err
			}
			if option == nil || option.ProductID != product.ID {
				return ErrProductOptionNotFound
			}
			option.OptionDetail = strings.TrimSpace(in.OptionDetail)
			option.Price = models.NewMoneyFromInt(in.Price)
			option.Cost = models.NewMoneyFromInt(in.Cost)
			option.StockQuantity = in.StockQuantity
			option.TrackInventory = in.TrackInventory
			option.IsActive = in.IsActive
			option.SortOrder = in.SortOrder
			if err := txOptionRepo.Update(option); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(product.ID)
}

// Delete 상품 삭제 (옵션까지 소프트 삭제)
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.optionRepo.WithTx(tx).DeleteByProduct(id); err != nil {
			return err
		}
		return s.productRepo.WithTx(tx).Delete(id)
	})
}

// GetOption 옵션 단건 조회
func (s *ProductService) GetOption(optionID uint) (*models.ProductOption, error) {
	option, err := s.optionRepo.GetByID(optionID)
	if err != nil {
		return nil, err
	}
	if option == nil {
		return nil, ErrProductOptionNotFound
	}
	return option, nil
}

// AdjustStock 옵션 재고 직접 보정 (nil 이면 무제한으로 전환)
func (s *ProductService) AdjustStock(optionID uint, stockQuantity *int) (*models.ProductOption, error) {
	option, err := s.optionRepo.GetByID(optionID)
	if err != nil {
		return nil, err
	}
	if option == nil {
		return nil, ErrProductOptionNotFound
	}
	if stockQuantity != nil && *stockQuantity < 0 {
		return nil, ErrInvalidAmount
	}
	option.StockQuantity = stockQuantity
	if err := s.optionRepo.Update(option); err != nil {
		return nil, err
	}
	return s.optionRepo.GetByID(option.ID)
}

func buildOptions(productID uint, inputs []ProductOptionInput) []models.ProductOption {
	options := make([]models.ProductOption, 0, len(inputs))
	for _, in := range inputs {
		options = append(options, buildOption(productID, in))
	}
	return options
}

func buildOption(productID uint, in ProductOptionInput) models.ProductOption {
	return models.ProductOption{
		ProductID:      productID,
		OptionDetail:   strings.TrimSpace(in.OptionDetail),
		Price:          models.NewMoneyFromInt(in.Price),
		Cost:           models.NewMoneyFromInt(in.Cost),
		StockQuantity:  in.StockQuantity,
		TrackInventory: in.TrackInventory,
		IsActive:       in.IsActive,
		SortOrder:      in.SortOrder,
	}
}

func normalizeProductCategory(raw string) string {
	category := strings.ToUpper(strings.TrimSpace(raw))
	switch category {
	case constants.ProductCategoryGoods, constants.ProductCategoryGeneral:
		return category
	default:
		return constants.ProductCategoryGoods
	}
}
