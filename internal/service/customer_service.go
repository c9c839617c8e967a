package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tshirt-admin/internal/models"
	"github.com/tshirt-admin/internal/repository"
)

// CustomerService 고객 식별자 관리 서비스
type CustomerService struct {
	orderRepo repository.OrderRepository
}

// NewCustomerService 고객 서비스 생성
func NewCustomerService(orderRepo repository.OrderRepository) *CustomerService {
	return &CustomerService{orderRepo: orderRepo}
}

var (
	customerNumberSuffixRe = regexp.MustCompile(`-(\d+)$`)
	customerLetterSuffixRe = regexp.MustCompile(`([B-Z])$`)
)

// GenerateCustomerID 고객명과 연락처 기반으로 고객 식별자를 발급.
// 규칙:
//  1. 동일한 이름+연락처 주문이 있으면 이름-001, 이름-002 식으로 넘버링
//  2. 이름만 같고 연락처가 다르면 이름B, 이름C 식으로 알파벳 추가
//  3. 신규 고객이면 이름 그대로 사용
func (s *CustomerService) GenerateCustomerID(customerName, customerPhone string) (string, error) {
	name := strings.TrimSpace(customerName)
	if name == "" {
		return "", nil
	}
	phone := strings.TrimSpace(customerPhone)

	samePhoneIDs, err := s.orderRepo.ListCustomerIDsByNamePhone(name, phone)
	if err != nil {
		return "", err
	}
	if len(samePhoneIDs) > 0 {
		maxNumber := 0
		for _, id := range samePhoneIDs {
			match := customerNumberSuffixRe.FindStringSubmatch(id)
			if match == nil {
				continue
			}
			number := parseDigits(match[1])
			if number > maxNumber {
				maxNumber = number
			}
		}
		return name + numberSuffix(maxNumber+1), nil
	}

	sameNameIDs, err := s.orderRepo.ListCustomerIDs(name)
	if err != nil {
		return "", err
	}
	if len(sameNameIDs) > 0 {
		used := make(map[string]bool)
		for _, id := range sameNameIDs {
			match := customerLetterSuffixRe.FindStringSubmatch(id)
			if match != nil {
				used[match[1]] = true
			}
		}
		for letter := 'B'; letter <= 'Z'; letter++ {
			candidate := string(letter)
			if !used[candidate] {
				return name + candidate, nil
			}
		}
	}

	return name, nil
}

// IsExistingCustomer 이름+연락처 기준 기존 고객 여부
func (s *CustomerService) IsExistingCustomer(customerName, customerPhone string) (bool, error) {
	ids, err := s.orderRepo.ListCustomerIDsByNamePhone(strings.TrimSpace(customerName), strings.TrimSpace(customerPhone))
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// ListCustomerOrders 고객 식별자로 주문 이력 조회
func (s *CustomerService) ListCustomerOrders(customerID string, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.List(repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: strings.TrimSpace(customerID),
		WithItems:  true,
	})
}

func parseDigits(raw string) int {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}

func numberSuffix(n int) string {
	return fmt.Sprintf("-%03d", n)
}
