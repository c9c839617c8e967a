package service

import (
	"fmt"
	"unicode"

	"github.com/tshirt-admin/internal/config"
)

type passwordPolicyError struct {
	reason string
}

func (e passwordPolicyError) Error() string {
	return e.reason
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength <= 0 &&
		!policy.RequireUpper &&
		!policy.RequireLower &&
		!policy.RequireNumber {
		return nil
	}

	if policy.MinLength > 0 {
		if len([]rune(password)) < policy.MinLength {
			return passwordPolicyError{reason: fmt.Sprintf("비밀번호는 %d자 이상이어야 합니다", policy.MinLength)}
		}
	}

	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}

	if policy.RequireUpper && !hasUpper {
		return passwordPolicyError{reason: "비밀번호에 대문자가 포함되어야 합니다"}
	}
	if policy.RequireLower && !hasLower {
		return passwordPolicyError{reason: "비밀번호에 소문자가 포함되어야 합니다"}
	}
	if policy.RequireNumber && !hasNumber {
		return passwordPolicyError{reason: "비밀번호에 숫자가 포함되어야 합니다"}
	}

	return nil
}
