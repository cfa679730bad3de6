package domain

import (
	"errors"
	"regexp"
	"strings"

	order "github.com/wyfcoding/ecommerce/internal/order/domain"
)

var (
	ErrFirstNameRequired = errors.New("first name is required")
	ErrLastNameRequired  = errors.New("last name is required")
	ErrEmailInvalid      = errors.New("a valid email address is required")
	ErrPhoneInvalid      = errors.New("phone must be a 10 digit number")
	ErrAddressRequired   = errors.New("address is required")
	ErrCityRequired      = errors.New("city is required")
	ErrStateRequired     = errors.New("state is required")
	ErrPincodeInvalid    = errors.New("pincode must be a 6 digit number")
)

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern   = regexp.MustCompile(`^\d{10}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
)

// ValidateCustomerInfo 按字段顺序校验收货信息，返回第一个不通过的错误
func ValidateCustomerInfo(info order.CustomerInfo) error {
	if strings.TrimSpace(info.FirstName) == "" {
		return ErrFirstNameRequired
	}
	if strings.TrimSpace(info.LastName) == "" {
		return ErrLastNameRequired
	}
	if !emailPattern.MatchString(info.Email) {
		return ErrEmailInvalid
	}
	if !phonePattern.MatchString(info.Phone) {
		return ErrPhoneInvalid
	}
	if strings.TrimSpace(info.Address) == "" {
		return ErrAddressRequired
	}
	if strings.TrimSpace(info.City) == "" {
		return ErrCityRequired
	}
	if strings.TrimSpace(info.State) == "" {
		return ErrStateRequired
	}
	if !pincodePattern.MatchString(info.Pincode) {
		return ErrPincodeInvalid
	}
	return nil
}
