package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	order "github.com/wyfcoding/ecommerce/internal/order/domain"
)

func validCustomer() order.CustomerInfo {
	return order.CustomerInfo{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha.rao@example.com",
		Phone:     "9876543210",
		Address:   "12 MG Road",
		City:      "Bengaluru",
		State:     "Karnataka",
		Pincode:   "560001",
	}
}

func TestNewSessionStartsAtCustomerDetails(t *testing.T) {
	s := NewSession("cs-1", "user-1")

	assert.Equal(t, StepCustomerDetails, s.Step)
	assert.Equal(t, order.PaymentMethodCOD, s.PaymentMethod)
	assert.False(t, s.IsCompleted())
}

func TestSubmitDetailsAdvancesToPayment(t *testing.T) {
	s := NewSession("cs-1", "user-1")

	require.NoError(t, s.SubmitDetails(validCustomer()))
	assert.Equal(t, StepPayment, s.Step)
	assert.Equal(t, "asha.rao@example.com", s.Customer.Email)
}

func TestSubmitDetailsRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*order.CustomerInfo)
		wantErr error
	}{
		{"missing first name", func(c *order.CustomerInfo) { c.FirstName = "  " }, ErrFirstNameRequired},
		{"missing last name", func(c *order.CustomerInfo) { c.LastName = "" }, ErrLastNameRequired},
		{"malformed email", func(c *order.CustomerInfo) { c.Email = "not-an-email" }, ErrEmailInvalid},
		{"email without domain", func(c *order.CustomerInfo) { c.Email = "asha@" }, ErrEmailInvalid},
		{"short phone", func(c *order.CustomerInfo) { c.Phone = "12345" }, ErrPhoneInvalid},
		{"phone with letters", func(c *order.CustomerInfo) { c.Phone = "98765x3210" }, ErrPhoneInvalid},
		{"eleven digit phone", func(c *order.CustomerInfo) { c.Phone = "98765432101" }, ErrPhoneInvalid},
		{"missing address", func(c *order.CustomerInfo) { c.Address = "" }, ErrAddressRequired},
		{"missing city", func(c *order.CustomerInfo) { c.City = "" }, ErrCityRequired},
		{"missing state", func(c *order.CustomerInfo) { c.State = "" }, ErrStateRequired},
		{"five digit pincode", func(c *order.CustomerInfo) { c.Pincode = "56000" }, ErrPincodeInvalid},
		{"pincode with letters", func(c *order.CustomerInfo) { c.Pincode = "56000a" }, ErrPincodeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession("cs-1", "user-1")
			info := validCustomer()
			tt.mutate(&info)

			err := s.SubmitDetails(info)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, StepCustomerDetails, s.Step)
		})
	}
}

func TestValidationReportsFirstFailureOnly(t *testing.T) {
	info := validCustomer()
	info.Email = "broken"
	info.Phone = "123"
	info.Pincode = "9"

	// 邮箱排在电话和邮编之前，应先报邮箱错误
	assert.ErrorIs(t, ValidateCustomerInfo(info), ErrEmailInvalid)
}

func TestSelectPaymentCOD(t *testing.T) {
	s := NewSession("cs-1", "user-1")
	require.NoError(t, s.SubmitDetails(validCustomer()))

	require.NoError(t, s.SelectPayment(order.PaymentMethodCOD))
	assert.Equal(t, StepConfirmation, s.Step)
	assert.Equal(t, order.PaymentMethodCOD, s.PaymentMethod)
}

func TestSelectPaymentOnlineUnavailable(t *testing.T) {
	s := NewSession("cs-1", "user-1")
	require.NoError(t, s.SubmitDetails(validCustomer()))

	err := s.SelectPayment(order.PaymentMethodOnline)
	assert.ErrorIs(t, err, ErrPaymentUnavailable)
	assert.Equal(t, StepPayment, s.Step)
}

func TestSelectPaymentUnknownMethod(t *testing.T) {
	s := NewSession("cs-1", "user-1")
	require.NoError(t, s.SubmitDetails(validCustomer()))

	assert.ErrorIs(t, s.SelectPayment("BARTER"), ErrUnknownPayment)
}

func TestSelectPaymentBeforeDetails(t *testing.T) {
	s := NewSession("cs-1", "user-1")

	assert.ErrorIs(t, s.SelectPayment(order.PaymentMethodCOD), ErrInvalidStep)
}

func TestBackNavigation(t *testing.T) {
	s := NewSession("cs-1", "user-1")
	require.NoError(t, s.SubmitDetails(validCustomer()))
	require.NoError(t, s.SelectPayment(order.PaymentMethodCOD))

	require.NoError(t, s.Back())
	assert.Equal(t, StepPayment, s.Step)

	require.NoError(t, s.Back())
	assert.Equal(t, StepCustomerDetails, s.Step)

	assert.ErrorIs(t, s.Back(), ErrInvalidStep)
}

func TestPlacingLifecycle(t *testing.T) {
	s := NewSession("cs-1", "user-1")
	require.NoError(t, s.SubmitDetails(validCustomer()))
	require.NoError(t, s.SelectPayment(order.PaymentMethodCOD))

	require.NoError(t, s.BeginPlacing())
	assert.Equal(t, StepPlacing, s.Step)

	require.NoError(t, s.CompletePlacing("ORD-1001"))
	assert.Equal(t, StepPlaced, s.Step)
	assert.Equal(t, "ORD-1001", s.OrderID)
	assert.True(t, s.IsCompleted())
}

func TestFailPlacingReturnsToConfirmation(t *testing.T) {
	s := NewSession("cs-1", "user-1")
	require.NoError(t, s.SubmitDetails(validCustomer()))
	require.NoError(t, s.SelectPayment(order.PaymentMethodCOD))
	require.NoError(t, s.BeginPlacing())

	require.NoError(t, s.FailPlacing("order service unavailable"))
	assert.Equal(t, StepConfirmation, s.Step)
	assert.Equal(t, "order service unavailable", s.LastError)

	// 重试会清掉上一次的失败原因
	require.NoError(t, s.BeginPlacing())
	assert.Empty(t, s.LastError)
}

func TestCompletedSessionRejectsFurtherOperations(t *testing.T) {
	s := NewSession("cs-1", "user-1")
	require.NoError(t, s.SubmitDetails(validCustomer()))
	require.NoError(t, s.SelectPayment(order.PaymentMethodCOD))
	require.NoError(t, s.BeginPlacing())
	require.NoError(t, s.CompletePlacing("ORD-1001"))

	assert.ErrorIs(t, s.SubmitDetails(validCustomer()), ErrSessionCompleted)
	assert.ErrorIs(t, s.SelectPayment(order.PaymentMethodCOD), ErrSessionCompleted)
	assert.ErrorIs(t, s.BeginPlacing(), ErrSessionCompleted)
	assert.ErrorIs(t, s.Back(), ErrInvalidStep)
}

func TestBeginPlacingRequiresConfirmation(t *testing.T) {
	s := NewSession("cs-1", "user-1")

	assert.ErrorIs(t, s.BeginPlacing(), ErrInvalidStep)

	require.NoError(t, s.SubmitDetails(validCustomer()))
	assert.ErrorIs(t, s.BeginPlacing(), ErrInvalidStep)
}
