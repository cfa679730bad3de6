// Package domain 结账会话的领域模型
// 结账是一个分步向导：填写收货信息、选择支付方式、确认、下单
package domain

import (
	"errors"
	"time"

	order "github.com/wyfcoding/ecommerce/internal/order/domain"
)

// Step 结账向导的步骤
type Step string

const (
	StepCustomerDetails Step = "CUSTOMER_DETAILS"
	StepPayment         Step = "PAYMENT"
	StepConfirmation    Step = "CONFIRMATION"
	StepPlacing         Step = "PLACING"
	StepPlaced          Step = "PLACED"
)

var (
	// ErrInvalidStep 当前步骤不允许该操作
	ErrInvalidStep = errors.New("operation not allowed in current checkout step")
	// ErrPaymentUnavailable 支付方式暂未开放
	ErrPaymentUnavailable = errors.New("payment method is not available yet")
	// ErrUnknownPayment 无法识别的支付方式
	ErrUnknownPayment = errors.New("unknown payment method")
	// ErrSessionNotFound 会话不存在或已过期
	ErrSessionNotFound = errors.New("checkout session not found")
	// ErrSessionCompleted 会话已完成，不可再操作
	ErrSessionCompleted = errors.New("checkout session already completed")
)

// Session 一次结账流程的会话
// 会话 ID 同时作为下单的幂等键，重复提交不会生成重复订单
type Session struct {
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	Step          Step                `json:"step"`
	Customer      order.CustomerInfo  `json:"customer"`
	PaymentMethod order.PaymentMethod `json:"payment_method"`
	OrderID       string              `json:"order_id,omitempty"`
	LastError     string              `json:"last_error,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewSession 创建结账会话，起始步骤为填写收货信息
func NewSession(id, userID string) *Session {
	now := time.Now()
	return &Session{
		ID:            id,
		UserID:        userID,
		Step:          StepCustomerDetails,
		PaymentMethod: order.PaymentMethodCOD,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SubmitDetails 提交收货信息并进入支付步骤
// 校验按字段顺序进行，返回第一个不通过的错误
func (s *Session) SubmitDetails(info order.CustomerInfo) error {
	if s.Step == StepPlaced {
		return ErrSessionCompleted
	}
	if s.Step != StepCustomerDetails {
		return ErrInvalidStep
	}
	if err := ValidateCustomerInfo(info); err != nil {
		return err
	}

	s.Customer = info
	s.Step = StepPayment
	s.UpdatedAt = time.Now()
	return nil
}

// SelectPayment 选择支付方式并进入确认步骤
// 目前仅开放货到付款，在线支付返回 ErrPaymentUnavailable
func (s *Session) SelectPayment(method order.PaymentMethod) error {
	if s.Step == StepPlaced {
		return ErrSessionCompleted
	}
	if s.Step != StepPayment {
		return ErrInvalidStep
	}
	if !method.Valid() {
		return ErrUnknownPayment
	}
	if method == order.PaymentMethodOnline {
		return ErrPaymentUnavailable
	}

	s.PaymentMethod = method
	s.Step = StepConfirmation
	s.UpdatedAt = time.Now()
	return nil
}

// Back 回退一步，仅在支付和确认步骤允许
func (s *Session) Back() error {
	switch s.Step {
	case StepPayment:
		s.Step = StepCustomerDetails
	case StepConfirmation:
		s.Step = StepPayment
	default:
		return ErrInvalidStep
	}
	s.UpdatedAt = time.Now()
	return nil
}

// BeginPlacing 从确认步骤进入下单中
func (s *Session) BeginPlacing() error {
	if s.Step == StepPlaced {
		return ErrSessionCompleted
	}
	if s.Step != StepConfirmation {
		return ErrInvalidStep
	}
	s.Step = StepPlacing
	s.LastError = ""
	s.UpdatedAt = time.Now()
	return nil
}

// CompletePlacing 下单成功，记录订单号并终结会话
func (s *Session) CompletePlacing(orderID string) error {
	if s.Step != StepPlacing {
		return ErrInvalidStep
	}
	s.OrderID = orderID
	s.Step = StepPlaced
	s.UpdatedAt = time.Now()
	return nil
}

// FailPlacing 下单失败，回到确认步骤并保留失败原因，购物车不受影响
func (s *Session) FailPlacing(reason string) error {
	if s.Step != StepPlacing {
		return ErrInvalidStep
	}
	s.Step = StepConfirmation
	s.LastError = reason
	s.UpdatedAt = time.Now()
	return nil
}

// IsCompleted 会话是否已成功下单
func (s *Session) IsCompleted() bool {
	return s.Step == StepPlaced
}
