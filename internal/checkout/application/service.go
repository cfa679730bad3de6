// Package application 结账流程编排
package application

import (
	"context"
	"errors"

	cart "github.com/wyfcoding/ecommerce/internal/cart/domain"
	"github.com/wyfcoding/ecommerce/internal/checkout/domain"
	orderapp "github.com/wyfcoding/ecommerce/internal/order/application"
	order "github.com/wyfcoding/ecommerce/internal/order/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/metrics"
)

// ErrEmptyCart 购物车为空时不允许下单
var ErrEmptyCart = errors.New("cannot place an order with an empty cart")

// CartProvider 结账所需的购物车操作
type CartProvider interface {
	GetCart(ctx context.Context, userID string) (*cart.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

// OrderPlacer 结账所需的下单操作
type OrderPlacer interface {
	CreateOrder(ctx context.Context, cmd orderapp.CreateOrderCommand) (string, error)
}

// SessionIDGenerator 会话 ID 生成器
type SessionIDGenerator interface {
	GenerateString(prefix string) string
}

// CheckoutApplicationService 编排结账向导与下单
type CheckoutApplicationService struct {
	sessions domain.SessionRepository
	carts    CartProvider
	orders   OrderPlacer
	ids      SessionIDGenerator
	metrics  *metrics.Metrics
}

// NewCheckoutApplicationService 创建结账应用服务
func NewCheckoutApplicationService(sessions domain.SessionRepository, carts CartProvider, orders OrderPlacer, ids SessionIDGenerator, m *metrics.Metrics) *CheckoutApplicationService {
	return &CheckoutApplicationService{
		sessions: sessions,
		carts:    carts,
		orders:   orders,
		ids:      ids,
		metrics:  m,
	}
}

// StartCheckout 为用户开启一次结账会话
func (s *CheckoutApplicationService) StartCheckout(ctx context.Context, userID string) (*domain.Session, error) {
	c, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	session := domain.NewSession(s.ids.GenerateString("CHK"), userID)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CheckoutsStarted.Inc()
	}
	logger.Info(ctx, "Checkout started", "session_id", session.ID, "user_id", userID)
	return session, nil
}

// GetSession 读取结账会话
func (s *CheckoutApplicationService) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

// SubmitDetails 提交收货信息
func (s *CheckoutApplicationService) SubmitDetails(ctx context.Context, sessionID string, info order.CustomerInfo) (*domain.Session, error) {
	return s.mutate(ctx, sessionID, func(session *domain.Session) error {
		return session.SubmitDetails(info)
	})
}

// SelectPayment 选择支付方式
func (s *CheckoutApplicationService) SelectPayment(ctx context.Context, sessionID string, method order.PaymentMethod) (*domain.Session, error) {
	return s.mutate(ctx, sessionID, func(session *domain.Session) error {
		return session.SelectPayment(method)
	})
}

// Back 回退一步
func (s *CheckoutApplicationService) Back(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.mutate(ctx, sessionID, func(session *domain.Session) error {
		return session.Back()
	})
}

// PlaceOrder 确认下单
// 会话 ID 作为幂等键传给订单服务；下单失败时购物车保持原样，会话回到确认步骤
func (s *CheckoutApplicationService) PlaceOrder(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.BeginPlacing(); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	c, err := s.carts.GetCart(ctx, session.UserID)
	if err != nil {
		return s.failPlacing(ctx, session, err.Error())
	}
	if c.IsEmpty() {
		return s.failPlacing(ctx, session, ErrEmptyCart.Error())
	}

	items := make([]orderapp.OrderItemInput, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, orderapp.OrderItemInput{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Color:     it.Color,
			Size:      it.Size,
			ImageURL:  it.ImageURL,
		})
	}

	orderID, err := s.orders.CreateOrder(ctx, orderapp.CreateOrderCommand{
		UserID:        session.UserID,
		ClientOrderID: session.ID,
		Items:         items,
		Customer:      session.Customer,
		PaymentMethod: string(session.PaymentMethod),
	})
	if err != nil {
		logger.Error(ctx, "Order placement failed", "session_id", session.ID, "error", err)
		if s.metrics != nil {
			s.metrics.CheckoutsFailed.Inc()
		}
		return s.failPlacing(ctx, session, err.Error())
	}

	if err := s.carts.ClearCart(ctx, session.UserID); err != nil {
		// 订单已创建，购物车清理失败不影响结果
		logger.Warn(ctx, "Failed to clear cart after order placement", "session_id", session.ID, "error", err)
	}

	if err := session.CompletePlacing(orderID); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CheckoutsCompleted.Inc()
	}
	logger.Info(ctx, "Checkout completed", "session_id", session.ID, "order_id", orderID)
	return session, nil
}

func (s *CheckoutApplicationService) failPlacing(ctx context.Context, session *domain.Session, reason string) (*domain.Session, error) {
	if err := session.FailPlacing(reason); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CheckoutApplicationService) mutate(ctx context.Context, sessionID string, fn func(*domain.Session) error) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
