package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wyfcoding/ecommerce/internal/order/domain"
	pricing "github.com/wyfcoding/ecommerce/internal/pricing/domain"
	"github.com/wyfcoding/ecommerce/pkg/db"
	"github.com/wyfcoding/ecommerce/pkg/idgen"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/metrics"
)

// CreateOrderCommand 下单命令
type CreateOrderCommand struct {
	UserID        string
	ClientOrderID string
	Items         []OrderItemInput
	Customer      domain.CustomerInfo
	PaymentMethod string
}

// OrderItemInput 下单的行项目
type OrderItemInput struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Color     string
	Size      string
	ImageURL  string
}

// UpdateOrderStatusCommand 状态变更命令
type UpdateOrderStatusCommand struct {
	OrderID string
	Status  string
	// 调用方读到的版本号；不匹配说明订单已被并发修改
	Version int64
}

// OrderCommandService 处理订单相关的命令操作
type OrderCommandService struct {
	repo      domain.OrderRepository
	readRepo  domain.OrderReadRepository
	publisher domain.EventPublisher
	database  *db.DB
	ids       *idgen.Snowflake
	metrics   *metrics.Metrics
}

// NewOrderCommandService 创建 OrderCommandService 实例
func NewOrderCommandService(repo domain.OrderRepository, readRepo domain.OrderReadRepository, publisher domain.EventPublisher, database *db.DB, ids *idgen.Snowflake, m *metrics.Metrics) *OrderCommandService {
	return &OrderCommandService{
		repo:      repo,
		readRepo:  readRepo,
		publisher: publisher,
		database:  database,
		ids:       ids,
		metrics:   m,
	}
}

// CreateOrder 下单
// 价格在服务端用计价引擎重算，客户端提交的金额不被信任
// client_order_id 重复提交时返回已存在的订单，保证幂等
func (s *OrderCommandService) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (string, error) {
	if cmd.ClientOrderID != "" {
		existing, err := s.repo.GetByClientOrderID(ctx, cmd.ClientOrderID)
		if err == nil && existing != nil {
			logger.Info(ctx, "Duplicate order creation, returning existing order",
				"client_order_id", cmd.ClientOrderID,
				"order_id", existing.OrderID,
			)
			return existing.OrderID, nil
		}
		if err != nil && !errors.Is(err, domain.ErrOrderNotFound) {
			return "", err
		}
	}

	items := make([]domain.OrderItem, 0, len(cmd.Items))
	lines := make([]pricing.Line, 0, len(cmd.Items))
	for _, in := range cmd.Items {
		items = append(items, domain.OrderItem{
			ProductID: in.ProductID,
			Name:      in.Name,
			UnitPrice: in.UnitPrice,
			Quantity:  in.Quantity,
			Color:     in.Color,
			Size:      in.Size,
			ImageURL:  in.ImageURL,
		})
		lines = append(lines, pricing.Line{UnitPrice: in.UnitPrice, Quantity: in.Quantity})
	}
	breakdown := pricing.Calculate(lines)

	order := domain.NewOrder(
		s.ids.GenerateString("ORD"),
		cmd.UserID,
		cmd.ClientOrderID,
		items,
		cmd.Customer,
		domain.PaymentMethod(cmd.PaymentMethod),
		breakdown.Subtotal,
		breakdown.Tax,
		breakdown.Shipping,
		breakdown.Total,
	)

	if err := order.Validate(); err != nil {
		return "", err
	}

	err := s.database.WithTx(ctx, func(tx *gorm.DB) error {
		txCtx := db.ContextWithTx(ctx, tx)

		if err := s.repo.Save(txCtx, order); err != nil {
			return err
		}
		return s.publisher.PublishOrderPlaced(txCtx, domain.NewOrderPlacedEvent(order))
	})
	if err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}

	if s.metrics != nil {
		s.metrics.OrdersTotal.Inc()
		s.metrics.OrdersActive.Inc()
	}
	logger.Info(ctx, "Order created", "order_id", order.OrderID, "user_id", order.UserID, "total", order.Total)
	return order.OrderID, nil
}

// UpdateStatus 变更订单状态
// 迁移表之外的跳转被拒绝；版本号过期返回 ErrVersionConflict，由调用方重读后重试
func (s *OrderCommandService) UpdateStatus(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	order, err := s.repo.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}

	from := order.Status
	if err := order.TransitionTo(domain.OrderStatus(cmd.Status)); err != nil {
		return err
	}

	expectedVersion := order.Version
	if cmd.Version != 0 && cmd.Version != expectedVersion {
		return domain.ErrVersionConflict
	}

	err = s.database.WithTx(ctx, func(tx *gorm.DB) error {
		txCtx := db.ContextWithTx(ctx, tx)

		if err := s.repo.UpdateStatus(txCtx, cmd.OrderID, order.Status, expectedVersion); err != nil {
			return err
		}
		return s.publisher.PublishOrderStatusChanged(txCtx, domain.OrderStatusChangedEvent{
			OrderID:   order.OrderID,
			UserID:    order.UserID,
			From:      from,
			To:        order.Status,
			Timestamp: time.Now(),
		})
	})
	if err != nil {
		return err
	}

	if s.readRepo != nil {
		if err := s.readRepo.Invalidate(ctx, cmd.OrderID); err != nil {
			logger.Warn(ctx, "Failed to invalidate order read cache", "order_id", cmd.OrderID, "error", err)
		}
	}

	if s.metrics != nil && order.Status.IsTerminal() {
		s.metrics.OrdersActive.Dec()
	}
	logger.Info(ctx, "Order status updated", "order_id", cmd.OrderID, "from", from, "to", order.Status)
	return nil
}

// CancelOrder 取消订单（客户侧入口，仅允许非终态取消）
func (s *OrderCommandService) CancelOrder(ctx context.Context, orderID string) error {
	return s.UpdateStatus(ctx, UpdateOrderStatusCommand{
		OrderID: orderID,
		Status:  string(domain.OrderStatusCancelled),
	})
}
