// Package domain 包含订单服务的领域模型
package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// PaymentMethod 支付方式
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

var (
	// ErrInvalidTransition 非法状态迁移
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrVersionConflict 并发更新冲突（版本号已过期）
	ErrVersionConflict = errors.New("order was modified concurrently")
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New("order not found")
	// ErrEmptyOrder 订单不含任何行项目
	ErrEmptyOrder = errors.New("order must contain at least one item")
)

// transitions 状态迁移表
// 取消可从任何非终态进入；DELIVERED 与 CANCELLED 为终态
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// Valid 是否为已知状态
func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal 是否为终态
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo 判断能否迁移到目标状态
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Valid 是否为已知支付方式
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}

// Order 订单实体
// 下单时对购物车、客户信息与价格做一次性快照，创建后仅状态可变
type Order struct {
	gorm.Model
	// 订单 ID
	OrderID string `gorm:"column:order_id;type:varchar(32);uniqueIndex;not null" json:"order_id"`
	// 用户 ID
	UserID string `gorm:"column:user_id;type:varchar(36);index;not null" json:"user_id"`
	// 客户端订单 ID（用于幂等性）
	ClientOrderID string `gorm:"column:client_order_id;type:varchar(64);uniqueIndex" json:"client_order_id,omitempty"`
	// 行项目快照
	Items []OrderItem `gorm:"foreignKey:OrderRef" json:"items"`
	// 客户联系与地址快照
	Customer CustomerInfo `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	// 支付方式
	PaymentMethod PaymentMethod `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`
	// 价格快照
	Subtotal decimal.Decimal `gorm:"column:subtotal;type:decimal(20,8);not null" json:"subtotal"`
	Tax      decimal.Decimal `gorm:"column:tax;type:decimal(20,8);not null" json:"tax"`
	Shipping decimal.Decimal `gorm:"column:shipping;type:decimal(20,8);not null" json:"shipping"`
	Total    decimal.Decimal `gorm:"column:total;type:decimal(20,8);not null" json:"total"`
	// 订单状态
	Status OrderStatus `gorm:"column:status;type:varchar(20);index;not null" json:"status"`
	// 乐观锁版本号
	Version int64 `gorm:"column:version;not null;default:0" json:"version"`
}

func (Order) TableName() string { return "orders" }

// OrderItem 订单行项目快照
type OrderItem struct {
	gorm.Model
	OrderRef  uint            `gorm:"column:order_ref;index;not null" json:"-"`
	ProductID string          `gorm:"column:product_id;type:varchar(36);not null" json:"product_id"`
	Name      string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(20,8);not null" json:"unit_price"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	Color     string          `gorm:"column:color;type:varchar(50)" json:"color,omitempty"`
	Size      string          `gorm:"column:size;type:varchar(50)" json:"size,omitempty"`
	ImageURL  string          `gorm:"column:image_url;type:varchar(512)" json:"image_url,omitempty"`
}

func (OrderItem) TableName() string { return "order_items" }

// CustomerInfo 客户联系与地址快照
type CustomerInfo struct {
	FirstName string `gorm:"column:first_name;type:varchar(100)" json:"first_name"`
	LastName  string `gorm:"column:last_name;type:varchar(100)" json:"last_name"`
	Email     string `gorm:"column:email;type:varchar(255)" json:"email"`
	Phone     string `gorm:"column:phone;type:varchar(20)" json:"phone"`
	Address   string `gorm:"column:address;type:varchar(512)" json:"address"`
	City      string `gorm:"column:city;type:varchar(100)" json:"city"`
	State     string `gorm:"column:state;type:varchar(100)" json:"state"`
	Pincode   string `gorm:"column:pincode;type:varchar(10)" json:"pincode"`
}

// NewOrder 创建订单，初始状态 PENDING
func NewOrder(orderID, userID, clientOrderID string, items []OrderItem, customer CustomerInfo, method PaymentMethod, subtotal, tax, shipping, total decimal.Decimal) *Order {
	return &Order{
		OrderID:       orderID,
		UserID:        userID,
		ClientOrderID: clientOrderID,
		Items:         items,
		Customer:      customer,
		PaymentMethod: method,
		Subtotal:      subtotal,
		Tax:           tax,
		Shipping:      shipping,
		Total:         total,
		Status:        OrderStatusPending,
	}
}

// Validate 校验订单快照的完整性
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	if !o.PaymentMethod.Valid() {
		return fmt.Errorf("unknown payment method: %s", o.PaymentMethod)
	}
	if !o.Total.Equal(o.Subtotal.Add(o.Tax).Add(o.Shipping)) {
		return fmt.Errorf("total %s does not equal subtotal+tax+shipping", o.Total)
	}
	return nil
}

// TransitionTo 将订单迁移到目标状态
// 迁移表之外的跳转一律拒绝，终态订单不再接受任何变更
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, target)
	}
	if !o.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, target)
	}
	o.Status = target
	return nil
}

// CanBeCancelled 是否可以取消
func (o *Order) CanBeCancelled() bool {
	return o.Status.CanTransitionTo(OrderStatusCancelled)
}
