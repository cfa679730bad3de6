package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/ecommerce/internal/order/domain"
)

// OrderDTO 订单视图
type OrderDTO struct {
	OrderID       string              `json:"order_id"`
	UserID        string              `json:"user_id"`
	Items         []OrderItemDTO      `json:"items"`
	Customer      domain.CustomerInfo `json:"customer"`
	PaymentMethod string              `json:"payment_method"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Tax           decimal.Decimal     `json:"tax"`
	Shipping      decimal.Decimal     `json:"shipping"`
	Total         decimal.Decimal     `json:"total"`
	Status        string              `json:"status"`
	Version       int64               `json:"version"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// OrderItemDTO 订单行项目视图
type OrderItemDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Color     string          `json:"color,omitempty"`
	Size      string          `json:"size,omitempty"`
	ImageURL  string          `json:"image_url,omitempty"`
}

func toOrderDTO(o *domain.Order) *OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Color:     item.Color,
			Size:      item.Size,
			ImageURL:  item.ImageURL,
		})
	}
	return &OrderDTO{
		OrderID:       o.OrderID,
		UserID:        o.UserID,
		Items:         items,
		Customer:      o.Customer,
		PaymentMethod: string(o.PaymentMethod),
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Shipping:      o.Shipping,
		Total:         o.Total,
		Status:        string(o.Status),
		Version:       o.Version,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toOrderDTOs(orders []*domain.Order) []*OrderDTO {
	dtos := make([]*OrderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, toOrderDTO(o))
	}
	return dtos
}
