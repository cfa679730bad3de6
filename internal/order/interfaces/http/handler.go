// Package http 订单 HTTP 处理器
package http

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/ecommerce/internal/order/application"
	"github.com/wyfcoding/ecommerce/internal/order/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/response"
)

// OrderHandler 订单 HTTP 处理器
type OrderHandler struct {
	commands *application.OrderCommandService
	queries  *application.OrderQueryService
}

// NewOrderHandler 创建订单 HTTP 处理器
func NewOrderHandler(commands *application.OrderCommandService, queries *application.OrderQueryService) *OrderHandler {
	return &OrderHandler{commands: commands, queries: queries}
}

// RegisterRoutes 注册路由
func (h *OrderHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/orders")
	{
		api.POST("", h.CreateOrder)
		api.GET("", h.ListOrders)
		api.GET("/:order_id", h.GetOrder)
		api.PUT("/:order_id/status", h.UpdateStatus)
		api.POST("/:order_id/cancel", h.CancelOrder)
	}
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	UserID        string              `json:"user_id" binding:"required"`
	ClientOrderID string              `json:"client_order_id"`
	Items         []CreateOrderItem   `json:"items" binding:"required,min=1"`
	Customer      CreateOrderCustomer `json:"customer" binding:"required"`
	PaymentMethod string              `json:"payment_method" binding:"required"`
}

// CreateOrderItem 下单行项目
type CreateOrderItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	UnitPrice string `json:"unit_price" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	ImageURL  string `json:"image_url"`
}

// CreateOrderCustomer 收货人信息
type CreateOrderCustomer struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Pincode   string `json:"pincode" binding:"required"`
}

// UpdateStatusRequest 状态变更请求
type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Version int64  `json:"version"`
}

// CreateOrder 下单
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items := make([]application.OrderItemInput, 0, len(req.Items))
	for _, in := range req.Items {
		unitPrice, err := decimal.NewFromString(in.UnitPrice)
		if err != nil || unitPrice.IsNegative() {
			response.BadRequest(c, "unit_price must be a non-negative decimal")
			return
		}
		items = append(items, application.OrderItemInput{
			ProductID: in.ProductID,
			Name:      in.Name,
			UnitPrice: unitPrice,
			Quantity:  in.Quantity,
			Color:     in.Color,
			Size:      in.Size,
			ImageURL:  in.ImageURL,
		})
	}

	orderID, err := h.commands.CreateOrder(c.Request.Context(), application.CreateOrderCommand{
		UserID:        req.UserID,
		ClientOrderID: req.ClientOrderID,
		Items:         items,
		Customer: domain.CustomerInfo{
			FirstName: req.Customer.FirstName,
			LastName:  req.Customer.LastName,
			Email:     req.Customer.Email,
			Phone:     req.Customer.Phone,
			Address:   req.Customer.Address,
			City:      req.Customer.City,
			State:     req.Customer.State,
			Pincode:   req.Customer.Pincode,
		},
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to create order", "user_id", req.UserID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Created(c, gin.H{"order_id": orderID})
}

// GetOrder 查询单个订单
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	order, err := h.queries.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		logger.Error(c.Request.Context(), "Failed to get order", "order_id", orderID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, order)
}

// ListOrders 查询用户订单列表
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		response.BadRequest(c, "user_id is required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	status := domain.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		response.BadRequest(c, "unknown order status")
		return
	}

	orders, total, err := h.queries.ListOrders(c.Request.Context(), userID, status, limit, offset)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list orders", "user_id", userID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, gin.H{"orders": orders, "total": total})
}

// UpdateStatus 变更订单状态
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID := c.Param("order_id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.commands.UpdateStatus(c.Request.Context(), application.UpdateOrderStatusCommand{
		OrderID: orderID,
		Status:  req.Status,
		Version: req.Version,
	})
	if err != nil {
		h.writeCommandError(c, orderID, err)
		return
	}

	response.Success(c, gin.H{"order_id": orderID, "status": req.Status})
}

// CancelOrder 取消订单
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	if err := h.commands.CancelOrder(c.Request.Context(), orderID); err != nil {
		h.writeCommandError(c, orderID, err)
		return
	}

	response.Success(c, gin.H{"order_id": orderID, "status": domain.OrderStatusCancelled})
}

func (h *OrderHandler) writeCommandError(c *gin.Context, orderID string, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		response.NotFound(c, "order not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrVersionConflict):
		response.Conflict(c, "order was modified concurrently, refetch and retry")
	default:
		logger.Error(c.Request.Context(), "Order command failed", "order_id", orderID, "error", err)
		response.Error(c, err.Error())
	}
}
