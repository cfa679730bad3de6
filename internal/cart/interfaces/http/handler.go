// Package http 购物车 HTTP 处理器
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/ecommerce/internal/cart/application"
	"github.com/wyfcoding/ecommerce/internal/cart/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/response"
)

// CartHandler 购物车 HTTP 处理器
type CartHandler struct {
	app *application.CartApplicationService
}

// NewCartHandler 创建购物车 HTTP 处理器
func NewCartHandler(app *application.CartApplicationService) *CartHandler {
	return &CartHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *CartHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/carts")
	{
		api.GET("/:user_id", h.GetCart)
		api.POST("/:user_id/items", h.AddItem)
		api.PUT("/:user_id/items/:product_id", h.UpdateQuantity)
		api.DELETE("/:user_id/items/:product_id", h.RemoveItem)
		api.DELETE("/:user_id", h.ClearCart)
	}
}

// AddItemRequest 加购请求
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	UnitPrice string `json:"unit_price" binding:"required"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	ImageURL  string `json:"image_url"`
}

// UpdateQuantityRequest 改数量请求
type UpdateQuantityRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	Color    string `json:"color"`
	Size     string `json:"size"`
}

// GetCart 获取购物车与价格明细
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.Param("user_id")

	cart, breakdown, err := h.app.Quote(c.Request.Context(), userID)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to get cart", "user_id", userID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, gin.H{"cart": cart, "pricing": breakdown})
}

// AddItem 加购
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := c.Param("user_id")

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	unitPrice, err := decimal.NewFromString(req.UnitPrice)
	if err != nil || unitPrice.IsNegative() {
		response.BadRequest(c, "unit_price must be a non-negative decimal")
		return
	}

	cart, err := h.app.AddItem(c.Request.Context(), userID, domain.CartItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: unitPrice,
		Quantity:  req.Quantity,
		Color:     req.Color,
		Size:      req.Size,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to add cart item", "user_id", userID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, cart)
}

// UpdateQuantity 修改行数量
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID := c.Param("user_id")
	productID := c.Param("product_id")

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cart, err := h.app.UpdateQuantity(c.Request.Context(), userID, productID, req.Color, req.Size, req.Quantity)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to update cart item", "user_id", userID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, cart)
}

// RemoveItem 删除行
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := c.Param("user_id")
	productID := c.Param("product_id")

	cart, err := h.app.RemoveItem(c.Request.Context(), userID, productID, c.Query("color"), c.Query("size"))
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to remove cart item", "user_id", userID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, cart)
}

// ClearCart 清空购物车
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := c.Param("user_id")

	if err := h.app.ClearCart(c.Request.Context(), userID); err != nil {
		logger.Error(c.Request.Context(), "Failed to clear cart", "user_id", userID, "error", err)
		response.Error(c, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
