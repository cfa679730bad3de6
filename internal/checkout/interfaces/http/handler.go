// Package http 结账 HTTP 处理器
package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/ecommerce/internal/checkout/application"
	"github.com/wyfcoding/ecommerce/internal/checkout/domain"
	order "github.com/wyfcoding/ecommerce/internal/order/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/response"
)

// CheckoutHandler 结账 HTTP 处理器
type CheckoutHandler struct {
	app *application.CheckoutApplicationService
}

// NewCheckoutHandler 创建结账 HTTP 处理器
func NewCheckoutHandler(app *application.CheckoutApplicationService) *CheckoutHandler {
	return &CheckoutHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *CheckoutHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/checkout")
	{
		api.POST("/sessions", h.StartCheckout)
		api.GET("/sessions/:session_id", h.GetSession)
		api.PUT("/sessions/:session_id/details", h.SubmitDetails)
		api.PUT("/sessions/:session_id/payment", h.SelectPayment)
		api.POST("/sessions/:session_id/back", h.Back)
		api.POST("/sessions/:session_id/place", h.PlaceOrder)
	}
}

// StartCheckoutRequest 开启结账请求
type StartCheckoutRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// SubmitDetailsRequest 收货信息请求
type SubmitDetailsRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
}

// SelectPaymentRequest 支付方式请求
type SelectPaymentRequest struct {
	Method string `json:"method" binding:"required"`
}

// StartCheckout 开启结账会话
func (h *CheckoutHandler) StartCheckout(c *gin.Context) {
	var req StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.app.StartCheckout(c.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, application.ErrEmptyCart) {
			response.BadRequest(c, err.Error())
			return
		}
		logger.Error(c.Request.Context(), "Failed to start checkout", "user_id", req.UserID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Created(c, session)
}

// GetSession 查询结账会话
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	session, err := h.app.GetSession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, session)
}

// SubmitDetails 提交收货信息
func (h *CheckoutHandler) SubmitDetails(c *gin.Context) {
	var req SubmitDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.app.SubmitDetails(c.Request.Context(), c.Param("session_id"), order.CustomerInfo{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Pincode:   req.Pincode,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, session)
}

// SelectPayment 选择支付方式
func (h *CheckoutHandler) SelectPayment(c *gin.Context) {
	var req SelectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.app.SelectPayment(c.Request.Context(), c.Param("session_id"), order.PaymentMethod(req.Method))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, session)
}

// Back 回退一步
func (h *CheckoutHandler) Back(c *gin.Context) {
	session, err := h.app.Back(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, session)
}

// PlaceOrder 确认下单
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	session, err := h.app.PlaceOrder(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, session)
}

// writeError 把领域错误映射为 HTTP 响应
// 收货信息校验错误和步骤错误都属于客户端错误
func (h *CheckoutHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		response.NotFound(c, "checkout session not found")
	case errors.Is(err, domain.ErrInvalidStep),
		errors.Is(err, domain.ErrSessionCompleted),
		errors.Is(err, domain.ErrPaymentUnavailable),
		errors.Is(err, domain.ErrUnknownPayment),
		errors.Is(err, domain.ErrFirstNameRequired),
		errors.Is(err, domain.ErrLastNameRequired),
		errors.Is(err, domain.ErrEmailInvalid),
		errors.Is(err, domain.ErrPhoneInvalid),
		errors.Is(err, domain.ErrAddressRequired),
		errors.Is(err, domain.ErrCityRequired),
		errors.Is(err, domain.ErrStateRequired),
		errors.Is(err, domain.ErrPincodeInvalid):
		response.BadRequest(c, err.Error())
	default:
		logger.Error(c.Request.Context(), "Checkout operation failed", "error", err)
		response.Error(c, err.Error())
	}
}
