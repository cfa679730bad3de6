// Package http 客户档案 HTTP 处理器
package http

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/ecommerce/internal/customer/application"
	"github.com/wyfcoding/ecommerce/internal/customer/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/response"
)

// CustomerHandler 客户档案 HTTP 处理器
type CustomerHandler struct {
	app *application.CustomerService
}

// NewCustomerHandler 创建客户档案 HTTP 处理器
func NewCustomerHandler(app *application.CustomerService) *CustomerHandler {
	return &CustomerHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *CustomerHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/customers")
	{
		api.POST("", h.Register)
		api.GET("", h.ListCustomers)
		api.GET("/:customer_id", h.GetCustomer)
		api.PUT("/:customer_id", h.UpdateProfile)
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Role    string `json:"role"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// UpdateProfileRequest 更新档案请求
type UpdateProfileRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Register 注册客户
func (h *CustomerHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	customer, err := h.app.Register(c.Request.Context(), application.RegisterCustomerCommand{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Role:    req.Role,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Pincode: req.Pincode,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			response.Conflict(c, err.Error())
		case errors.Is(err, domain.ErrUnknownRole):
			response.BadRequest(c, err.Error())
		default:
			logger.Error(c.Request.Context(), "Failed to register customer", "error", err)
			response.Error(c, err.Error())
		}
		return
	}

	response.Created(c, customer)
}

// GetCustomer 查询客户档案
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customerID := c.Param("customer_id")

	customer, err := h.app.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			response.NotFound(c, "customer not found")
			return
		}
		logger.Error(c.Request.Context(), "Failed to get customer", "customer_id", customerID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, customer)
}

// ListCustomers 按角色查询客户列表
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	customers, total, err := h.app.ListCustomers(c.Request.Context(), c.Query("role"), limit, offset)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownRole) {
			response.BadRequest(c, err.Error())
			return
		}
		logger.Error(c.Request.Context(), "Failed to list customers", "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, gin.H{"customers": customers, "total": total})
}

// UpdateProfile 更新客户档案
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	customerID := c.Param("customer_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	customer, err := h.app.UpdateProfile(c.Request.Context(), application.UpdateProfileCommand{
		CustomerID: customerID,
		Name:       req.Name,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		Pincode:    req.Pincode,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			response.NotFound(c, "customer not found")
			return
		}
		logger.Error(c.Request.Context(), "Failed to update customer", "customer_id", customerID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, customer)
}
