// Package http 商品目录 HTTP 处理器
package http

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/ecommerce/internal/catalog/application"
	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/response"
)

// CatalogHandler 商品目录 HTTP 处理器
type CatalogHandler struct {
	app *application.CatalogService
}

// NewCatalogHandler 创建商品目录 HTTP 处理器
func NewCatalogHandler(app *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *CatalogHandler) RegisterRoutes(router *gin.Engine) {
	products := router.Group("/api/v1/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:product_id", h.GetProduct)
		products.POST("", h.CreateProduct)
		products.PUT("/:product_id", h.UpdateProduct)
		products.DELETE("/:product_id", h.DeleteProduct)
	}

	categories := router.Group("/api/v1/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

// ProductRequest 商品写入请求
type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       string   `json:"price" binding:"required"`
	CategoryID  uint     `json:"category_id"`
	Stock       int      `json:"stock" binding:"min=0"`
	ImageURL    string   `json:"image_url"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	Featured    bool     `json:"featured"`
	Active      *bool    `json:"active"`
}

// CategoryRequest 分类写入请求
type CategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	ImageURL string `json:"image_url"`
	Position int    `json:"position"`
}

// ListProducts 商品列表
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 32)

	filter := domain.ProductFilter{
		CategoryID: uint(categoryID),
		Keyword:    c.Query("q"),
		ActiveOnly: c.Query("include_inactive") != "true",
		Limit:      limit,
		Offset:     offset,
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true"
		filter.Featured = &featured
	}

	products, total, err := h.app.ListProducts(c.Request.Context(), filter)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list products", "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, gin.H{"products": products, "total": total})
}

// GetProduct 商品详情
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID := c.Param("product_id")

	product, err := h.app.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		logger.Error(c.Request.Context(), "Failed to get product", "product_id", productID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, product)
}

// CreateProduct 新增商品
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		response.BadRequest(c, "price must be a non-negative decimal")
		return
	}

	product, err := h.app.CreateProduct(c.Request.Context(), application.CreateProductCommand{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Colors:      req.Colors,
		Sizes:       req.Sizes,
		Featured:    req.Featured,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			response.BadRequest(c, "category does not exist")
			return
		}
		logger.Error(c.Request.Context(), "Failed to create product", "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Created(c, product)
}

// UpdateProduct 更新商品
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	productID := c.Param("product_id")

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		response.BadRequest(c, "price must be a non-negative decimal")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	product := &domain.Product{
		ProductID:   productID,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Colors:      req.Colors,
		Sizes:       req.Sizes,
		Featured:    req.Featured,
		Active:      active,
	}

	if err := h.app.UpdateProduct(c.Request.Context(), product); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		logger.Error(c.Request.Context(), "Failed to update product", "product_id", productID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	productID := c.Param("product_id")

	if err := h.app.DeleteProduct(c.Request.Context(), productID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		logger.Error(c.Request.Context(), "Failed to delete product", "product_id", productID, "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, gin.H{"product_id": productID})
}

// ListCategories 分类列表
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.app.ListCategories(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list categories", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, categories)
}

// CreateCategory 新增分类
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category := &domain.Category{
		Name:     req.Name,
		Slug:     req.Slug,
		ImageURL: req.ImageURL,
		Position: req.Position,
	}

	if err := h.app.CreateCategory(c.Request.Context(), category); err != nil {
		logger.Error(c.Request.Context(), "Failed to create category", "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Created(c, category)
}

// DeleteCategory 删除分类
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	if err := h.app.DeleteCategory(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			response.NotFound(c, "category not found")
			return
		}
		logger.Error(c.Request.Context(), "Failed to delete category", "error", err)
		response.Error(c, err.Error())
		return
	}

	response.Success(c, gin.H{"id": id})
}
