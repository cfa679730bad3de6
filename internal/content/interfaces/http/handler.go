// Package http 内容管理 HTTP 处理器
package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/ecommerce/internal/content/application"
	"github.com/wyfcoding/ecommerce/internal/content/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/response"
)

// ContentHandler 内容管理 HTTP 处理器
type ContentHandler struct {
	app *application.ContentService
}

// NewContentHandler 创建内容管理 HTTP 处理器
func NewContentHandler(app *application.ContentService) *ContentHandler {
	return &ContentHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *ContentHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/content")
	{
		api.GET("/types", h.ListTypes)
		api.GET("/:type", h.ListBlocks)
		api.POST("/:type", h.AddBlock)
		api.PUT("/:type/reorder", h.ReorderBlocks)
		api.PUT("/:type/:id", h.UpdateBlock)
		api.DELETE("/:type/:id", h.DeleteBlock)
		api.POST("/:type/:id/toggle", h.ToggleActive)
	}
}

// BlockRequest 区块写入请求
type BlockRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
}

// ReorderRequest 重排请求
type ReorderRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// ListTypes 返回全部区块类型
func (h *ContentHandler) ListTypes(c *gin.Context) {
	response.Success(c, domain.BlockTypes)
}

// ListBlocks 按类型返回区块
func (h *ContentHandler) ListBlocks(c *gin.Context) {
	blockType := domain.BlockType(c.Param("type"))
	activeOnly := c.Query("active_only") == "true"

	blocks, err := h.app.ListBlocks(c.Request.Context(), blockType, activeOnly)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, blocks)
}

// AddBlock 新增区块
func (h *ContentHandler) AddBlock(c *gin.Context) {
	blockType := domain.BlockType(c.Param("type"))

	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	block, err := h.app.AddBlock(c.Request.Context(), blockType, application.BlockInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Created(c, block)
}

// UpdateBlock 更新区块
func (h *ContentHandler) UpdateBlock(c *gin.Context) {
	blockType := domain.BlockType(c.Param("type"))

	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	block, err := h.app.UpdateBlock(c.Request.Context(), blockType, c.Param("id"), application.BlockInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, block)
}

// DeleteBlock 删除区块
func (h *ContentHandler) DeleteBlock(c *gin.Context) {
	blockType := domain.BlockType(c.Param("type"))

	if err := h.app.DeleteBlock(c.Request.Context(), blockType, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id")})
}

// ReorderBlocks 重排区块
func (h *ContentHandler) ReorderBlocks(c *gin.Context) {
	blockType := domain.BlockType(c.Param("type"))

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	blocks, err := h.app.ReorderBlocks(c.Request.Context(), blockType, req.IDs)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, blocks)
}

// ToggleActive 切换区块启用状态
func (h *ContentHandler) ToggleActive(c *gin.Context) {
	blockType := domain.BlockType(c.Param("type"))

	block, err := h.app.ToggleActive(c.Request.Context(), blockType, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, block)
}

func (h *ContentHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownBlockType), errors.Is(err, application.ErrReorderMismatch):
		response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrBlockNotFound):
		response.NotFound(c, "content block not found")
	default:
		logger.Error(c.Request.Context(), "Content operation failed", "error", err)
		response.Error(c, err.Error())
	}
}
