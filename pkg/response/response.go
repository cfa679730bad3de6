// Package response 提供统一的 HTTP 响应封装
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	// 业务状态码，0 表示成功
	Code int `json:"code"`
	// 提示信息
	Message string `json:"message"`
	// 响应数据
	Data interface{} `json:"data,omitempty"`
}

// Success 返回成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "ok",
		Data:    data,
	})
}

// Created 返回资源创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "ok",
		Data:    data,
	})
}

// Error 返回 500 错误响应
func Error(c *gin.Context, message string) {
	ErrorWithStatus(c, http.StatusInternalServerError, message, nil)
}

// BadRequest 返回 400 错误响应
func BadRequest(c *gin.Context, message string) {
	ErrorWithStatus(c, http.StatusBadRequest, message, nil)
}

// NotFound 返回 404 错误响应
func NotFound(c *gin.Context, message string) {
	ErrorWithStatus(c, http.StatusNotFound, message, nil)
}

// Conflict 返回 409 错误响应
func Conflict(c *gin.Context, message string) {
	ErrorWithStatus(c, http.StatusConflict, message, nil)
}

// ErrorWithStatus 返回指定状态码的错误响应
func ErrorWithStatus(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Code:    status,
		Message: message,
		Data:    data,
	})
}
