package devproxy

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码定义
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeUpstreamUnavailable = "ERR_UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamTimeout     = "ERR_UPSTREAM_TIMEOUT"
)

// APIError 代理自身产生的错误响应结构，上游响应原样透传
type APIError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Upstream string `json:"upstream,omitempty"`
}

// ErrorResponse 返回统一格式的错误响应
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// writeError 在 ReverseProxy 的 ErrorHandler 中使用，那里没有 gin.Context
func writeError(w http.ResponseWriter, status int, body APIError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// NotFound 404 路由不存在
func NotFound(c *gin.Context) {
	ErrorResponse(c, http.StatusNotFound, ErrCodeNotFound, "no route for "+c.Request.URL.Path)
}
