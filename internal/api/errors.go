package api

import (
	"errors"
	"fmt"
	"strings"

	"collectibles/internal/transport"
	"collectibles/internal/validate"
)

// ErrNotLoggedIn 表示需要登录的接口没有可用 token，请求不会发出。
var ErrNotLoggedIn = errors.New("please log in first")

// ValidationError 本地参数校验失败，Message 可直接展示给用户。
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AppError 表示 2xx 响应中的 code 不是成功值，Msg 直接来自服务端。
type AppError struct {
	Endpoint string
	// Code 为 -1 表示响应没有 code 字段
	Code int
	Msg  string
}

func (e *AppError) Error() string {
	if strings.TrimSpace(e.Msg) == "" {
		return fmt.Sprintf("%s failed (code %d)", e.Endpoint, e.Code)
	}
	return e.Msg
}

// invalid 把校验结果转换为错误，校验通过返回 nil。
func invalid(field string, r validate.Result) error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Field: field, Message: r.Message}
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// firstError 返回第一个非 nil 的错误
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// UserMessage 把任意错误转换为面向用户的提示。
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		validationErr *ValidationError
		appErr        *AppError
		transportErr  *transport.TransportError
		httpErr       *transport.HTTPError
		parseErr      *transport.ParseError
	)
	switch {
	case errors.Is(err, ErrNotLoggedIn):
		return ErrNotLoggedIn.Error()
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &appErr):
		return appErr.Error()
	case errors.As(err, &transportErr):
		if transportErr.PossibleCORS {
			return "network unavailable, check your connection or proxy settings"
		}
		return "network unavailable"
	case errors.As(err, &httpErr):
		if msg := strings.TrimSpace(httpErr.Message); msg != "" && !strings.HasPrefix(msg, "{") {
			return msg
		}
		return httpErr.Error()
	case errors.As(err, &parseErr):
		return "the server returned an unexpected response"
	default:
		return err.Error()
	}
}
