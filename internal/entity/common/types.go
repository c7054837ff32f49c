package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Response 是平台接口统一的响应信封。
// Code 为 nil 表示响应里没有 code 字段，部分旧接口如此。
type Response[T any] struct {
	Code *int   `json:"code,omitempty"`
	Msg  string `json:"msg,omitempty"`
	Data T      `json:"data"`
	Time Unix   `json:"time,omitempty"`
}

// CodeValue 返回 code，缺失时返回 -1。
func (r *Response[T]) CodeValue() int {
	if r == nil || r.Code == nil {
		return -1
	}
	return *r.Code
}

// Meta 包含分页元数据。
type Meta struct {
	Page     int64 `json:"current_page"`
	PageSize int64 `json:"per_page"`
	Total    int64 `json:"total"`
	LastPage int64 `json:"last_page"`
}

// Page 是分页列表的 data 结构。
type Page[T any] struct {
	Meta
	Items []T `json:"data"`
}

// BaseParams 包含通用的分页参数。
type BaseParams struct {
	Page  int64 `json:"page,omitempty" query:"page"`
	Limit int64 `json:"limit,omitempty" query:"limit"`
}

// Query 将分页参数转换为查询串字段，零值不输出。
func (p BaseParams) Query() map[string]string {
	out := map[string]string{}
	if p.Page > 0 {
		out["page"] = strconv.FormatInt(p.Page, 10)
	}
	if p.Limit > 0 {
		out["limit"] = strconv.FormatInt(p.Limit, 10)
	}
	return out
}

// ID 兼容服务端以数字或字符串返回的主键。
type ID int64

// UnmarshalJSON 接受 12、"12"、null 和空字符串。
func (id *ID) UnmarshalJSON(data []byte) error {
	v, err := parseLenientInt(data)
	if err != nil {
		return fmt.Errorf("unsupported value for ID: %s", data)
	}
	*id = ID(v)
	return nil
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Int 是宽松解析的整数字段（数量、等级、状态等）。
type Int int64

func (i *Int) UnmarshalJSON(data []byte) error {
	v, err := parseLenientInt(data)
	if err != nil {
		return fmt.Errorf("unsupported value for Int: %s", data)
	}
	*i = Int(v)
	return nil
}

func parseLenientInt(data []byte) (int64, error) {
	text := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if text == "" || text == "null" {
		return 0, nil
	}
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

// Amount 是金额字段。服务端可能返回数字、字符串、空串或 null，
// 空值与无法解析的值都按 0 处理。
type Amount struct {
	decimal.Decimal
}

// NewAmount 从字符串构造金额，无法解析时为 0。
func NewAmount(value string) Amount {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Amount{}
	}
	return Amount{Decimal: d}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = NewAmount(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	return nil
}

// Unix 是秒级时间戳，兼容数字与字符串两种写法。
type Unix int64

// UnmarshalJSON 接受 1700000000、"1700000000"、null；无法解析的字符串视为 0。
func (u *Unix) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if text == "" || text == "null" {
		*u = 0
		return nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		*u = 0
		return nil
	}
	*u = Unix(v)
	return nil
}

// Flag 兼容 0/1、"0"/"1" 与 true/false。
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(bytes.TrimSpace(data)), `"`) {
	case "1", "true":
		*f = true
	default:
		*f = false
	}
	return nil
}

// StringArray 兼容数组或逗号分隔字符串。
type StringArray []string

func (a *StringArray) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*a = nil
		return nil
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, (*[]string)(a))
	}
	var text string
	if err := json.Unmarshal(trimmed, &text); err != nil {
		return fmt.Errorf("unsupported value for StringArray: %s", trimmed)
	}
	out := []string{}
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*a = out
	return nil
}
