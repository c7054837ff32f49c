package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Local 是带过期时间的类型化键值存储，建立在 Store 之上。
// 每个值以 {"value": ..., "expire_at": 毫秒时间戳} 的形式保存，
// expire_at 为 0 表示永不过期。
type Local struct {
	store  Store
	prefix string
	now    func() time.Time
}

type envelope struct {
	Value    json.RawMessage `json:"value"`
	ExpireAt int64           `json:"expire_at,omitempty"`
}

// LocalOption 配置 Local。
type LocalOption func(*Local)

// WithClock 替换时间源，测试中使用。
func WithClock(now func() time.Time) LocalOption {
	return func(l *Local) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLocal 包装 store，所有键加上 prefix。
func NewLocal(store Store, prefix string, opts ...LocalOption) *Local {
	l := &Local{store: store, prefix: prefix, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Set 保存 value；expireIn <= 0 表示不过期。
func (l *Local) Set(ctx context.Context, key string, value any, expireIn time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	env := envelope{Value: raw}
	if expireIn > 0 {
		env.ExpireAt = l.now().Add(expireIn).UnixMilli()
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return l.store.Set(ctx, l.prefix+key, data)
}

// SetUntil 保存 value，在 expireAt 时过期；零值表示不过期。
func (l *Local) SetUntil(ctx context.Context, key string, value any, expireAt time.Time) error {
	if expireAt.IsZero() {
		return l.Set(ctx, key, value, 0)
	}
	ttl := expireAt.Sub(l.now())
	if ttl <= 0 {
		return l.Remove(ctx, key)
	}
	return l.Set(ctx, key, value, ttl)
}

// Get 读取 key 到 out。键不存在或已过期时返回 false，过期的键会被删除。
func (l *Local) Get(ctx context.Context, key string, out any) (bool, error) {
	raw, ok, err := l.store.Get(ctx, l.prefix+key)
	if err != nil || !ok {
		return false, err
	}

	env, wrapped := decodeEnvelope(raw)
	if !wrapped {
		// 旧版本直接保存的原始值
		return decodeRaw(raw, out, key)
	}
	if env.ExpireAt > 0 && l.now().UnixMilli() >= env.ExpireAt {
		if err := l.store.Delete(ctx, l.prefix+key); err != nil {
			return false, fmt.Errorf("remove expired %s: %w", key, err)
		}
		return false, nil
	}
	return decodeRaw(env.Value, out, key)
}

// ExpiresAt 返回 key 的过期时间；不过期或不存在时返回零值。
func (l *Local) ExpiresAt(ctx context.Context, key string) (time.Time, error) {
	raw, ok, err := l.store.Get(ctx, l.prefix+key)
	if err != nil || !ok {
		return time.Time{}, err
	}
	env, wrapped := decodeEnvelope(raw)
	if !wrapped || env.ExpireAt == 0 {
		return time.Time{}, nil
	}
	return time.UnixMilli(env.ExpireAt), nil
}

// Remove 删除 key。
func (l *Local) Remove(ctx context.Context, key string) error {
	return l.store.Delete(ctx, l.prefix+key)
}

// Keys 返回本前缀下的全部键（已去掉前缀）。
func (l *Local) Keys(ctx context.Context) ([]string, error) {
	keys, err := l.store.Keys(ctx, l.prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, l.prefix)
	}
	return keys, nil
}

// Value 返回 key 对应的值，缺失、过期或无法解析时返回 def。
func Value[T any](ctx context.Context, l *Local, key string, def T) T {
	var out T
	ok, err := l.Get(ctx, key, &out)
	if err != nil || !ok {
		return def
	}
	return out
}

func decodeEnvelope(raw []byte) (envelope, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return envelope{}, false
	}
	value, ok := fields["value"]
	if !ok {
		return envelope{}, false
	}
	env := envelope{Value: value}
	if exp, ok := fields["expire_at"]; ok {
		if err := json.Unmarshal(exp, &env.ExpireAt); err != nil {
			return envelope{}, false
		}
	}
	return env, true
}

func decodeRaw(raw []byte, out any, key string) (bool, error) {
	if err := json.Unmarshal(raw, out); err == nil {
		return true, nil
	}
	// A bare unquoted string, as older clients stored the token.
	if s, ok := out.(*string); ok && !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		*s = string(raw)
		return true, nil
	}
	return false, fmt.Errorf("decode %s: unexpected stored value", key)
}
