package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"collectibles/internal/config"
	"collectibles/internal/model"
)

const (
	// TypeMemory 表示进程内存储，进程退出即丢失。
	TypeMemory = "memory"
	// TypeFile 表示单个 JSON 文件存储（默认）。
	TypeFile = "file"
	// TypeSQLite 表示 SQLite 数据库存储。
	TypeSQLite = model.DBTypeSQLite
	// TypeMySQL 表示 MySQL 数据库存储。
	TypeMySQL = model.DBTypeMySQL
	// TypePostgres 表示 PostgreSQL 数据库存储。
	TypePostgres = model.DBTypePostgres
	// TypeRedis 表示 Redis 存储。
	TypeRedis = "redis"
)

// ErrClosed 表示存储已关闭。
var ErrClosed = errors.New("storage closed")

// Store 是原始键值存储的抽象，值为不透明字节。
//
// Get 在键不存在时返回 (nil, false, nil)；Keys 按字典序返回以 prefix 开头的键。
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// NewStore 根据配置实例化存储后端。
func NewStore(cfg config.Config) (Store, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StateStore))
	switch typeName {
	case "", TypeFile:
		store, err := NewFileStore(cfg.StateFile)
		if err != nil {
			return nil, err
		}
		return store, nil
	case TypeMemory:
		return NewMemoryStore(), nil
	case TypeSQLite, TypeMySQL, TypePostgres:
		repo, err := model.InitRepository(cfg)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(repo), nil
	case TypeRedis:
		store, err := NewRedisStore(RedisOptions{
			Addr:     cfg.StateRedisAddr,
			DB:       cfg.StateRedisDB,
			Password: cfg.StateRedisPass,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StateStore)
	}
}

func sortedKeys[V any](values map[string]V, prefix string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func checkContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
