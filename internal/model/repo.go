package model

import (
	"context"

	"collectibles/internal/entity/db"
	"collectibles/internal/model/sql"
)

// ErrStateNotFound 表示键不存在
var ErrStateNotFound = sql.ErrNotFound

// Repository 定义客户端状态表的数据库操作接口
type Repository interface {
	GetState(ctx context.Context, key string) (*db.ClientState, error)
	PutState(ctx context.Context, key, value string) error
	DeleteState(ctx context.Context, key string) error
	ListStateKeys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}
