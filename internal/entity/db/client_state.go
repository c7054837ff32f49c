package db

import "time"

// ClientState 是一条本地客户端状态（令牌、用户信息、通知状态等）。
type ClientState struct {
	Key       string    `gorm:"column:state_key;primaryKey;size:191" json:"key"`
	Value     string    `gorm:"column:state_value;type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (ClientState) TableName() string {
	return "client_state"
}
