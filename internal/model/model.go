package model

import "github.com/google/uuid"

// All 需要迁移的全部模型
func All() []any {
	return []any{
		&User{},
		&Follow{},
		&Fan{},
		&Post{},
		&PostLike{},
		&Reply{},
		&Conversation{},
		&Message{},
	}
}

// NewID 生成按时间有序的 ID，同一进程内单调递增
func NewID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.New().String()
}
