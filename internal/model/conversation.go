package model

import (
	"sort"
	"time"
)

// Conversation 两人会话；PairKey 为排序后的参与者拼接，保证每对用户唯一
type Conversation struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserA         string    `gorm:"type:varchar(36);index:idx_convo_user_a;not null" json:"-"`
	UserB         string    `gorm:"type:varchar(36);index:idx_convo_user_b;not null" json:"-"`
	PairKey       string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"-"`
	LatestMessage *string   `gorm:"type:text" json:"latest_message"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `gorm:"index" json:"updated_at"`

	Participants []string `gorm:"-" json:"participants"`
}

func (Conversation) TableName() string { return "conversations" }

// PairKey 与顺序无关的会话键
func PairKey(a, b string) (low, high, key string) {
	ids := []string{a, b}
	sort.Strings(ids)
	return ids[0], ids[1], ids[0] + ":" + ids[1]
}

// Fill 填充派生字段
func (c *Conversation) Fill() {
	c.Participants = []string{c.UserA, c.UserB}
}

// HasParticipant 是否为会话成员
func (c *Conversation) HasParticipant(userID string) bool {
	return c.UserA == userID || c.UserB == userID
}

// Peer 返回另一位参与者
func (c *Conversation) Peer(userID string) string {
	if c.UserA == userID {
		return c.UserB
	}
	return c.UserA
}
