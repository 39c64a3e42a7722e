package model

import "time"

// Follow 关注边（A 关注 B），与 Fan 在同一事务内成对写入
type Follow struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	FollowerID string `gorm:"type:varchar(36);index:idx_follow_follower;index:idx_follow_pair,unique;not null"`
	FolloweeID string `gorm:"type:varchar(36);not null;index:idx_follow_pair,unique"`
	CreatedAt  time.Time
}

func (Follow) TableName() string { return "follows" }
