package model

import "time"

// Reply 帖子下的评论，ParentReplyID 指向同帖的上级评论
type Reply struct {
	ID            string       `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AuthorID      string       `gorm:"type:varchar(36);not null" json:"author_id"`
	PostID        string       `gorm:"type:varchar(36);index:idx_reply_post;not null" json:"post_id"`
	Text          string       `gorm:"type:text;not null" json:"text"`
	ParentReplyID *string      `gorm:"type:varchar(36)" json:"parent_reply_id"`
	CreatedAt     time.Time    `json:"created_at"`
	Author        *UserSummary `gorm:"-" json:"author,omitempty"`
}

func (Reply) TableName() string { return "replies" }
