package model

import "time"

// Post 帖子；InReplyTo 为空表示顶层帖
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AuthorID  string    `gorm:"type:varchar(36);index:idx_post_author_created,priority:1;not null" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Hashtags  []string  `gorm:"serializer:json" json:"hashtags"`
	Photos    []Media   `gorm:"serializer:json" json:"photos"`
	InReplyTo *string   `gorm:"type:varchar(36);index:idx_post_reply_to" json:"in_reply_to"`
	IsPinned  bool      `gorm:"not null;default:false" json:"is_pinned"`
	IsEdited  bool      `gorm:"not null;default:false" json:"is_edited"`
	CreatedAt time.Time `gorm:"index:idx_post_author_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Likes  []string     `gorm:"-" json:"likes"`
	Author *UserSummary `gorm:"-" json:"author,omitempty"`
}

func (Post) TableName() string { return "posts" }

// IsTopLevel 是否为顶层帖
func (p *Post) IsTopLevel() bool { return p.InReplyTo == nil || *p.InReplyTo == "" }

// PostLike 点赞集合，(post_id, user_id) 唯一
type PostLike struct {
	PostID    string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time
}

func (PostLike) TableName() string { return "post_likes" }
