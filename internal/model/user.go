package model

import "time"

const (
	AccountPersonal = "personal"
	AccountBusiness = "business"
)

// Media 外部存储返回的资源引用
type Media struct {
	URL     string `json:"url"`
	AssetID string `json:"asset_id"`
}

// Location 用户所在地
type Location struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

// User 用户账号与资料；关注关系存于 follows / fans 表
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Handle       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"handle"`
	Fullname     string    `gorm:"type:varchar(100);not null" json:"fullname"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Bio          string    `gorm:"type:varchar(200)" json:"bio"`
	Location     Location  `gorm:"serializer:json" json:"location"`
	Website      string    `gorm:"type:varchar(255)" json:"website"`
	Avatar       Media     `gorm:"serializer:json" json:"avatar"`
	Cover        Media     `gorm:"serializer:json" json:"cover"`
	Points       int64     `gorm:"not null;default:0" json:"points"`
	AccountType  string    `gorm:"type:varchar(16);not null;default:personal" json:"account_type"`
	IsVerified   bool      `gorm:"not null;default:false" json:"is_verified"`
	JoinedAt     time.Time `json:"joined_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// UserSummary 嵌入帖子、关注列表等处的用户摘要
type UserSummary struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	Fullname    string `json:"fullname"`
	Avatar      Media  `json:"avatar"`
	IsVerified  bool   `json:"is_verified"`
	AccountType string `json:"account_type"`
	Points      int64  `json:"points"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:          u.ID,
		Handle:      u.Handle,
		Fullname:    u.Fullname,
		Avatar:      u.Avatar,
		IsVerified:  u.IsVerified,
		AccountType: u.AccountType,
		Points:      u.Points,
	}
}
