package model

import "time"

// Message 会话消息
type Message struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ConversationID string    `gorm:"type:varchar(36);index:idx_message_convo_created,priority:1;not null" json:"conversation_id"`
	SenderID       string    `gorm:"type:varchar(36);not null" json:"sender_id"`
	ReceiverID     string    `gorm:"type:varchar(36);not null" json:"receiver_id"`
	Text           string    `gorm:"type:text;not null" json:"text"`
	CreatedAt      time.Time `gorm:"index:idx_message_convo_created,priority:2" json:"created_at"`
}

func (Message) TableName() string { return "messages" }
