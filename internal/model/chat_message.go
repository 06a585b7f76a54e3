package model

import "time"

type ChatMessage struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatRoomID uint64    `gorm:"column:chat_room_id;index" json:"chatRoomId"`
	SenderID   uint64    `gorm:"column:sender_id;index;not null" json:"senderId"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
