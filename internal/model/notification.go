package model

import "time"

type Notification struct {
	ID                uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            uint64     `gorm:"column:user_id;index;not null" json:"userId"`
	Type              string     `gorm:"column:type;size:64;not null" json:"type"`
	Title             string     `gorm:"column:title;size:255" json:"title"`
	Body              string     `gorm:"column:body;type:text" json:"body"`
	PurchaseRequestID *uint64    `gorm:"column:purchase_request_id;index" json:"purchaseRequestId,omitempty"`
	ChatRoomID        *uint64    `gorm:"column:chat_room_id;index" json:"chatRoomId,omitempty"`
	ReadAt            *time.Time `gorm:"column:read_at" json:"readAt,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
