package model

import "time"

// ChatRoom pairs the confirming farmer with the contractor owning the
// purchase request. The unique index on purchase_request_id guarantees at
// most one room per confirmed request even under concurrent confirms.
type ChatRoom struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomKey           string    `gorm:"column:room_key;size:36;not null;uniqueIndex:uk_chat_rooms_room_key" json:"roomKey"`
	FarmerID          uint64    `gorm:"column:farmer_id;index;not null" json:"farmerId"`
	ContractorID      uint64    `gorm:"column:contractor_id;index;not null" json:"contractorId"`
	PurchaseRequestID uint64    `gorm:"column:purchase_request_id;not null;uniqueIndex:uk_chat_rooms_request" json:"purchaseRequestId"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (ChatRoom) TableName() string {
	return "chat_rooms"
}
