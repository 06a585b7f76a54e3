package model

import "time"

// RequestInterest records that a farmer is willing to fulfill a purchase
// request. The composite key makes the interest list a set.
type RequestInterest struct {
	PurchaseRequestID uint64    `gorm:"column:purchase_request_id;not null;primaryKey" json:"purchaseRequestId"`
	FarmerUserID      uint64    `gorm:"column:farmer_user_id;not null;primaryKey" json:"farmerUserId"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (RequestInterest) TableName() string {
	return "request_interests"
}
