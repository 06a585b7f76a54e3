package model

import "time"

// PurchaseRequest is a contractor's standing demand for a crop at a price
// per quintal. Farmer interest lives in request_interests.
type PurchaseRequest struct {
	ID                  uint64        `gorm:"primaryKey;autoIncrement" json:"id"`
	ContractorProfileID uint64        `gorm:"column:contractor_profile_id;index;not null" json:"contractorProfileId"`
	CropType            string        `gorm:"column:crop_type;size:120;not null" json:"cropType"`
	Quantity            float64       `gorm:"not null" json:"quantity"`
	PricePerUnit        float64       `gorm:"column:price_per_unit;not null" json:"pricePerUnit"`
	Status              ListingStatus `gorm:"size:32;not null" json:"status"`
	CreatedAt           time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (PurchaseRequest) TableName() string {
	return "purchase_requests"
}
