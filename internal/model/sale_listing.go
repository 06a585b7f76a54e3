package model

import "time"

// SaleListing is a farmer's standing offer to sell a crop. Quantity is in
// quintals.
type SaleListing struct {
	ID              uint64        `gorm:"primaryKey;autoIncrement" json:"id"`
	FarmerProfileID uint64        `gorm:"column:farmer_profile_id;index;not null" json:"farmerProfileId"`
	CropType        string        `gorm:"column:crop_type;size:120;not null" json:"cropType"`
	Quantity        float64       `gorm:"not null" json:"quantity"`
	Status          ListingStatus `gorm:"size:32;not null" json:"status"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (SaleListing) TableName() string {
	return "sale_listings"
}
