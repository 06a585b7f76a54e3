package model

import "time"

type ContractorProfile struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_contractor_profiles_user_id" json:"userId"`
	CompanyName string    `gorm:"column:company_name;size:255" json:"companyName"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ContractorProfile) TableName() string {
	return "contractor_profiles"
}
