package model

import "time"

type Role string

const (
	RoleFarmer     Role = "FARMER"
	RoleContractor Role = "CONTRACTOR"
)

type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UID       string    `gorm:"column:uid;size:128;not null;uniqueIndex:uk_users_uid" json:"uid"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Phone     string    `gorm:"size:20;not null;uniqueIndex:uk_users_phone" json:"phone"`
	Email     *string   `gorm:"size:255;uniqueIndex:uk_users_email" json:"email,omitempty"`
	Role      Role      `gorm:"size:16;not null" json:"role"`
	State     string    `gorm:"size:120;not null" json:"state"`
	City      string    `gorm:"size:120;not null" json:"city"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
