package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

type User struct {
	BaseModel
	Name         string     `gorm:"size:100;not null" json:"name"`
	Phone        string     `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Email        string     `gorm:"size:255" json:"email"`
	Password     string     `gorm:"size:255;not null" json:"-"`
	Role         UserRole   `gorm:"size:20;default:'student'" json:"role"`
	IsPremium    bool       `gorm:"default:false" json:"isPremium"`
	PremiumUntil *time.Time `json:"premiumUntil,omitempty"`
	LastSeenAt   *time.Time `json:"lastSeenAt,omitempty"`
}

func (User) TableName() string {
	return "users"
}
