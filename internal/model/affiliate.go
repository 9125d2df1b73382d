package model

import "time"

type Affiliate struct {
	BaseModel
	UserID          uint              `gorm:"uniqueIndex;type:bigint unsigned" json:"userId"`
	Code            string            `gorm:"size:16;uniqueIndex;not null" json:"code"`
	PaymentMethod   string            `gorm:"size:20;not null" json:"paymentMethod"` // upi, bank
	PaymentDetails  map[string]string `gorm:"serializer:json" json:"paymentDetails"`
	Status          string            `gorm:"size:20;default:'active'" json:"status"`
	TermsAcceptedAt time.Time         `json:"termsAcceptedAt"`
}

func (Affiliate) TableName() string {
	return "affiliates"
}

type AffiliateVisit struct {
	BaseModel
	AffiliateID uint   `gorm:"index;type:bigint unsigned" json:"affiliateId"`
	UserID      *uint  `gorm:"index;type:bigint unsigned" json:"userId,omitempty"`
	VisitorIP   string `gorm:"size:64" json:"visitorIp"`
	Referrer    string `gorm:"size:512" json:"referrer,omitempty"`
	UserAgent   string `gorm:"size:512" json:"userAgent,omitempty"`
}

func (AffiliateVisit) TableName() string {
	return "affiliate_visits"
}
