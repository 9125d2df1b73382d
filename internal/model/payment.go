package model

import "time"

// PaymentOrder mirrors one gateway order. OrderID is the gateway's identifier;
// the row is created before checkout and marked paid only after the HMAC
// signature verifies.
type PaymentOrder struct {
	BaseModel
	UserID      uint       `gorm:"index;type:bigint unsigned" json:"userId"`
	OrderID     string     `gorm:"size:64;uniqueIndex;not null" json:"orderId"`
	Receipt     string     `gorm:"size:64;not null" json:"receipt"`
	AmountPaise int64      `gorm:"not null" json:"amountPaise"`
	Currency    string     `gorm:"size:8;default:'INR'" json:"currency"`
	Status      string     `gorm:"size:20;default:'created'" json:"status"` // created, paid, failed
	PaymentID   string     `gorm:"size:64" json:"paymentId,omitempty"`
	VerifiedAt  *time.Time `json:"verifiedAt,omitempty"`
}

func (PaymentOrder) TableName() string {
	return "payment_orders"
}
