package repository

import (
	"eamcetpro_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(order *model.PaymentOrder) error {
	return r.DB.Create(order).Error
}

func (r *PaymentRepository) FindByOrderID(orderID string) (*model.PaymentOrder, error) {
	var o model.PaymentOrder
	err := r.DB.Where("order_id = ?", orderID).First(&o).Error
	return &o, err
}

func (r *PaymentRepository) MarkPaid(orderID, paymentID string) error {
	now := time.Now()
	return r.DB.Model(&model.PaymentOrder{}).Where("order_id = ?", orderID).Updates(map[string]interface{}{
		"status":      "paid",
		"payment_id":  paymentID,
		"verified_at": now,
	}).Error
}

func (r *PaymentRepository) MarkFailed(orderID string) error {
	return r.DB.Model(&model.PaymentOrder{}).Where("order_id = ?", orderID).Update("status", "failed").Error
}
