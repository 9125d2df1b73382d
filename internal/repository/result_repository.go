package repository

import (
	"eamcetpro_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) Create(tx *gorm.DB, result *model.Result) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(result).Error
}

func (r *ResultRepository) FindByID(id string) (*model.Result, error) {
	var res model.Result
	err := r.DB.Where("id = ?", id).First(&res).Error
	return &res, err
}

func (r *ResultRepository) ListByUser(userID uint, page, limit int) ([]model.Result, int64, error) {
	var results []model.Result
	var total int64
	query := r.DB.Model(&model.Result{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("submitted_at desc").Offset(offset).Limit(limit).Find(&results).Error
	return results, total, err
}
