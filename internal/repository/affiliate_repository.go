package repository

import (
	"eamcetpro_backend/internal/model"

	"gorm.io/gorm"
)

type AffiliateRepository struct {
	DB *gorm.DB
}

func NewAffiliateRepository(db *gorm.DB) *AffiliateRepository {
	return &AffiliateRepository{DB: db}
}

func (r *AffiliateRepository) Create(a *model.Affiliate) error {
	return r.DB.Create(a).Error
}

func (r *AffiliateRepository) FindByUserID(userID uint) (*model.Affiliate, error) {
	var a model.Affiliate
	err := r.DB.Where("user_id = ?", userID).First(&a).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AffiliateRepository) FindByCode(code string) (*model.Affiliate, error) {
	var a model.Affiliate
	err := r.DB.Where("code = ?", code).First(&a).Error
	return &a, err
}

func (r *AffiliateRepository) CreateVisit(v *model.AffiliateVisit) error {
	return r.DB.Create(v).Error
}

func (r *AffiliateRepository) CountVisits(affiliateID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AffiliateVisit{}).Where("affiliate_id = ?", affiliateID).Count(&count).Error
	return count, err
}

// CountSignups counts visits that ended with a logged-in user attached.
func (r *AffiliateRepository) CountSignups(affiliateID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AffiliateVisit{}).
		Where("affiliate_id = ? AND user_id IS NOT NULL", affiliateID).
		Count(&count).Error
	return count, err
}
