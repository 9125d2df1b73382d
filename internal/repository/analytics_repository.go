package repository

import (
	"eamcetpro_backend/internal/model"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// FindByUserID returns (nil, nil) when the user has no analytics row yet.
func (r *AnalyticsRepository) FindByUserID(userID uint) (*model.UserAnalytics, error) {
	var a model.UserAnalytics
	err := r.DB.Where("user_id = ?", userID).First(&a).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AnalyticsRepository) Create(a *model.UserAnalytics) error {
	return r.DB.Create(a).Error
}

// UpdateVersioned writes the folded aggregate only if nobody raced us since
// the read. Returns false when zero rows matched, i.e. the version moved.
func (r *AnalyticsRepository) UpdateVersioned(a *model.UserAnalytics, expectedVersion int) (bool, error) {
	a.Version = expectedVersion + 1
	res := r.DB.Model(&model.UserAnalytics{}).
		Where("user_id = ? AND version = ?", a.UserID, expectedVersion).
		Select("total_tests_taken", "average_score", "section_wise_average",
			"improvement_trend", "weak_areas", "strong_areas", "time_management", "version").
		Updates(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
