package repository

import (
	"eamcetpro_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) Create(test *model.Test) error {
	return r.DB.Create(test).Error
}

func (r *TestRepository) FindByID(id uint) (*model.Test, error) {
	var t model.Test
	err := r.DB.First(&t, id).Error
	return &t, err
}

// FindWithSections loads a test and its sections in canonical order.
func (r *TestRepository) FindWithSections(id uint) (*model.Test, error) {
	var t model.Test
	err := r.DB.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).First(&t, id).Error
	return &t, err
}

func (r *TestRepository) ListPublished(page, limit int) ([]model.Test, int64, error) {
	var tests []model.Test
	var total int64
	query := r.DB.Model(&model.Test{}).Where("is_published = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("test_date desc, created_at desc").Offset(offset).Limit(limit).Find(&tests).Error
	return tests, total, err
}

func (r *TestRepository) Update(test *model.Test) error {
	return r.DB.Save(test).Error
}

func (r *TestRepository) CreateSection(section *model.Section) error {
	return r.DB.Create(section).Error
}

func (r *TestRepository) FindSection(id uint) (*model.Section, error) {
	var s model.Section
	err := r.DB.First(&s, id).Error
	return &s, err
}

func (r *TestRepository) CreateQuestion(q *model.Question) error {
	return r.DB.Create(q).Error
}

// QuestionsBySections returns every question of the given sections ordered by
// intra-section number. Global numbering is the catalog loader's job.
func (r *TestRepository) QuestionsBySections(sectionIDs []uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("section_id IN ?", sectionIDs).Order("section_id asc, number asc").Find(&qs).Error
	return qs, err
}

func (r *TestRepository) CountQuestions(sectionID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("section_id = ?", sectionID).Count(&count).Error
	return count, err
}
