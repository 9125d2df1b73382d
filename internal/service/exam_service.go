package service

import (
	"context"
	"eamcetpro_backend/internal/model"
	"eamcetpro_backend/internal/repository"
	"eamcetpro_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExamService owns the submission path: score the final answers, persist the
// immutable result, then fold the user's analytics.
type ExamService struct {
	Catalog   *CatalogService
	Results   *repository.ResultRepository
	Analytics *AnalyticsService
	DB        *gorm.DB
}

func NewExamService(catalog *CatalogService, results *repository.ResultRepository, analytics *AnalyticsService, db *gorm.DB) *ExamService {
	return &ExamService{
		Catalog:   catalog,
		Results:   results,
		Analytics: analytics,
		DB:        db,
	}
}

// SubmitResult evaluates and persists one completed attempt.
//
// The result row is written in its own transaction and is the durability
// boundary: a scoring failure persists nothing, while an analytics failure
// never rolls the result back. Analytics is eventually consistent relative
// to results.
func (s *ExamService) SubmitResult(ctx context.Context, userID, testID uint, finalAnswers map[int]string, timeTakenSeconds int) (*model.Result, error) {
	catalog, err := s.Catalog.LoadCatalog(ctx, testID)
	if err != nil {
		return nil, err
	}

	score, err := Score(finalAnswers, catalog.Questions, catalog.Sections)
	if err != nil {
		return nil, err
	}

	submittedAt := time.Now()
	result := &model.Result{
		UserID:           userID,
		TestID:           testID,
		SubmittedAt:      submittedAt,
		TimeTakenSeconds: timeTakenSeconds,
		Answers:          finalAnswers,
		SectionScores:    score.SectionScores,
		TotalMarks:       score.TotalMarks,
		CorrectAnswers:   score.Correct,
		WrongAnswers:     score.Wrong,
		Unattempted:      score.Unattempted,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Results.Create(tx, result)
	})
	if err != nil {
		return nil, err
	}

	if err := s.Analytics.Record(userID, score, catalog.Sections, timeTakenSeconds, submittedAt); err != nil {
		logger.Log.Error("analytics update failed after result persisted",
			zap.Uint("userID", userID),
			zap.String("resultID", result.ID),
			zap.Error(err))
	}

	return result, nil
}

func (s *ExamService) GetResult(id string) (*model.Result, error) {
	return s.Results.FindByID(id)
}

func (s *ExamService) ListResults(userID uint, page, limit int) ([]model.Result, int64, error) {
	return s.Results.ListByUser(userID, page, limit)
}
