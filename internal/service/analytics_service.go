package service

import (
	"eamcetpro_backend/internal/config"
	"eamcetpro_backend/internal/model"
	"eamcetpro_backend/internal/repository"
	"eamcetpro_backend/internal/util"
	"eamcetpro_backend/pkg/monitoring"
	"strings"
	"time"

	"gorm.io/gorm"
)

type AnalyticsService struct {
	Repo       *repository.AnalyticsRepository
	maxRetries int
	trendCap   int
	weakBelow  float64
	strongFrom float64
}

func NewAnalyticsService(repo *repository.AnalyticsRepository, cfg *config.Config) *AnalyticsService {
	return &AnalyticsService{
		Repo:       repo,
		maxRetries: cfg.Exam.AnalyticsRetries,
		trendCap:   cfg.Exam.TrendMaxEntries,
		weakBelow:  cfg.Exam.WeakAreaBelow,
		strongFrom: cfg.Exam.StrongAreaAtLeast,
	}
}

// Record folds a new score into the user's running aggregate. The write is
// optimistic: a version check guards the read-modify-write, and a lost race
// re-reads the latest row and recomputes, up to maxRetries attempts. The
// caller treats failure as non-fatal; the result row is already durable.
func (s *AnalyticsService) Record(userID uint, res *ScoreResult, sections []model.Section, timeTakenSeconds int, submittedAt time.Time) error {
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		existing, err := s.Repo.FindByUserID(userID)
		if err != nil {
			return err
		}

		next := s.Fold(existing, userID, res, sections, timeTakenSeconds, submittedAt)

		if existing == nil {
			err = s.Repo.Create(next)
			if err == nil {
				return nil
			}
			if err == gorm.ErrDuplicatedKey || strings.Contains(err.Error(), "Duplicate entry") {
				// Another submission created the row first; fold against it.
				monitoring.AnalyticsRetryCounter.Inc()
				continue
			}
			return err
		}

		ok, err := s.Repo.UpdateVersioned(next, existing.Version)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		monitoring.AnalyticsRetryCounter.Inc()
	}
	return util.ErrAnalyticsConflict
}

func (s *AnalyticsService) GetUserAnalytics(userID uint) (*model.UserAnalytics, error) {
	return s.Repo.FindByUserID(userID)
}

// Fold is the pure aggregation step: given the prior aggregate (nil on the
// first submission) it returns the next one. Averages use the incremental
// mean newAvg = (oldAvg*n + new) / (n+1); weak and strong areas reflect only
// the latest result, deliberately, so the dashboard tracks current form
// rather than historical averages.
func (s *AnalyticsService) Fold(existing *model.UserAnalytics, userID uint, res *ScoreResult, sections []model.Section, timeTakenSeconds int, submittedAt time.Time) *model.UserAnalytics {
	total := 0
	for _, sec := range sections {
		total += sec.QuestionCount
	}

	perQuestion := 0.0
	if total > 0 {
		perQuestion = float64(timeTakenSeconds) / float64(total)
	}

	// Time attribution per section is proportional to its share of the
	// paper; for the canonical 80/40/40 layout that is the familiar
	// 50%/25%/25% split.
	sectionTime := make(map[string]float64, len(sections))
	for _, sec := range sections {
		share := 0.0
		if total > 0 {
			share = float64(sec.QuestionCount) / float64(total)
		}
		sectionTime[sec.Name] = float64(timeTakenSeconds) * share
	}

	weak, strong := s.classifyAreas(res, sections)
	point := model.TrendPoint{Date: submittedAt, Score: res.TotalMarks}

	if existing == nil {
		sectionAvg := make(map[string]float64, len(sections))
		for _, sec := range sections {
			sectionAvg[sec.Name] = res.SectionScores[sec.Name].Marks
		}
		return &model.UserAnalytics{
			UserID:             userID,
			TotalTestsTaken:    1,
			AverageScore:       res.TotalMarks,
			SectionWiseAverage: sectionAvg,
			ImprovementTrend:   []model.TrendPoint{point},
			WeakAreas:          weak,
			StrongAreas:        strong,
			TimeManagement: model.TimeManagement{
				AverageTimePerQuestion: perQuestion,
				SectionWiseTime:        sectionTime,
			},
		}
	}

	n := float64(existing.TotalTestsTaken)
	next := &model.UserAnalytics{
		BaseModel:       existing.BaseModel,
		UserID:          userID,
		TotalTestsTaken: existing.TotalTestsTaken + 1,
		AverageScore:    incrementalMean(existing.AverageScore, n, res.TotalMarks),
		WeakAreas:       weak,
		StrongAreas:     strong,
		Version:         existing.Version,
	}

	next.SectionWiseAverage = make(map[string]float64, len(sections))
	for _, sec := range sections {
		next.SectionWiseAverage[sec.Name] = incrementalMean(
			existing.SectionWiseAverage[sec.Name], n, res.SectionScores[sec.Name].Marks)
	}

	next.TimeManagement = model.TimeManagement{
		AverageTimePerQuestion: incrementalMean(existing.TimeManagement.AverageTimePerQuestion, n, perQuestion),
		SectionWiseTime:        make(map[string]float64, len(sections)),
	}
	for _, sec := range sections {
		next.TimeManagement.SectionWiseTime[sec.Name] = incrementalMean(
			existing.TimeManagement.SectionWiseTime[sec.Name], n, sectionTime[sec.Name])
	}

	next.ImprovementTrend = append(append([]model.TrendPoint{}, existing.ImprovementTrend...), point)
	if s.trendCap > 0 && len(next.ImprovementTrend) > s.trendCap {
		next.ImprovementTrend = next.ImprovementTrend[len(next.ImprovementTrend)-s.trendCap:]
	}

	return next
}

func incrementalMean(oldAvg, oldCount, newValue float64) float64 {
	return (oldAvg*oldCount + newValue) / (oldCount + 1)
}

// classifyAreas flags sections of the latest result: below weakBelow percent
// correct is weak, at or above strongFrom is strong. The middle band lands in
// neither list.
func (s *AnalyticsService) classifyAreas(res *ScoreResult, sections []model.Section) (weak, strong []string) {
	weak = []string{}
	strong = []string{}
	for _, sec := range sections {
		if sec.QuestionCount == 0 {
			continue
		}
		pct := float64(res.SectionScores[sec.Name].Correct) / float64(sec.QuestionCount) * 100
		name := capitalize(sec.Name)
		if pct < s.weakBelow {
			weak = append(weak, name)
		} else if pct >= s.strongFrom {
			strong = append(strong, name)
		}
	}
	return weak, strong
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
