package service

import (
	"eamcetpro_backend/internal/config"
	"eamcetpro_backend/internal/model"
	"math"
	"math/rand"
	"testing"
	"time"
)

func newAnalyticsForTest() *AnalyticsService {
	cfg := &config.Config{}
	cfg.Exam.TrendMaxEntries = 50
	cfg.Exam.AnalyticsRetries = 3
	cfg.Exam.WeakAreaBelow = 50
	cfg.Exam.StrongAreaAtLeast = 75
	return NewAnalyticsService(nil, cfg)
}

func scoreWith(sections []model.Section, correctPerSection map[string]int, marks float64) *ScoreResult {
	res := &ScoreResult{SectionScores: make(map[string]model.SectionScore), TotalMarks: marks}
	for _, sec := range sections {
		res.SectionScores[sec.Name] = model.SectionScore{
			Correct: correctPerSection[sec.Name],
			Marks:   float64(correctPerSection[sec.Name]),
		}
	}
	return res
}

func TestFoldFirstSubmission(t *testing.T) {
	svc := newAnalyticsForTest()
	sections := []model.Section{
		makeSection(1, "maths", 80, 1, 0),
		makeSection(2, "physics", 40, 1, 0),
		makeSection(3, "chemistry", 40, 1, 0),
	}
	res := scoreWith(sections, map[string]int{"maths": 40, "physics": 10, "chemistry": 10}, 60)
	now := time.Now()

	a := svc.Fold(nil, 7, res, sections, 7200, now)

	if a.TotalTestsTaken != 1 {
		t.Errorf("TotalTestsTaken = %d, want 1", a.TotalTestsTaken)
	}
	if a.AverageScore != 60 {
		t.Errorf("AverageScore = %v, want 60", a.AverageScore)
	}
	if len(a.ImprovementTrend) != 1 || a.ImprovementTrend[0].Score != 60 {
		t.Errorf("trend = %+v", a.ImprovementTrend)
	}
	if a.SectionWiseAverage["maths"] != 40 {
		t.Errorf("maths average = %v, want 40", a.SectionWiseAverage["maths"])
	}
}

func TestFoldSecondSubmissionAveragesIncrementally(t *testing.T) {
	svc := newAnalyticsForTest()
	sections := []model.Section{makeSection(1, "maths", 80, 1, 0)}

	first := scoreWith(sections, map[string]int{"maths": 60}, 60)
	second := scoreWith(sections, map[string]int{"maths": 40}, 40)
	now := time.Now()

	a := svc.Fold(nil, 7, first, sections, 3600, now)
	a = svc.Fold(a, 7, second, sections, 3600, now)

	if a.TotalTestsTaken != 2 {
		t.Errorf("TotalTestsTaken = %d, want 2", a.TotalTestsTaken)
	}
	if a.AverageScore != 50 {
		t.Errorf("AverageScore = %v, want 50", a.AverageScore)
	}
	if a.SectionWiseAverage["maths"] != 50 {
		t.Errorf("section average = %v, want 50", a.SectionWiseAverage["maths"])
	}
	if len(a.ImprovementTrend) != 2 {
		t.Errorf("trend length = %d, want 2", len(a.ImprovementTrend))
	}
}

func TestFoldMatchesDirectMeanOverSequence(t *testing.T) {
	svc := newAnalyticsForTest()
	sections := []model.Section{makeSection(1, "maths", 80, 1, 0)}
	rng := rand.New(rand.NewSource(1))

	var a *model.UserAnalytics
	sum := 0.0
	now := time.Now()
	for i := 0; i < 25; i++ {
		marks := float64(rng.Intn(81))
		sum += marks
		res := scoreWith(sections, map[string]int{"maths": int(marks)}, marks)
		a = svc.Fold(a, 7, res, sections, 3600, now)

		want := sum / float64(i+1)
		if math.Abs(a.AverageScore-want) > 1e-9 {
			t.Fatalf("after %d folds: AverageScore = %v, want %v", i+1, a.AverageScore, want)
		}
	}
}

func TestClassifyAreasThresholds(t *testing.T) {
	svc := newAnalyticsForTest()
	sections := []model.Section{makeSection(1, "maths", 100, 1, 0)}

	cases := []struct {
		correct    int
		wantWeak   bool
		wantStrong bool
	}{
		{49, true, false},
		{50, false, false},
		{74, false, false},
		{75, false, true},
		{0, true, false},
		{100, false, true},
	}
	for _, tc := range cases {
		res := scoreWith(sections, map[string]int{"maths": tc.correct}, float64(tc.correct))
		weak, strong := svc.classifyAreas(res, sections)
		if gotWeak := len(weak) == 1; gotWeak != tc.wantWeak {
			t.Errorf("correct=%d: weak=%v, want %v", tc.correct, weak, tc.wantWeak)
		}
		if gotStrong := len(strong) == 1; gotStrong != tc.wantStrong {
			t.Errorf("correct=%d: strong=%v, want %v", tc.correct, strong, tc.wantStrong)
		}
	}
}

func TestClassifyAreasCapitalizesNames(t *testing.T) {
	svc := newAnalyticsForTest()
	sections := []model.Section{makeSection(1, "maths", 10, 1, 0)}
	res := scoreWith(sections, map[string]int{"maths": 1}, 1)

	weak, _ := svc.classifyAreas(res, sections)
	if len(weak) != 1 || weak[0] != "Maths" {
		t.Fatalf("weak = %v, want [Maths]", weak)
	}
}

func TestFoldWeakAreasReflectLatestResultOnly(t *testing.T) {
	svc := newAnalyticsForTest()
	sections := []model.Section{makeSection(1, "maths", 10, 1, 0)}
	now := time.Now()

	poor := scoreWith(sections, map[string]int{"maths": 2}, 2)
	good := scoreWith(sections, map[string]int{"maths": 9}, 9)

	a := svc.Fold(nil, 7, poor, sections, 600, now)
	if len(a.WeakAreas) != 1 {
		t.Fatalf("after poor result: weak = %v", a.WeakAreas)
	}

	a = svc.Fold(a, 7, good, sections, 600, now)
	if len(a.WeakAreas) != 0 {
		t.Errorf("weak areas should reset on a good result: %v", a.WeakAreas)
	}
	if len(a.StrongAreas) != 1 {
		t.Errorf("strong = %v, want one entry", a.StrongAreas)
	}
}

func TestFoldTrendCapped(t *testing.T) {
	cfg := &config.Config{}
	cfg.Exam.TrendMaxEntries = 3
	cfg.Exam.WeakAreaBelow = 50
	cfg.Exam.StrongAreaAtLeast = 75
	svc := NewAnalyticsService(nil, cfg)

	sections := []model.Section{makeSection(1, "maths", 10, 1, 0)}
	now := time.Now()

	var a *model.UserAnalytics
	for i := 1; i <= 5; i++ {
		res := scoreWith(sections, map[string]int{"maths": i}, float64(i))
		a = svc.Fold(a, 7, res, sections, 600, now)
	}

	if len(a.ImprovementTrend) != 3 {
		t.Fatalf("trend length = %d, want 3", len(a.ImprovementTrend))
	}
	// Oldest entries fall off the front.
	if a.ImprovementTrend[0].Score != 3 || a.ImprovementTrend[2].Score != 5 {
		t.Errorf("trend = %+v, want scores 3..5", a.ImprovementTrend)
	}
}

func TestFoldTimeSplitProportional(t *testing.T) {
	svc := newAnalyticsForTest()
	sections := []model.Section{
		makeSection(1, "maths", 80, 1, 0),
		makeSection(2, "physics", 40, 1, 0),
		makeSection(3, "chemistry", 40, 1, 0),
	}
	res := scoreWith(sections, map[string]int{}, 0)

	a := svc.Fold(nil, 7, res, sections, 7200, time.Now())

	tm := a.TimeManagement
	if math.Abs(tm.AverageTimePerQuestion-45) > 1e-9 {
		t.Errorf("AverageTimePerQuestion = %v, want 45", tm.AverageTimePerQuestion)
	}
	if math.Abs(tm.SectionWiseTime["maths"]-3600) > 1e-9 {
		t.Errorf("maths time = %v, want 3600", tm.SectionWiseTime["maths"])
	}
	if math.Abs(tm.SectionWiseTime["physics"]-1800) > 1e-9 {
		t.Errorf("physics time = %v, want 1800", tm.SectionWiseTime["physics"])
	}
	if math.Abs(tm.SectionWiseTime["chemistry"]-1800) > 1e-9 {
		t.Errorf("chemistry time = %v, want 1800", tm.SectionWiseTime["chemistry"])
	}
}

func TestFoldPreservesVersionForOptimisticWrite(t *testing.T) {
	svc := newAnalyticsForTest()
	sections := []model.Section{makeSection(1, "maths", 10, 1, 0)}
	res := scoreWith(sections, map[string]int{"maths": 5}, 5)
	now := time.Now()

	existing := svc.Fold(nil, 7, res, sections, 600, now)
	existing.Version = 4

	next := svc.Fold(existing, 7, res, sections, 600, now)
	if next.Version != 4 {
		t.Fatalf("Version = %d, want the read version 4", next.Version)
	}
}
