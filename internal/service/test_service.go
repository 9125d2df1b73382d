package service

import (
	"eamcetpro_backend/internal/model"
	"eamcetpro_backend/internal/repository"
	"eamcetpro_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// TestService covers the admin side of the catalog: authoring papers and
// publishing them once their section/question layout validates.
type TestService struct {
	Repo *repository.TestRepository
}

func NewTestService(repo *repository.TestRepository) *TestService {
	return &TestService{Repo: repo}
}

type TestRequest struct {
	Name            string     `json:"name" binding:"required"`
	TestDate        *time.Time `json:"testDate"`
	Shift           string     `json:"shift"`
	DurationMinutes int        `json:"durationMinutes" binding:"required,min=1"`
}

func (s *TestService) CreateTest(req TestRequest) (*model.Test, error) {
	t := &model.Test{
		Name:            req.Name,
		TestDate:        req.TestDate,
		Shift:           req.Shift,
		DurationMinutes: req.DurationMinutes,
	}
	if err := s.Repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TestService) ListPublished(page, limit int) ([]model.Test, int64, error) {
	return s.Repo.ListPublished(page, limit)
}

type SectionRequest struct {
	Name            string  `json:"name" binding:"required"`
	Position        int     `json:"position" binding:"required,min=1"`
	QuestionCount   int     `json:"questionCount" binding:"required,min=1"`
	MarksPerCorrect float64 `json:"marksPerCorrect"`
	MarksPerWrong   float64 `json:"marksPerWrong"`
}

func (s *TestService) AddSection(testID uint, req SectionRequest) (*model.Section, error) {
	test, err := s.Repo.FindByID(testID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}
	if test.IsPublished {
		return nil, util.ErrTestNotPublished
	}

	marks := req.MarksPerCorrect
	if marks == 0 {
		marks = 1
	}
	section := &model.Section{
		TestID:          test.ID,
		Name:            req.Name,
		Position:        req.Position,
		QuestionCount:   req.QuestionCount,
		MarksPerCorrect: marks,
		MarksPerWrong:   req.MarksPerWrong,
	}
	if err := s.Repo.CreateSection(section); err != nil {
		return nil, err
	}
	return section, nil
}

type QuestionRequest struct {
	Number        int    `json:"number" binding:"required,min=1"`
	Text          string `json:"text" binding:"required"`
	OptionA       string `json:"optionA" binding:"required"`
	OptionB       string `json:"optionB" binding:"required"`
	OptionC       string `json:"optionC" binding:"required"`
	OptionD       string `json:"optionD" binding:"required"`
	OptionE       string `json:"optionE"`
	OptionF       string `json:"optionF"`
	CorrectOption string `json:"correctOption" binding:"required,oneof=a b c d e f"`
	FigureURL     string `json:"figureUrl"`
}

func (s *TestService) AddQuestion(sectionID uint, req QuestionRequest) (*model.Question, error) {
	section, err := s.Repo.FindSection(sectionID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}
	if req.Number > section.QuestionCount {
		return nil, util.ErrDataIntegrity
	}

	q := &model.Question{
		SectionID:     section.ID,
		Number:        req.Number,
		Text:          req.Text,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		OptionE:       req.OptionE,
		OptionF:       req.OptionF,
		CorrectOption: req.CorrectOption,
		FigureURL:     req.FigureURL,
	}
	if err := s.Repo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

// Publish freezes a test. Every section must be completely filled; a paper
// with holes would fail the numbering invariant at load time, so it is
// rejected here instead.
func (s *TestService) Publish(testID uint) (*model.Test, error) {
	test, err := s.Repo.FindWithSections(testID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}

	for _, sec := range test.Sections {
		count, err := s.Repo.CountQuestions(sec.ID)
		if err != nil {
			return nil, err
		}
		if int(count) != sec.QuestionCount {
			return nil, util.ErrDataIntegrity
		}
	}

	now := time.Now()
	test.IsPublished = true
	test.PublishedAt = &now
	if err := s.Repo.Update(test); err != nil {
		return nil, err
	}
	return test, nil
}
