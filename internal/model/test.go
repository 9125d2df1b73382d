package model

import "time"

// Test is a published mock paper. Immutable once IsPublished is set; sessions
// and scoring only ever read it.
type Test struct {
	BaseModel
	Name            string     `gorm:"size:255;not null" json:"name"`
	TestDate        *time.Time `json:"testDate,omitempty"`
	Shift           string     `gorm:"size:50" json:"shift"`
	DurationMinutes int        `gorm:"not null" json:"durationMinutes"`
	IsPublished     bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
	Sections        []Section  `gorm:"foreignKey:TestID" json:"sections,omitempty"`
}

func (Test) TableName() string {
	return "tests"
}

// Section is a named contiguous partition of a test's question range.
// Position fixes the canonical order; QuestionCount and the mark scheme are
// configuration, never inferred from identifiers.
type Section struct {
	BaseModel
	TestID          uint    `gorm:"index;type:bigint unsigned" json:"testId"`
	Name            string  `gorm:"size:50;not null" json:"name"`
	Position        int     `gorm:"not null" json:"position"`
	QuestionCount   int     `gorm:"not null" json:"questionCount"`
	MarksPerCorrect float64 `gorm:"default:1" json:"marksPerCorrect"`
	MarksPerWrong   float64 `gorm:"default:0" json:"marksPerWrong"`
}

func (Section) TableName() string {
	return "sections"
}

// Question holds 4-6 labeled choices as columns, matching the paper layout.
// Number is 1-based within the owning section; the catalog loader rewrites it
// to the test-wide global number when assembling a paper.
//
// CorrectOption survives JSON round trips so the cached catalog can score;
// student-facing responses must go through a view that omits it.
type Question struct {
	BaseModel
	SectionID     uint   `gorm:"index;type:bigint unsigned" json:"sectionId"`
	Number        int    `gorm:"not null" json:"number"`
	Text          string `gorm:"type:text;not null" json:"text"`
	OptionA       string `gorm:"type:text;not null" json:"optionA"`
	OptionB       string `gorm:"type:text;not null" json:"optionB"`
	OptionC       string `gorm:"type:text;not null" json:"optionC"`
	OptionD       string `gorm:"type:text;not null" json:"optionD"`
	OptionE       string `gorm:"type:text" json:"optionE,omitempty"`
	OptionF       string `gorm:"type:text" json:"optionF,omitempty"`
	CorrectOption string `gorm:"size:1;not null" json:"correctOption"`
	FigureURL     string `gorm:"size:512" json:"figureUrl,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

type Option struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Options returns the labeled choices in order, skipping the optional E/F slots.
func (q *Question) Options() []Option {
	opts := []Option{
		{ID: "a", Content: q.OptionA},
		{ID: "b", Content: q.OptionB},
		{ID: "c", Content: q.OptionC},
		{ID: "d", Content: q.OptionD},
	}
	if q.OptionE != "" {
		opts = append(opts, Option{ID: "e", Content: q.OptionE})
	}
	if q.OptionF != "" {
		opts = append(opts, Option{ID: "f", Content: q.OptionF})
	}
	return opts
}

// HasOption reports whether label is a valid choice for this question.
func (q *Question) HasOption(label string) bool {
	switch label {
	case "a", "b", "c", "d":
		return true
	case "e":
		return q.OptionE != ""
	case "f":
		return q.OptionF != ""
	}
	return false
}
