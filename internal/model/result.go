package model

import "time"

// SectionScore is the per-section breakdown stored inside a result.
type SectionScore struct {
	Correct     int     `json:"correct"`
	Wrong       int     `json:"wrong"`
	Unattempted int     `json:"unattempted"`
	Marks       float64 `json:"marks"`
}

// Result is created exactly once per completed attempt and never mutated.
type Result struct {
	UUIDBase
	UserID           uint                    `gorm:"index;type:bigint unsigned" json:"userId"`
	TestID           uint                    `gorm:"index;type:bigint unsigned" json:"testId"`
	SubmittedAt      time.Time               `json:"submittedAt"`
	TimeTakenSeconds int                     `json:"timeTakenSeconds"`
	Answers          map[int]string          `gorm:"serializer:json" json:"answers"`
	SectionScores    map[string]SectionScore `gorm:"serializer:json" json:"sectionScores"`
	TotalMarks       float64                 `json:"totalMarks"`
	CorrectAnswers   int                     `json:"correctAnswers"`
	WrongAnswers     int                     `json:"wrongAnswers"`
	Unattempted      int                     `json:"unattempted"`
}

func (Result) TableName() string {
	return "test_results"
}
