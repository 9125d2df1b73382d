package model

import "time"

type TrendPoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

type TimeManagement struct {
	AverageTimePerQuestion float64            `json:"averageTimePerQuestion"`
	SectionWiseTime        map[string]float64 `json:"sectionWiseTime"`
}

// UserAnalytics is the one mutable aggregate in the system: a per-user row of
// running averages folded incrementally on every submission, never recomputed
// from history. Version backs the optimistic write; two tabs submitting at
// once must not drop an update.
type UserAnalytics struct {
	BaseModel
	UserID             uint               `gorm:"uniqueIndex;type:bigint unsigned" json:"userId"`
	TotalTestsTaken    int                `json:"totalTestsTaken"`
	AverageScore       float64            `json:"averageScore"`
	SectionWiseAverage map[string]float64 `gorm:"serializer:json" json:"sectionWiseAverage"`
	ImprovementTrend   []TrendPoint       `gorm:"serializer:json" json:"improvementTrend"`
	WeakAreas          []string           `gorm:"serializer:json" json:"weakAreas"`
	StrongAreas        []string           `gorm:"serializer:json" json:"strongAreas"`
	TimeManagement     TimeManagement     `gorm:"serializer:json" json:"timeManagement"`
	Version            int                `gorm:"default:0" json:"-"`
}

func (UserAnalytics) TableName() string {
	return "user_analytics"
}
