package service

import (
	"eamcetpro_backend/internal/model"
	"eamcetpro_backend/internal/util"
)

// ScoreResult is the output of evaluating one answer map against a paper.
// Every configured section gets a row, active or not.
type ScoreResult struct {
	SectionScores map[string]model.SectionScore `json:"sectionScores"`
	TotalMarks    float64                       `json:"totalMarks"`
	Correct       int                           `json:"correct"`
	Wrong         int                           `json:"wrong"`
	Unattempted   int                           `json:"unattempted"`
}

// Score evaluates final answers against the canonical key. Pure: no side
// effects, deterministic over its inputs.
//
// Per question: missing entry counts unattempted; a matching option earns the
// section's positive marks; anything else counts wrong and applies the
// section's (possibly zero) negative marks. Marks are float64 so a negative
// or fractional scheme needs only configuration.
//
// An answer naming an option the question does not have is a malformed
// submission and fails with ErrInvalidOption before anything is counted.
func Score(answers map[int]string, questions []model.Question, sections []model.Section) (*ScoreResult, error) {
	sectionByID := make(map[uint]*model.Section, len(sections))
	res := &ScoreResult{
		SectionScores: make(map[string]model.SectionScore, len(sections)),
	}
	for i := range sections {
		sectionByID[sections[i].ID] = &sections[i]
		res.SectionScores[sections[i].Name] = model.SectionScore{}
	}

	for i := range questions {
		q := &questions[i]
		if answer, ok := answers[q.Number]; ok && !q.HasOption(answer) {
			return nil, util.ErrInvalidOption
		}
	}

	for i := range questions {
		q := &questions[i]
		sec, ok := sectionByID[q.SectionID]
		if !ok {
			return nil, util.ErrDataIntegrity
		}

		score := res.SectionScores[sec.Name]
		answer, attempted := answers[q.Number]
		switch {
		case !attempted:
			score.Unattempted++
			res.Unattempted++
		case answer == q.CorrectOption:
			score.Correct++
			score.Marks += sec.MarksPerCorrect
			res.Correct++
		default:
			score.Wrong++
			score.Marks += sec.MarksPerWrong
			res.Wrong++
		}
		res.SectionScores[sec.Name] = score
	}

	for _, score := range res.SectionScores {
		res.TotalMarks += score.Marks
	}

	return res, nil
}
