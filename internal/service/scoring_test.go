package service

import (
	"eamcetpro_backend/internal/model"
	"eamcetpro_backend/internal/util"
	"math"
	"testing"
)

func makeSection(id uint, name string, count int, perCorrect, perWrong float64) model.Section {
	return model.Section{
		BaseModel:       model.BaseModel{ID: id},
		Name:            name,
		Position:        int(id),
		QuestionCount:   count,
		MarksPerCorrect: perCorrect,
		MarksPerWrong:   perWrong,
	}
}

func makeQuestion(sectionID uint, number int, correct string) model.Question {
	return model.Question{
		SectionID:     sectionID,
		Number:        number,
		Text:          "q",
		OptionA:       "A",
		OptionB:       "B",
		OptionC:       "C",
		OptionD:       "D",
		CorrectOption: correct,
	}
}

func TestScoreThreeQuestionPaper(t *testing.T) {
	sections := []model.Section{makeSection(1, "maths", 3, 1, 0)}
	questions := []model.Question{
		makeQuestion(1, 1, "a"),
		makeQuestion(1, 2, "b"),
		makeQuestion(1, 3, "c"),
	}
	answers := map[int]string{
		1: "a", // correct
		2: "c", // wrong
		// 3 unattempted
	}

	res, err := Score(answers, questions, sections)
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}

	if res.Correct != 1 || res.Wrong != 1 || res.Unattempted != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", res.Correct, res.Wrong, res.Unattempted)
	}
	if res.TotalMarks != 1 {
		t.Errorf("TotalMarks = %v, want 1", res.TotalMarks)
	}

	sec := res.SectionScores["maths"]
	if sec.Correct != 1 || sec.Wrong != 1 || sec.Unattempted != 1 || sec.Marks != 1 {
		t.Errorf("section score = %+v", sec)
	}
}

func TestScoreCountsAlwaysSumToPaperSize(t *testing.T) {
	sections := []model.Section{
		makeSection(1, "maths", 3, 1, 0),
		makeSection(2, "physics", 2, 1, 0),
	}
	questions := []model.Question{
		makeQuestion(1, 1, "a"),
		makeQuestion(1, 2, "b"),
		makeQuestion(1, 3, "c"),
		makeQuestion(2, 4, "d"),
		makeQuestion(2, 5, "a"),
	}

	cases := []map[int]string{
		{},
		{1: "a"},
		{1: "a", 2: "b", 3: "c", 4: "d", 5: "a"},
		{1: "b", 2: "c", 3: "d", 4: "a", 5: "b"},
		{2: "b", 5: "c"},
	}
	for i, answers := range cases {
		res, err := Score(answers, questions, sections)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if got := res.Correct + res.Wrong + res.Unattempted; got != len(questions) {
			t.Errorf("case %d: correct+wrong+unattempted = %d, want %d", i, got, len(questions))
		}
	}
}

func TestScoreNegativeMarkScheme(t *testing.T) {
	sections := []model.Section{makeSection(1, "maths", 2, 4, -1)}
	questions := []model.Question{
		makeQuestion(1, 1, "a"),
		makeQuestion(1, 2, "b"),
	}
	answers := map[int]string{1: "a", 2: "c"}

	res, err := Score(answers, questions, sections)
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if res.TotalMarks != 3 {
		t.Errorf("TotalMarks = %v, want 3 (4 - 1)", res.TotalMarks)
	}
}

func TestScoreRejectsUnknownOptionLabel(t *testing.T) {
	sections := []model.Section{makeSection(1, "maths", 1, 1, 0)}
	questions := []model.Question{makeQuestion(1, 1, "a")}

	// Option e is only valid when the question defines it.
	_, err := Score(map[int]string{1: "e"}, questions, sections)
	if err != util.ErrInvalidOption {
		t.Fatalf("err = %v, want ErrInvalidOption", err)
	}

	_, err = Score(map[int]string{1: "x"}, questions, sections)
	if err != util.ErrInvalidOption {
		t.Fatalf("err = %v, want ErrInvalidOption", err)
	}
}

func TestScoreAcceptsExtendedOptionsWhenDefined(t *testing.T) {
	q := makeQuestion(1, 1, "e")
	q.OptionE = "E"
	sections := []model.Section{makeSection(1, "maths", 1, 1, 0)}

	res, err := Score(map[int]string{1: "e"}, []model.Question{q}, sections)
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if res.Correct != 1 {
		t.Errorf("Correct = %d, want 1", res.Correct)
	}
}

func TestScoreUnknownSectionFails(t *testing.T) {
	sections := []model.Section{makeSection(1, "maths", 1, 1, 0)}
	questions := []model.Question{makeQuestion(99, 1, "a")}

	_, err := Score(map[int]string{}, questions, sections)
	if err != util.ErrDataIntegrity {
		t.Fatalf("err = %v, want ErrDataIntegrity", err)
	}
}

func TestScoreEmptySectionStillReported(t *testing.T) {
	sections := []model.Section{
		makeSection(1, "maths", 1, 1, 0),
		makeSection(2, "physics", 0, 1, 0),
	}
	questions := []model.Question{makeQuestion(1, 1, "a")}

	res, err := Score(map[int]string{}, questions, sections)
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if _, ok := res.SectionScores["physics"]; !ok {
		t.Error("empty section missing from SectionScores")
	}
}

func TestScoreFullMockLayout(t *testing.T) {
	sections := []model.Section{
		makeSection(1, "maths", 80, 1, 0),
		makeSection(2, "physics", 40, 1, 0),
		makeSection(3, "chemistry", 40, 1, 0),
	}

	var questions []model.Question
	number := 1
	for _, sec := range sections {
		for i := 0; i < sec.QuestionCount; i++ {
			questions = append(questions, makeQuestion(sec.ID, number, "a"))
			number++
		}
	}

	// Answer every maths question correctly, half of physics wrongly, skip
	// chemistry entirely.
	answers := make(map[int]string)
	for n := 1; n <= 80; n++ {
		answers[n] = "a"
	}
	for n := 81; n <= 100; n++ {
		answers[n] = "b"
	}

	res, err := Score(answers, questions, sections)
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if res.Correct != 80 || res.Wrong != 20 || res.Unattempted != 60 {
		t.Errorf("counts = %d/%d/%d, want 80/20/60", res.Correct, res.Wrong, res.Unattempted)
	}
	if math.Abs(res.TotalMarks-80) > 1e-9 {
		t.Errorf("TotalMarks = %v, want 80", res.TotalMarks)
	}
	if res.SectionScores["chemistry"].Unattempted != 40 {
		t.Errorf("chemistry unattempted = %d, want 40", res.SectionScores["chemistry"].Unattempted)
	}
}
