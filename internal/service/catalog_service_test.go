package service

import (
	"eamcetpro_backend/internal/model"
	"eamcetpro_backend/internal/util"
	"encoding/json"
	"testing"
)

func sectionQuestions(sectionID uint, count int) []model.Question {
	out := make([]model.Question, count)
	for i := range out {
		out[i] = makeQuestion(sectionID, i+1, "a")
	}
	return out
}

func TestNumberQuestionsGlobalOffsets(t *testing.T) {
	sections := []model.Section{
		makeSection(1, "maths", 3, 1, 0),
		makeSection(2, "physics", 2, 1, 0),
		makeSection(3, "chemistry", 2, 1, 0),
	}
	var questions []model.Question
	questions = append(questions, sectionQuestions(1, 3)...)
	questions = append(questions, sectionQuestions(2, 2)...)
	questions = append(questions, sectionQuestions(3, 2)...)

	out, err := NumberQuestions(sections, questions)
	if err != nil {
		t.Fatalf("NumberQuestions returned error: %v", err)
	}
	if len(out) != 7 {
		t.Fatalf("len = %d, want 7", len(out))
	}
	for i, q := range out {
		if q.Number != i+1 {
			t.Errorf("out[%d].Number = %d, want %d", i, q.Number, i+1)
		}
	}

	// Physics starts after maths' 3 slots.
	if out[3].SectionID != 2 {
		t.Errorf("question 4 belongs to section %d, want 2", out[3].SectionID)
	}
	if out[5].SectionID != 3 {
		t.Errorf("question 6 belongs to section %d, want 3", out[5].SectionID)
	}
}

func TestNumberQuestionsRejectsDuplicates(t *testing.T) {
	sections := []model.Section{makeSection(1, "maths", 2, 1, 0)}
	questions := []model.Question{
		makeQuestion(1, 1, "a"),
		makeQuestion(1, 1, "b"),
	}
	if _, err := NumberQuestions(sections, questions); err != util.ErrDataIntegrity {
		t.Fatalf("err = %v, want ErrDataIntegrity", err)
	}
}

func TestNumberQuestionsRejectsHoles(t *testing.T) {
	sections := []model.Section{makeSection(1, "maths", 3, 1, 0)}
	questions := []model.Question{
		makeQuestion(1, 1, "a"),
		makeQuestion(1, 3, "b"),
	}
	if _, err := NumberQuestions(sections, questions); err != util.ErrDataIntegrity {
		t.Fatalf("err = %v, want ErrDataIntegrity", err)
	}
}

func TestNumberQuestionsRejectsOutOfRange(t *testing.T) {
	sections := []model.Section{makeSection(1, "maths", 2, 1, 0)}

	cases := []int{0, -1, 3}
	for _, n := range cases {
		questions := []model.Question{
			makeQuestion(1, 1, "a"),
			makeQuestion(1, n, "b"),
		}
		if _, err := NumberQuestions(sections, questions); err != util.ErrDataIntegrity {
			t.Errorf("number %d: err = %v, want ErrDataIntegrity", n, err)
		}
	}
}

func TestNumberQuestionsRejectsUnknownSection(t *testing.T) {
	sections := []model.Section{makeSection(1, "maths", 1, 1, 0)}
	questions := []model.Question{makeQuestion(42, 1, "a")}
	if _, err := NumberQuestions(sections, questions); err != util.ErrDataIntegrity {
		t.Fatalf("err = %v, want ErrDataIntegrity", err)
	}
}

// The Redis cache stores the catalog as JSON; a round trip must preserve the
// answer key, or every submission scored from a cache hit comes back wrong.
func TestCatalogCacheRoundTripScoresIdentically(t *testing.T) {
	sections := []model.Section{makeSection(1, "maths", 2, 1, 0)}
	fresh := &Catalog{
		Test:     model.Test{DurationMinutes: 10, IsPublished: true},
		Sections: sections,
		Questions: []model.Question{
			makeQuestion(1, 1, "a"),
			makeQuestion(1, 2, "c"),
		},
	}

	data, err := json.Marshal(fresh)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var cached Catalog
	if err := json.Unmarshal(data, &cached); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for i, q := range cached.Questions {
		if q.CorrectOption == "" {
			t.Fatalf("question %d lost its answer key in the cache round trip", i+1)
		}
	}

	answers := map[int]string{1: "a", 2: "b"}
	freshScore, err := Score(answers, fresh.Questions, fresh.Sections)
	if err != nil {
		t.Fatalf("scoring fresh catalog: %v", err)
	}
	cachedScore, err := Score(answers, cached.Questions, cached.Sections)
	if err != nil {
		t.Fatalf("scoring cached catalog: %v", err)
	}

	if cachedScore.Correct != freshScore.Correct || cachedScore.Wrong != freshScore.Wrong {
		t.Errorf("cached score = %d correct / %d wrong, fresh = %d correct / %d wrong",
			cachedScore.Correct, cachedScore.Wrong, freshScore.Correct, freshScore.Wrong)
	}
	if cachedScore.Correct != 1 || cachedScore.Wrong != 1 {
		t.Errorf("cached score = %d correct / %d wrong, want 1/1", cachedScore.Correct, cachedScore.Wrong)
	}
}

func TestCatalogSectionForNumber(t *testing.T) {
	c := &Catalog{
		Sections: []model.Section{
			makeSection(1, "maths", 80, 1, 0),
			makeSection(2, "physics", 40, 1, 0),
			makeSection(3, "chemistry", 40, 1, 0),
		},
	}

	cases := []struct {
		n    int
		want string
	}{
		{1, "maths"},
		{80, "maths"},
		{81, "physics"},
		{120, "physics"},
		{121, "chemistry"},
		{160, "chemistry"},
	}
	for _, tc := range cases {
		sec := c.SectionForNumber(tc.n)
		if sec == nil || sec.Name != tc.want {
			t.Errorf("SectionForNumber(%d) = %v, want %s", tc.n, sec, tc.want)
		}
	}

	if c.SectionForNumber(0) != nil || c.SectionForNumber(161) != nil {
		t.Error("out-of-range number resolved to a section")
	}

	if got := c.TotalQuestions(); got != 160 {
		t.Errorf("TotalQuestions = %d, want 160", got)
	}
}
