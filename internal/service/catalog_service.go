package service

import (
	"context"
	"eamcetpro_backend/internal/config"
	"eamcetpro_backend/internal/model"
	"eamcetpro_backend/internal/repository"
	"eamcetpro_backend/internal/util"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Catalog is a fully assembled paper: sections in canonical order and
// questions renumbered test-wide and sorted.
type Catalog struct {
	Test      model.Test       `json:"test"`
	Sections  []model.Section  `json:"sections"`
	Questions []model.Question `json:"questions"`
}

// TotalQuestions sums the configured section sizes.
func (c *Catalog) TotalQuestions() int {
	total := 0
	for _, s := range c.Sections {
		total += s.QuestionCount
	}
	return total
}

// SectionForNumber resolves a global question number to its section.
func (c *Catalog) SectionForNumber(n int) *model.Section {
	offset := 0
	for i := range c.Sections {
		if n > offset && n <= offset+c.Sections[i].QuestionCount {
			return &c.Sections[i]
		}
		offset += c.Sections[i].QuestionCount
	}
	return nil
}

type CatalogService struct {
	Repo     *repository.TestRepository
	Redis    *redis.Client
	CacheTTL time.Duration
}

func NewCatalogService(repo *repository.TestRepository, rdb *redis.Client, cfg *config.Config) *CatalogService {
	return &CatalogService{
		Repo:     repo,
		Redis:    rdb,
		CacheTTL: cfg.Exam.CatalogCacheTTL,
	}
}

// LoadCatalog resolves a test into its sections and globally numbered
// questions. Published tests are immutable, so the assembled catalog is
// cached in Redis.
func (s *CatalogService) LoadCatalog(ctx context.Context, testID uint) (*Catalog, error) {
	cacheKey := fmt.Sprintf("catalog:%d", testID)
	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached Catalog
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	test, err := s.Repo.FindWithSections(testID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}
	if !test.IsPublished {
		return nil, util.ErrTestNotPublished
	}

	sectionIDs := make([]uint, len(test.Sections))
	for i, sec := range test.Sections {
		sectionIDs[i] = sec.ID
	}

	questions, err := s.Repo.QuestionsBySections(sectionIDs)
	if err != nil {
		return nil, err
	}

	numbered, err := NumberQuestions(test.Sections, questions)
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{
		Test:      *test,
		Sections:  test.Sections,
		Questions: numbered,
	}

	if s.Redis != nil {
		if data, err := json.Marshal(catalog); err == nil {
			s.Redis.Set(ctx, cacheKey, data, s.CacheTTL)
		}
	}

	return catalog, nil
}

// NumberQuestions rewrites intra-section numbers to global ones by offsetting
// each question with the cumulative size of the preceding sections (canonical
// order). The section-size table is authoritative: a section whose stored
// questions do not line up exactly with 1..QuestionCount fails with
// ErrDataIntegrity rather than producing a silently misnumbered paper.
func NumberQuestions(sections []model.Section, questions []model.Question) ([]model.Question, error) {
	offsets := make(map[uint]int, len(sections))
	sizes := make(map[uint]int, len(sections))
	offset := 0
	for _, sec := range sections {
		offsets[sec.ID] = offset
		sizes[sec.ID] = sec.QuestionCount
		offset += sec.QuestionCount
	}

	seen := make(map[uint]map[int]bool, len(sections))
	out := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		base, ok := offsets[q.SectionID]
		if !ok {
			return nil, util.ErrDataIntegrity
		}
		if q.Number < 1 || q.Number > sizes[q.SectionID] {
			return nil, util.ErrDataIntegrity
		}
		if seen[q.SectionID] == nil {
			seen[q.SectionID] = make(map[int]bool)
		}
		if seen[q.SectionID][q.Number] {
			return nil, util.ErrDataIntegrity
		}
		seen[q.SectionID][q.Number] = true

		q.Number = base + q.Number
		out = append(out, q)
	}

	// Every slot must be filled; partial sections would leave holes in the
	// global sequence.
	for _, sec := range sections {
		if len(seen[sec.ID]) != sec.QuestionCount {
			return nil, util.ErrDataIntegrity
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}
