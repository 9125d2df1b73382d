// Bulk paper import.
//
// Reads a YAML paper definition (test metadata, sections, questions) and
// loads it through the same authoring path the admin API uses, so the
// publish-time completeness checks still apply.
//
// Usage: go run scripts/import_paper.go papers/full-mock-1.yaml
package main

import (
	"eamcetpro_backend/internal/config"
	"eamcetpro_backend/internal/repository"
	"eamcetpro_backend/internal/service"
	"eamcetpro_backend/pkg/database"
	"eamcetpro_backend/pkg/logger"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type paperFile struct {
	Name            string `yaml:"name"`
	TestDate        string `yaml:"testDate"`
	Shift           string `yaml:"shift"`
	DurationMinutes int    `yaml:"durationMinutes"`
	Publish         bool   `yaml:"publish"`
	Sections        []struct {
		Name            string  `yaml:"name"`
		Position        int     `yaml:"position"`
		QuestionCount   int     `yaml:"questionCount"`
		MarksPerCorrect float64 `yaml:"marksPerCorrect"`
		MarksPerWrong   float64 `yaml:"marksPerWrong"`
		Questions       []struct {
			Number        int    `yaml:"number"`
			Text          string `yaml:"text"`
			OptionA       string `yaml:"optionA"`
			OptionB       string `yaml:"optionB"`
			OptionC       string `yaml:"optionC"`
			OptionD       string `yaml:"optionD"`
			OptionE       string `yaml:"optionE"`
			OptionF       string `yaml:"optionF"`
			CorrectOption string `yaml:"correctOption"`
			FigureURL     string `yaml:"figureUrl"`
		} `yaml:"questions"`
	} `yaml:"sections"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: go run scripts/import_paper.go <paper.yaml>")
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("failed to read paper file: %v", err)
	}

	var paper paperFile
	if err := yaml.Unmarshal(data, &paper); err != nil {
		log.Fatalf("failed to parse paper file: %v", err)
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	tests := service.NewTestService(repository.NewTestRepository(db))

	req := service.TestRequest{
		Name:            paper.Name,
		Shift:           paper.Shift,
		DurationMinutes: paper.DurationMinutes,
	}
	if paper.TestDate != "" {
		date, err := time.Parse("2006-01-02", paper.TestDate)
		if err != nil {
			log.Fatalf("invalid testDate %q: %v", paper.TestDate, err)
		}
		req.TestDate = &date
	}

	test, err := tests.CreateTest(req)
	if err != nil {
		log.Fatalf("failed to create test: %v", err)
	}

	for _, sec := range paper.Sections {
		created, err := tests.AddSection(test.ID, service.SectionRequest{
			Name:            sec.Name,
			Position:        sec.Position,
			QuestionCount:   sec.QuestionCount,
			MarksPerCorrect: sec.MarksPerCorrect,
			MarksPerWrong:   sec.MarksPerWrong,
		})
		if err != nil {
			log.Fatalf("failed to create section %q: %v", sec.Name, err)
		}

		for _, q := range sec.Questions {
			_, err := tests.AddQuestion(created.ID, service.QuestionRequest{
				Number:        q.Number,
				Text:          q.Text,
				OptionA:       q.OptionA,
				OptionB:       q.OptionB,
				OptionC:       q.OptionC,
				OptionD:       q.OptionD,
				OptionE:       q.OptionE,
				OptionF:       q.OptionF,
				CorrectOption: q.CorrectOption,
				FigureURL:     q.FigureURL,
			})
			if err != nil {
				log.Fatalf("failed to create question %d in %q: %v", q.Number, sec.Name, err)
			}
		}
	}

	if paper.Publish {
		if _, err := tests.Publish(test.ID); err != nil {
			log.Fatalf("failed to publish: %v", err)
		}
	}

	log.Printf("imported %q (test id %d)", paper.Name, test.ID)
}
