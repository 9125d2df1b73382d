package database

import (
	"eamcetpro_backend/internal/config"
	"eamcetpro_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Test{},
		&model.Section{},
		&model.Question{},
		&model.Result{},
		&model.UserAnalytics{},
		&model.Affiliate{},
		&model.AffiliateVisit{},
		&model.PaymentOrder{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaultSections(db)

	return db, nil
}

// seedDefaultSections gives a fresh database the canonical EAMCET paper
// layout so the first admin-created test has a sensible template to copy.
func seedDefaultSections(db *gorm.DB) {
	var count int64
	db.Model(&model.Test{}).Count(&count)
	if count > 0 {
		return
	}

	test := &model.Test{
		Name:            "EAMCET Full Mock 1",
		Shift:           "morning",
		DurationMinutes: 180,
	}
	if err := db.Create(test).Error; err != nil {
		return
	}

	sections := []model.Section{
		{TestID: test.ID, Name: "Mathematics", Position: 1, QuestionCount: 80, MarksPerCorrect: 1},
		{TestID: test.ID, Name: "Physics", Position: 2, QuestionCount: 40, MarksPerCorrect: 1},
		{TestID: test.ID, Name: "Chemistry", Position: 3, QuestionCount: 40, MarksPerCorrect: 1},
	}
	for _, s := range sections {
		db.Create(&s)
	}
}
