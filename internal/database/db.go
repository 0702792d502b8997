package database

import (
	"fitclub-backend/internal/config"
	"fitclub-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) error {
	// TranslateError makes unique-constraint violations surface as
	// gorm.ErrDuplicatedKey regardless of the driver.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	return nil
}

// Migrate is separate from Init so the test setup can run it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Membership{},
		&models.CheckIn{},
		&models.Progress{},
	)
}
