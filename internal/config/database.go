package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resume-tailor/internal/models"
)

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := cfg.GetDatabaseDSN()

	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("✅ Database connected successfully")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("✅ Database migration completed")

	return db, nil
}

// Migrate creates the tables if absent and installs the last_modified
// trigger. Safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Job{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := installLastModifiedTrigger(db); err != nil {
		return err
	}

	return nil
}

// installLastModifiedTrigger makes every UPDATE on jobs refresh
// last_modified inside the database, atomically with the update and
// regardless of what the statement sets. Only postgres has triggers; other
// dialects rely on the repository write path doing the same thing.
func installLastModifiedTrigger(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	statements := []string{
		`CREATE OR REPLACE FUNCTION set_last_modified() RETURNS trigger AS $$
		BEGIN
			NEW.last_modified = now();
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS jobs_set_last_modified ON jobs`,
		`CREATE TRIGGER jobs_set_last_modified
			BEFORE UPDATE ON jobs
			FOR EACH ROW EXECUTE FUNCTION set_last_modified()`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to install last_modified trigger: %w", err)
		}
	}

	return nil
}
