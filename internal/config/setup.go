package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Postgres SQLSTATEs that mean "already there" during setup. They are
// intercepted and treated as success so EnsureSchema stays idempotent.
const (
	pgDuplicateObject   = "42710"
	pgDuplicateDatabase = "42P04"
)

// EnsureSchema walks the five setup steps from a clean postgres cluster to
// a ready application database: role, database, tables, trigger, grants.
// Every step is safe to re-run. Steps needing superuser rights are skipped
// with a log line when no admin credentials are configured.
func EnsureSchema(cfg *Config) error {
	if cfg.Admin.User == "" {
		log.Println("No DB_ADMIN_USER configured, skipping role/database creation")
	} else {
		if err := ensureRoleAndDatabase(cfg); err != nil {
			return err
		}
	}

	db, err := openPostgres(cfg.GetDatabaseDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to application database: %w", err)
	}
	defer closeDB(db)

	if err := Migrate(db); err != nil {
		return err
	}

	if err := grantPrivileges(db, cfg); err != nil {
		return err
	}

	log.Println("✅ Schema setup completed")
	return nil
}

func ensureRoleAndDatabase(cfg *Config) error {
	admin, err := openPostgres(cfg.GetAdminDSN())
	if err != nil {
		return fmt.Errorf("failed to connect as admin: %w", err)
	}
	defer closeDB(admin)

	createRole := fmt.Sprintf(
		`CREATE ROLE %s WITH LOGIN PASSWORD %s`,
		quoteIdent(cfg.Database.User), quoteLiteral(cfg.Database.Password),
	)
	if err := admin.Exec(createRole).Error; err != nil {
		if !isAlreadyExists(err) {
			return fmt.Errorf("failed to create role: %w", err)
		}
		log.Printf("Role %q already exists, continuing", cfg.Database.User)
	}

	// CREATE DATABASE cannot run inside a transaction, Exec issues it as a
	// single statement which is fine.
	createDB := fmt.Sprintf(
		`CREATE DATABASE %s OWNER %s`,
		quoteIdent(cfg.Database.DBName), quoteIdent(cfg.Database.User),
	)
	if err := admin.Exec(createDB).Error; err != nil {
		if !isAlreadyExists(err) {
			return fmt.Errorf("failed to create database: %w", err)
		}
		log.Printf("Database %q already exists, continuing", cfg.Database.DBName)
	}

	grant := fmt.Sprintf(
		`GRANT ALL PRIVILEGES ON DATABASE %s TO %s`,
		quoteIdent(cfg.Database.DBName), quoteIdent(cfg.Database.User),
	)
	if err := admin.Exec(grant).Error; err != nil {
		return fmt.Errorf("failed to grant database privileges: %w", err)
	}

	return nil
}

func grantPrivileges(db *gorm.DB, cfg *Config) error {
	statements := []string{
		fmt.Sprintf(`GRANT ALL PRIVILEGES ON ALL TABLES IN SCHEMA public TO %s`,
			quoteIdent(cfg.Database.User)),
		fmt.Sprintf(`GRANT ALL PRIVILEGES ON ALL SEQUENCES IN SCHEMA public TO %s`,
			quoteIdent(cfg.Database.User)),
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to grant privileges: %w", err)
		}
	}

	return nil
}

func openPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func isAlreadyExists(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgDuplicateObject || pgErr.Code == pgDuplicateDatabase
	}
	return false
}

func quoteIdent(ident string) string {
	return `"` + ident + `"`
}

// quoteLiteral quotes a string literal for interpolation into DDL that
// cannot take bind parameters. Embedded single quotes are doubled.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
