package storage

import (
	"errors"
	"fmt"
	"hostel-server/models"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// IsNotFound reports whether err came from a lookup that matched no row.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func connectToDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("database url is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to the database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Migrate creates or updates every table the server uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.Facility{},
	)
}

func InitializeDB(dsn string) (*gorm.DB, error) {
	db, err := connectToDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// CloseDB releases the underlying connection pool.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func paginate(page, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern matches search as a literal substring.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

// likeAny ORs a case-insensitive LIKE over columns, one placeholder each.
func likeAny(columns ...string) string {
	clauses := make([]string, len(columns))
	for i, c := range columns {
		clauses[i] = "LOWER(" + c + `) LIKE ? ESCAPE '\'`
	}
	return strings.Join(clauses, " OR ")
}
