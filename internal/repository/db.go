package repository

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskpad/taskpad-go/internal/model"
)

// NewDB opens a database connection pool for the given DSN. The driver is
// picked from the DSN shape: postgres:// URLs use Postgres, DSNs with a
// tcp() host use MySQL, anything else is treated as a SQLite file path.
func NewDB(dsn string) (*gorm.DB, error) {
	dialector := dialectorFor(dsn)
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if dialector.Name() == "sqlite" {
		// SQLite permits one writer at a time; extra connections turn write
		// contention into SQLITE_BUSY errors. A single connection also keeps
		// every caller on the same :memory: database.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	return db, nil
}

func dialectorFor(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.Open(dsn)
	case strings.Contains(dsn, "@tcp("):
		return mysql.Open(dsn)
	default:
		return sqlite.Open(dsn)
	}
}

// Migrate creates or updates the schema for all application models. MySQL
// compares utf8mb4 case-insensitively by default, so the username column is
// pinned to a binary collation there; SQLite and Postgres already compare
// byte-exact.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		return err
	}
	if db.Dialector.Name() == "mysql" {
		return db.Exec("ALTER TABLE users MODIFY username VARCHAR(191) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL").Error
	}
	return nil
}
