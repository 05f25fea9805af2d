package database

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// SchemaVersion is stored in schema_meta by Migrate.
const SchemaVersion = 2

// DB wraps the gorm connection
type DB struct {
	*gorm.DB
}

// Open opens a connection to the SQLite corpus database
func Open(path string) (*DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_journal_mode=WAL"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return &DB{gormDB}, nil
}

// OpenMemory opens a private in-memory database. It holds a single
// connection, since every new connection to :memory: is a separate database.
func OpenMemory() (*DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return &DB{gormDB}, nil
}

// NewDBFromGorm wraps an existing gorm connection
func NewDBFromGorm(gormDB *gorm.DB) *DB {
	return &DB{gormDB}
}

// Migrate creates all tables and records the schema version
func (db *DB) Migrate() error {
	if err := db.AutoMigrate(&SchemaMeta{}, &PingshuiChar{}, &CilinOverride{}, &Cipai{}, &CipaiVariant{}); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	meta := SchemaMeta{Name: "version", Value: fmt.Sprint(SchemaVersion)}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&meta).Error
	if err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	return nil
}

// GetSchemaVersion returns the schema version recorded by Migrate
func (db *DB) GetSchemaVersion() (int, error) {
	var meta SchemaMeta
	if err := db.Where("name = ?", "version").First(&meta).Error; err != nil {
		return 0, err
	}
	var version int
	if _, err := fmt.Sscan(meta.Value, &version); err != nil {
		return 0, fmt.Errorf("invalid schema version %q: %w", meta.Value, err)
	}
	return version, nil
}

// Close closes the underlying connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
