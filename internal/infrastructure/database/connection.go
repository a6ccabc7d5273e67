package database

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lumen/internal/infrastructure/persistence/models"
	"lumen/internal/shared/config"
	appLogger "lumen/internal/shared/logger"
)

var (
	db   *gorm.DB
	dbMu sync.RWMutex
)

// Init opens the database connection. The driver is chosen from config:
// sqlite for a single-binary deployment, mysql when the site runs against a
// managed database.
func Init(cfg *config.DatabaseConfig) error {
	gormConfig := &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
		PrepareStmt: true,
	}

	var (
		database *gorm.DB
		err      error
	)
	switch cfg.Driver {
	case "sqlite", "":
		database, err = gorm.Open(sqlite.Open(cfg.GetDSN()), gormConfig)
	case "mysql":
		database, err = gorm.Open(mysql.Open(cfg.GetDSN()), gormConfig)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	dbMu.Lock()
	db = database
	dbMu.Unlock()

	appLogger.Info("database connection established",
		"driver", cfg.Driver,
		"database", cfg.Database)

	return nil
}

// Migrate applies the schema for all persistence models.
func Migrate() error {
	database := Get()
	if database == nil {
		return fmt.Errorf("database not initialized")
	}
	return database.AutoMigrate(
		&models.UserModel{},
		&models.UserRoleModel{},
		&models.PostModel{},
	)
}

// Get returns the database connection
func Get() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db
}

// Close closes the database connection
func Close() error {
	dbMu.RLock()
	currentDB := db
	dbMu.RUnlock()

	if currentDB == nil {
		return nil
	}
	sqlDB, err := currentDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
