// SPDX-License-Identifier: MIT
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/thatcatcamp/themery/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to the analytics database and migrates it. For sqlite the
// path is a file; for mysql it is a DSN.
func Open(dbType, dbPath string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch dbType {
	case "sqlite":
		if dbPath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(dbPath)
	case "mysql", "mariadb":
		dialector = mysql.Open(dbPath)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// every pooled connection to :memory: would see its own empty database
	if dbPath == ":memory:" {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	if err := conn.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return conn, nil
}

// InitDB opens the database and stores it as the process-wide connection
func InitDB(dbType, dbPath string) error {
	conn, err := Open(dbType, dbPath)
	if err != nil {
		return err
	}
	DB = conn
	return nil
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database connection (used for testing)
func SetDB(database *gorm.DB) {
	DB = database
}

// Close releases the underlying connection pool
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
