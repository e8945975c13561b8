// SPDX-License-Identifier: MIT
package models

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(All()...); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func TestCreateCopyEvent(t *testing.T) {
	db := setupTestDB(t)

	event := CopyEvent{Theme: "rose", Radius: 0.75, Format: "v4"}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	if event.ID == 0 {
		t.Error("Event ID should be set after creation")
	}

	var got CopyEvent
	if err := db.First(&got, event.ID).Error; err != nil {
		t.Fatalf("Failed to load event: %v", err)
	}
	if got.Name != "copy_theme_code" {
		t.Errorf("Expected default name copy_theme_code, got %q", got.Name)
	}
	if got.Source != "web" {
		t.Errorf("Expected default source web, got %q", got.Source)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestTableNames(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"copy_events", "publish_runs"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s not created", table)
		}
	}
}

func TestCreatePublishRun(t *testing.T) {
	db := setupTestDB(t)

	run := PublishRun{Target: "dir:/tmp/out", Files: 80, Bytes: 1 << 20, DurationMS: 120}
	if err := db.Create(&run).Error; err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}

	var count int64
	db.Model(&PublishRun{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 run, got %d", count)
	}
}
