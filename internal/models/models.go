// SPDX-License-Identifier: MIT
package models

import (
	"time"
)

// CopyEvent records one export copied from the customizer, the CLI or the
// terminal customizer
type CopyEvent struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null;default:copy_theme_code"`
	Theme     string    `gorm:"not null;index"`
	Radius    float64   `gorm:"not null"`
	Format    string    `gorm:"not null;index"` // "v3", "v4", "registry", "cursor", "windsurf"
	Source    string    `gorm:"default:web"`    // "web", "cli", "tui"
	CreatedAt time.Time `gorm:"index"`
}

// PublishRun records one static publish of the registry endpoints
type PublishRun struct {
	ID         uint   `gorm:"primaryKey"`
	Target     string `gorm:"not null"` // "dir:<path>" or "s3://bucket/prefix"
	Files      int
	Bytes      int64
	DurationMS int64
	Error      string `gorm:"type:text"`
	CreatedAt  time.Time
}

// TableName overrides for consistent naming
func (CopyEvent) TableName() string {
	return "copy_events"
}

func (PublishRun) TableName() string {
	return "publish_runs"
}

// All lists every model for migration
func All() []interface{} {
	return []interface{}{&CopyEvent{}, &PublishRun{}}
}
