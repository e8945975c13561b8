// SPDX-License-Identifier: MIT
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/thatcatcamp/themery/internal/models"
	"gorm.io/gorm"
)

// EventCopyThemeCode is recorded whenever an export payload is copied
const EventCopyThemeCode = "copy_theme_code"

// Event sources
const (
	SourceWeb = "web"
	SourceCLI = "cli"
	SourceTUI = "tui"
)

// Recorder stores copy events. A nil or disabled Recorder drops everything.
type Recorder struct {
	db      *gorm.DB
	enabled bool
}

// NewRecorder returns a Recorder writing to db
func NewRecorder(db *gorm.DB, enabled bool) *Recorder {
	return &Recorder{db: db, enabled: enabled}
}

// Enabled reports whether events are stored
func (r *Recorder) Enabled() bool {
	return r != nil && r.enabled && r.db != nil
}

// RecordCopy stores a copy_theme_code event
func (r *Recorder) RecordCopy(ctx context.Context, theme string, radius float64, format, source string) error {
	if !r.Enabled() {
		return nil
	}
	event := models.CopyEvent{
		Name:   EventCopyThemeCode,
		Theme:  theme,
		Radius: radius,
		Format: format,
		Source: source,
	}
	if err := r.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to record copy event: %w", err)
	}
	return nil
}

// RecordPublish stores the outcome of a publish run
func (r *Recorder) RecordPublish(ctx context.Context, target string, files int, bytes int64, took time.Duration, runErr error) error {
	if !r.Enabled() {
		return nil
	}
	run := models.PublishRun{
		Target:     target,
		Files:      files,
		Bytes:      bytes,
		DurationMS: took.Milliseconds(),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := r.db.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("failed to record publish run: %w", err)
	}
	return nil
}

// Count is one row of a grouped tally
type Count struct {
	Key   string `gorm:"column:label"`
	Total int64  `gorm:"column:total"`
}

// Summary aggregates copy events
type Summary struct {
	Total       int64
	ByTheme     []Count
	ByFormat    []Count
	LastPublish *models.PublishRun
}

// Summarize tallies copy events since the given time. A zero time means all.
func (r *Recorder) Summarize(ctx context.Context, since time.Time) (Summary, error) {
	var s Summary
	if r == nil || r.db == nil {
		return s, nil
	}

	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.CopyEvent{})
		if !since.IsZero() {
			q = q.Where("created_at >= ?", since)
		}
		return q
	}

	if err := base().Count(&s.Total).Error; err != nil {
		return s, fmt.Errorf("failed to count events: %w", err)
	}

	var err error
	if s.ByTheme, err = groupBy(base(), "theme"); err != nil {
		return s, err
	}
	if s.ByFormat, err = groupBy(base(), "format"); err != nil {
		return s, err
	}

	var last models.PublishRun
	res := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(1).Find(&last)
	if res.Error != nil {
		return s, fmt.Errorf("failed to load last publish: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		s.LastPublish = &last
	}

	return s, nil
}

func groupBy(q *gorm.DB, column string) ([]Count, error) {
	var rows []Count
	err := q.Select(column + " AS label, COUNT(*) AS total").
		Group(column).
		Order("total DESC, " + column + " ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group events by %s: %w", column, err)
	}
	return rows, nil
}
