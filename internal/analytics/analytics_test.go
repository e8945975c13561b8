// SPDX-License-Identifier: MIT
package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thatcatcamp/themery/internal/db"
	"github.com/thatcatcamp/themery/internal/models"
)

func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	conn, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	return NewRecorder(conn, true)
}

func TestRecordCopy(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	require.NoError(t, r.RecordCopy(ctx, "zinc", 0.5, "v4", SourceWeb))

	var got models.CopyEvent
	require.NoError(t, r.db.First(&got).Error)
	assert.Equal(t, EventCopyThemeCode, got.Name)
	assert.Equal(t, "zinc", got.Theme)
	assert.Equal(t, 0.5, got.Radius)
	assert.Equal(t, "v4", got.Format)
	assert.Equal(t, SourceWeb, got.Source)
}

func TestDisabledRecorderDropsEvents(t *testing.T) {
	r := newTestRecorder(t)
	r.enabled = false

	require.NoError(t, r.RecordCopy(context.Background(), "zinc", 0.5, "v3", SourceCLI))

	var count int64
	r.db.Model(&models.CopyEvent{}).Count(&count)
	assert.Zero(t, count)

	var nilRecorder *Recorder
	assert.False(t, nilRecorder.Enabled())
	assert.NoError(t, nilRecorder.RecordCopy(context.Background(), "zinc", 0.5, "v3", SourceCLI))
}

func TestSummarize(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	events := []struct {
		theme, format string
	}{
		{"zinc", "v4"}, {"zinc", "v3"}, {"rose", "v4"}, {"zinc", "cursor"}, {"blue", "v4"},
	}
	for _, e := range events {
		require.NoError(t, r.RecordCopy(ctx, e.theme, 0.5, e.format, SourceWeb))
	}
	require.NoError(t, r.RecordPublish(ctx, "dir:/tmp/out", 80, 4096, 2*time.Second, nil))
	require.NoError(t, r.RecordPublish(ctx, "s3://bucket", 3, 10, time.Second, errors.New("access denied")))

	s, err := r.Summarize(ctx, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, int64(5), s.Total)
	assert.Equal(t, []Count{{"zinc", 3}, {"blue", 1}, {"rose", 1}}, s.ByTheme)
	assert.Equal(t, Count{"v4", 3}, s.ByFormat[0])
	require.NotNil(t, s.LastPublish)
	assert.Equal(t, "s3://bucket", s.LastPublish.Target)
	assert.Equal(t, "access denied", s.LastPublish.Error)
}

func TestSummarizeSince(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	old := models.CopyEvent{Name: EventCopyThemeCode, Theme: "red", Format: "v3", CreatedAt: time.Now().Add(-48 * time.Hour)}
	require.NoError(t, r.db.Create(&old).Error)
	require.NoError(t, r.RecordCopy(ctx, "green", 1, "registry", SourceTUI))

	s, err := r.Summarize(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Total)
	assert.Equal(t, []Count{{"green", 1}}, s.ByTheme)
	assert.Nil(t, s.LastPublish)
}
