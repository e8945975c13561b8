// SPDX-License-Identifier: MIT

// Package publish pre-renders every registry endpoint to static files, the
// way a static site build would, and writes them to a directory or bucket.
package publish

import (
	"context"
	"fmt"
	"path"
	"sync/atomic"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/thatcatcamp/themery/internal/analytics"
	"github.com/thatcatcamp/themery/internal/logger"
	"github.com/thatcatcamp/themery/internal/metrics"
	"github.com/thatcatcamp/themery/internal/themes"
	"golang.org/x/sync/errgroup"
)

// Target receives rendered files
type Target interface {
	// Kind is a short label for metrics, e.g. "dir" or "s3"
	Kind() string
	// String identifies the destination in logs and publish records
	String() string
	Put(ctx context.Context, name string, body []byte, contentType string) error
}

// File is one rendered endpoint
type File struct {
	Path string
	Body []byte
}

// Result summarizes a publish run
type Result struct {
	Files int
	Bytes int64
	Took  time.Duration
}

// Publisher renders the static parameter space and hands it to a Target
type Publisher struct {
	Target        Target
	Concurrency   int
	DefaultRadius float64
	Recorder      *analytics.Recorder
	Metrics       *metrics.Metrics
	Log           *logger.Logger
}

// Render builds every file without writing anything. For each theme and
// radius there is a registry.json and a theme.json; each theme also gets the
// radius-less theme.json served at the default radius.
func Render(defaultRadius float64) ([]File, error) {
	var files []File
	for _, p := range themes.StaticParams() {
		r, ok := themes.ParseStaticRadius(p.Radius)
		if !ok {
			return nil, fmt.Errorf("radius %q is not a static radius", p.Radius)
		}
		theme := themes.GetTheme(p.Theme)

		registry := themes.RegistryItem(theme, r)
		starter := themes.ThemeStarterJSON(theme, r)
		if registry == "" || starter == "" {
			return nil, fmt.Errorf("theme %q rendered empty", p.Theme)
		}
		dir := path.Join("themes", p.Theme, p.Radius, "r")
		files = append(files,
			File{Path: path.Join(dir, "registry.json"), Body: []byte(registry)},
			File{Path: path.Join(dir, "theme.json"), Body: []byte(starter)},
		)
	}

	for _, t := range themes.ColorThemes() {
		starter := themes.ThemeStarterJSON(t, defaultRadius)
		if starter == "" {
			return nil, fmt.Errorf("theme %q rendered empty", t.Name)
		}
		files = append(files, File{
			Path: path.Join("themes", t.Name, "r", "theme.json"),
			Body: []byte(starter),
		})
	}
	return files, nil
}

// Run renders and uploads every file. The first failed upload cancels the
// rest and is returned.
func (p *Publisher) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	var res Result

	files, err := Render(p.DefaultRadius)
	if err != nil {
		return res, err
	}

	limit := p.Concurrency
	if limit <= 0 {
		limit = 8
	}

	var written atomic.Int64
	var bytes atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, f := range files {
		g.Go(func() error {
			contentType := mimetype.Detect(f.Body).String()
			if err := p.Target.Put(gctx, f.Path, f.Body, contentType); err != nil {
				return fmt.Errorf("failed to publish %s: %w", f.Path, err)
			}
			written.Add(1)
			bytes.Add(int64(len(f.Body)))
			return nil
		})
	}
	runErr := g.Wait()

	res = Result{Files: int(written.Load()), Bytes: bytes.Load(), Took: time.Since(start)}
	p.Metrics.ObservePublished(p.Target.Kind(), res.Files)

	if err := p.Recorder.RecordPublish(ctx, p.Target.String(), res.Files, res.Bytes, res.Took, runErr); err != nil {
		p.Log.Error(err, "failed to record publish run")
	}

	if runErr != nil {
		p.Log.WithFields(map[string]any{"target": p.Target.String(), "files": res.Files}).Error(runErr, "publish failed")
		return res, runErr
	}

	p.Log.WithFields(map[string]any{
		"target":   p.Target.String(),
		"files":    res.Files,
		"bytes":    res.Bytes,
		"duration": res.Took.String(),
	}).Info("publish complete")
	return res, nil
}
