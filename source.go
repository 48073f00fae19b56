package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tejzpr/vibeque-hq/internal/config"
	"github.com/tejzpr/vibeque-hq/internal/db"
	"github.com/tejzpr/vibeque-hq/internal/queue"
	"github.com/tejzpr/vibeque-hq/internal/sheets"
	"github.com/tejzpr/vibeque-hq/internal/webserver"
)

// defaultLocalSheet names the rehearsal worksheet set when no sheet id is
// configured.
const defaultLocalSheet = "local"

// newPipeline builds the local pipeline for the configured source. The
// returned func releases the source.
func newPipeline(ctx context.Context) (*queue.Pipeline, func(), error) {
	if cfg.Source.Driver == config.SourceSQLite && cfg.Sheet.ID == "" {
		cfg.Sheet.ID = defaultLocalSheet
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	settings, err := cfg.Settings()
	if err != nil {
		return nil, nil, err
	}

	var (
		src     queue.Source
		release = func() {}
	)
	switch cfg.Source.Driver {
	case config.SourceSQLite:
		d, err := openRehearsalDB()
		if err != nil {
			return nil, nil, err
		}
		src = db.NewStore(d)
		release = func() { closeDB(d) }
	default:
		s, err := sheets.NewSource(ctx, sheets.Credentials{
			JSON: cfg.Credentials.JSON,
			File: cfg.Credentials.File,
		})
		if err != nil {
			logger.Error("sheets client unavailable", zap.Error(err))
			src = brokenSource{err: err}
			break
		}
		src = s
	}

	logger.Debug("pipeline ready",
		zap.String("source", cfg.Source.Driver),
		zap.String("tab", settings.Tab),
		zap.Stringer("cutoff", settings.Cutoff),
		zap.String("timezone", settings.Location.String()),
	)
	return queue.NewPipeline(src, settings, queue.WithLogger(logger)), release, nil
}

// newRunner returns a client for remote when set. With auto, a dashboard
// already answering on the configured address is used instead of a local
// pipeline.
func newRunner(ctx context.Context, remote string, auto bool) (queue.Runner, func(), error) {
	if remote != "" {
		return webserver.NewClient(remote), func() {}, nil
	}
	if auto {
		url := webserver.LocalURL(cfg.Server.Addr)
		probe, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if c := webserver.NewClient(url); c.Healthy(probe) {
			logger.Info("using running dashboard", zap.String("url", url))
			return c, func() {}, nil
		}
	}
	return newPipeline(ctx)
}

// brokenSource fails every fetch with the client setup error, so the
// dashboard still starts and shows the sync failure.
type brokenSource struct{ err error }

func (b brokenSource) Fetch(context.Context, string, string) (queue.Sheet, error) {
	return queue.Sheet{}, b.err
}

func openRehearsalDB() (*gorm.DB, error) {
	path := cfg.Source.SQLitePath
	if path == "" {
		var err error
		if path, err = db.DefaultPath(); err != nil {
			return nil, err
		}
	}
	d, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("rehearsal database opened", zap.String("path", path))
	return d, nil
}

func closeDB(d *gorm.DB) {
	if sqlDB, err := d.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
