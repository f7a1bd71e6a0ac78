// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package warmup keeps hot content lists cached so first paints after the
// revalidation window don't pay the CMS round-trip.
package warmup

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/codehub-dev/codehub-go/internal/cms"
)

// refreshTimeout bounds one warmup pass.
const refreshTimeout = 10 * time.Second

// Warmer periodically re-fetches the language list and each language's
// tutorial list into the content cache.
type Warmer struct {
	cms    *cms.Client
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new warmer.
func New(client *cms.Client, logger *slog.Logger) *Warmer {
	return &Warmer{
		cms:    client,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start runs one refresh immediately and then every minute, matching the
// cache revalidation window.
func (w *Warmer) Start() error {
	_, err := w.cron.AddFunc("* * * * *", w.refresh)
	if err != nil {
		return err
	}

	go w.refresh()
	w.cron.Start()
	w.logger.Info("content warmup started", "jobs", len(w.cron.Entries()))
	return nil
}

// Stop gracefully stops the warmer, waiting for a running refresh.
func (w *Warmer) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.logger.Info("content warmup stopped")
}

// refresh re-populates the cached lists. Fetch failures are already logged
// and surface as empty lists, so a CMS outage just means nothing to warm.
func (w *Warmer) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	languages := w.cms.Languages(ctx)
	for _, lang := range languages {
		w.cms.Tutorials(ctx, lang.ID)
	}

	w.logger.Debug("content warmup pass", "languages", len(languages))
}
