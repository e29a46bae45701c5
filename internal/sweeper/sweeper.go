// Package sweeper wires up the cron job that periodically closes stale
// postings. A posting left active past its TTL stops accepting applications;
// it stays listable so applicants can still see their history against it.
package sweeper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/radzdev1120/job-works/internal/board"
)

// Sweeper wraps robfig/cron and manages the close-stale-postings loop.
type Sweeper struct {
	cron  *cron.Cron
	store board.Store
	ttl   time.Duration
	spec  string // cron spec, e.g. "@every 24h"
}

// New creates a Sweeper that fires every intervalHours hours and closes
// active postings older than ttlDays days.
func New(store board.Store, intervalHours, ttlDays int) *Sweeper {
	return &Sweeper{
		cron:  cron.New(cron.WithLogger(cron.DefaultLogger)),
		store: store,
		ttl:   time.Duration(ttlDays) * 24 * time.Hour,
		spec:  fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one sweep
// immediately so a restart never leaves stale postings open for a full
// interval.
func (s *Sweeper) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[sweeper] Cron started — spec: %s, ttl: %s", s.spec, s.ttl)

	go s.run(ctx)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Sweeper) Stop() {
	s.cron.Stop()
	log.Println("[sweeper] Cron stopped")
}

func (s *Sweeper) run(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.ttl)
	closed, err := s.store.CloseJobsBefore(ctx, cutoff)
	if err != nil {
		log.Printf("[sweeper] CloseJobsBefore error: %v", err)
		return
	}
	if closed > 0 {
		log.Printf("[sweeper] Closed %d stale posting(s)", closed)
	}
}
