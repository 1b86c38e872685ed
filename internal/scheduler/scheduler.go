package scheduler

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fentz26/kernelsim/internal/backend"
	"github.com/fentz26/kernelsim/internal/dispatch"
	"github.com/fentz26/kernelsim/internal/logging"
	"github.com/fentz26/kernelsim/internal/models"
)

// Result is the outcome of re-dispatching one snapshot.
type Result struct {
	Snapshot models.Snapshot
	// Metric is the new execution time, "" when the backend reported none.
	Metric string
	Err    error
}

// Stats is a point-in-time view of the pool.
type Stats struct {
	ActiveWorkers int
	GlobalMax     int
	ByLanguage    map[models.Language]int
}

// Scheduler runs snapshots against the backend with bounded concurrency.
type Scheduler struct {
	backend  backend.Backend
	recorder dispatch.Recorder
	config   Config
	log      *slog.Logger

	// Worker pool state
	mu        sync.Mutex
	active    int
	langCount map[models.Language]int
}

// New creates a scheduler. recorder and log may be nil.
func New(b backend.Backend, recorder dispatch.Recorder, cfg Config, log *slog.Logger) *Scheduler {
	if cfg.GlobalMax < 1 {
		cfg.GlobalMax = 1
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Scheduler{
		backend:   b,
		recorder:  recorder,
		config:    cfg,
		log:       log,
		langCount: make(map[models.Language]int),
	}
}

// Run dispatches every snapshot and returns one Result per snapshot, in input
// order. Snapshots not started before ctx is cancelled carry ctx.Err().
func (sch *Scheduler) Run(ctx context.Context, snaps []models.Snapshot) []Result {
	results := make([]Result, len(snaps))

	global := make(chan struct{}, sch.config.GlobalMax)
	perLang := make(map[models.Language]chan struct{})
	for _, lang := range models.Languages() {
		perLang[lang] = make(chan struct{}, sch.config.LanguageLimit(lang))
	}

	var wg sync.WaitGroup
	for i, snap := range snaps {
		results[i].Snapshot = snap

		langSem, ok := perLang[snap.Language]
		if !ok {
			results[i].Err = backend.ErrUnknownLanguage
			continue
		}

		wg.Add(1)
		go func(i int, snap models.Snapshot) {
			defer wg.Done()

			if err := acquire(ctx, langSem); err != nil {
				results[i].Err = err
				return
			}
			defer release(langSem)
			if err := acquire(ctx, global); err != nil {
				results[i].Err = err
				return
			}
			defer release(global)

			results[i].Metric, results[i].Err = sch.runOne(ctx, snap)
		}(i, snap)
	}
	wg.Wait()
	return results
}

func (sch *Scheduler) runOne(ctx context.Context, snap models.Snapshot) (string, error) {
	sch.mu.Lock()
	sch.active++
	sch.langCount[snap.Language]++
	sch.mu.Unlock()

	defer func() {
		sch.mu.Lock()
		sch.active--
		sch.langCount[snap.Language]--
		sch.mu.Unlock()
	}()

	sch.log.Info("re-dispatching snapshot", "snapshot", snap.ID, "language", snap.Language)
	result, err := sch.backend.Simulate(ctx, snap.Language, snap.Code)
	if sch.recorder != nil {
		sch.recorder.Record(snap.Language, snap.Code, result, err)
	}
	if err != nil {
		sch.log.Warn("snapshot dispatch failed", "snapshot", snap.ID, "err", err)
		return "", err
	}
	return result.ExecutionTime(), nil
}

// GetStats returns current pool statistics.
func (sch *Scheduler) GetStats() Stats {
	sch.mu.Lock()
	defer sch.mu.Unlock()

	byLang := make(map[models.Language]int, len(sch.langCount))
	for k, v := range sch.langCount {
		byLang[k] = v
	}
	return Stats{
		ActiveWorkers: sch.active,
		GlobalMax:     sch.config.GlobalMax,
		ByLanguage:    byLang,
	}
}

func acquire(ctx context.Context, sem chan struct{}) error {
	select {
	case sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func release(sem chan struct{}) { <-sem }
