// Package dispatch drives one request/response cycle at a time against the
// simulation backend and fans the outcome out to the log buffer and the
// latest-result slot.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fentz26/kernelsim/internal/backend"
	"github.com/fentz26/kernelsim/internal/logbuf"
	"github.com/fentz26/kernelsim/internal/models"
)

// DefaultLinger is how long the visualization flag outlives the busy flag.
const DefaultLinger = 1500 * time.Millisecond

// Source supplies the buffer to dispatch. *workspace.Drafts satisfies it.
type Source interface {
	Active() models.Language
	ActiveText() string
}

// Recorder is told about every dispatch that was not superseded.
// *audit.Journal satisfies it.
type Recorder interface {
	Record(lang models.Language, source string, result *models.RunResult, err error)
}

// Options tunes an Orchestrator.
type Options struct {
	// Linger delays clearing the visualization flag after completion.
	Linger   time.Duration
	Logger   *slog.Logger
	Recorder Recorder
}

// Outcome is delivered once per dispatch.
type Outcome struct {
	Generation uint64
	Language   models.Language
	Result     *models.RunResult
	Err        error
	// Stale is set when a newer dispatch started before this one resolved;
	// such outcomes do not touch any state.
	Stale bool
}

// Orchestrator owns the in-flight and latest-result state.
type Orchestrator struct {
	backend backend.Backend
	source  Source
	logs    *logbuf.Buffer
	linger  time.Duration
	log     *slog.Logger
	rec     Recorder

	mu          sync.Mutex
	generation  uint64
	busy        bool
	visualizing bool
	result      *models.RunResult
	lingerTimer *time.Timer
}

// New creates an orchestrator.
func New(b backend.Backend, src Source, logs *logbuf.Buffer, opts Options) *Orchestrator {
	if opts.Linger <= 0 {
		opts.Linger = DefaultLinger
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{
		backend: b,
		source:  src,
		logs:    logs,
		linger:  opts.Linger,
		log:     opts.Logger,
		rec:     opts.Recorder,
	}
}

// Run starts a dispatch of the active buffer. It returns false without doing
// anything while another dispatch is in flight. The previous result and log
// are discarded before the backend is called. The returned channel receives
// exactly one Outcome and is then closed.
func (o *Orchestrator) Run(ctx context.Context) (<-chan Outcome, bool) {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		o.log.Debug("dispatch ignored, already running")
		return nil, false
	}

	o.generation++
	gen := o.generation
	o.busy = true
	o.visualizing = true
	o.result = nil
	if o.lingerTimer != nil {
		o.lingerTimer.Stop()
		o.lingerTimer = nil
	}

	lang := o.source.Active()
	src := o.source.ActiveText()
	o.logs.Reset(models.LogLine{
		Type:    models.LineInfo,
		Content: fmt.Sprintf("Compiling and running %s on the simulation engine...", lang.Label()),
	})
	o.mu.Unlock()

	o.log.Info("dispatch started", "generation", gen, "language", lang, "bytes", len(src))

	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		result, err := o.backend.Simulate(ctx, lang, src)
		out := o.complete(gen, lang, result, err)
		if !out.Stale && o.rec != nil {
			o.rec.Record(lang, src, out.Result, out.Err)
		}
		ch <- out
	}()
	return ch, true
}

func (o *Orchestrator) complete(gen uint64, lang models.Language, result *models.RunResult, err error) Outcome {
	out := Outcome{Generation: gen, Language: lang, Result: result, Err: err}

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		o.log.Warn("discarding stale dispatch", "generation", gen, "current", o.generation)
		out.Stale = true
		return out
	}

	o.busy = false
	o.lingerTimer = time.AfterFunc(o.linger, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.generation == gen {
			o.visualizing = false
		}
	})

	if err != nil {
		out.Result = nil
		var failure *backend.Failure
		if errors.As(err, &failure) {
			o.logs.Error("Compilation/execution failed: " + failure.Message)
		} else {
			o.logs.Error("Fatal error during simulation: " + err.Error())
		}
		o.log.Warn("dispatch failed", "generation", gen, "language", lang, "err", err)
		return out
	}
	if result == nil {
		result = &models.RunResult{}
		out.Result = result
	}

	o.result = result
	o.logs.Success("Execution succeeded")
	if result.Output != "" {
		o.logs.Stdout(result.Output)
	}
	if t := result.ExecutionTime(); t != "" {
		o.logs.Info("Simulated execution time: " + t)
	}
	o.log.Info("dispatch succeeded", "generation", gen, "language", lang, "execution_time", result.ExecutionTime())
	return out
}

// Busy reports whether a dispatch is in flight. Input that would start a
// dispatch should be disabled while it is true.
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// Visualizing reports whether the trailing visual cue is active. It stays
// set for the linger period after Busy clears.
func (o *Orchestrator) Visualizing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visualizing
}

// Result returns the latest successful result, or nil.
func (o *Orchestrator) Result() *models.RunResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

// LastMetric returns the execution time of the latest result, or "".
func (o *Orchestrator) LastMetric() string {
	return o.Result().ExecutionTime()
}

// Linger returns the configured visualization linger.
func (o *Orchestrator) Linger() time.Duration {
	return o.linger
}
