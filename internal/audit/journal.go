// Package audit keeps a durable journal of dispatches.
package audit

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fentz26/kernelsim/internal/backend"
	"github.com/fentz26/kernelsim/internal/models"
	"github.com/zeebo/xxh3"
)

// Writer persists dispatch records. *store.Store satisfies it.
type Writer interface {
	WriteDispatch(rec models.DispatchRecord) (*models.DispatchRecord, error)
}

// Journal records the outcome of every dispatch.
type Journal struct {
	w   Writer
	log *slog.Logger
}

// NewJournal creates a journal over w.
func NewJournal(w Writer, log *slog.Logger) *Journal {
	if log == nil {
		log = slog.Default()
	}
	return &Journal{w: w, log: log}
}

// Record journals one completed dispatch. Write failures are logged and
// otherwise ignored.
func (j *Journal) Record(lang models.Language, source string, result *models.RunResult, err error) {
	rec := Classify(lang, source, result, err)
	if _, werr := j.w.WriteDispatch(rec); werr != nil {
		j.log.Warn("journal dispatch", "err", werr)
	}
}

// Classify builds the record for a dispatch without writing it.
func Classify(lang models.Language, source string, result *models.RunResult, err error) models.DispatchRecord {
	rec := models.DispatchRecord{
		Language:   lang,
		SourceHash: HashSource(source),
	}

	var failure *backend.Failure
	switch {
	case err == nil:
		rec.Outcome = models.OutcomeSuccess
		rec.ExecutionTime = result.ExecutionTime()
	case errors.As(err, &failure):
		rec.Outcome = models.OutcomeFailure
		rec.Details = failure.Message
	default:
		rec.Outcome = models.OutcomeError
		rec.Details = err.Error()
	}
	return rec
}

// HashSource fingerprints source text.
func HashSource(source string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(source))
}
