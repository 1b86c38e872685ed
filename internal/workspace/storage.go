// Package workspace owns the per-language drafts and the snapshot archive,
// both mirrored to durable key/value storage.
package workspace

import (
	"io"
	"log/slog"

	jsoniter "github.com/json-iterator/go"
)

// Storage keys. Each key has exactly one owning component.
const (
	KeyActiveLanguage = "kernelsim.activeLanguage"
	KeyDrafts         = "kernelsim.drafts"
	KeySnapshots      = "kernelsim.snapshots"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Storage is the durable key/value surface. *store.Store satisfies it.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// persist marshals v and writes it under key. Failures are logged, never returned.
func persist(s Storage, log *slog.Logger, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Warn("encode workspace record", "key", key, "err", err)
		return
	}
	if err := s.Set(key, string(data)); err != nil {
		log.Warn("persist workspace record", "key", key, "err", err)
	}
}
