package workspace

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fentz26/kernelsim/internal/models"
	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
)

// Archive is the exclusive owner of saved snapshots. The in-memory list is the
// source of truth for the session; storage is a best-effort mirror.
type Archive struct {
	storage Storage
	drafts  *Drafts
	log     *slog.Logger
	now     func() time.Time

	mu        sync.RWMutex
	snapshots []models.Snapshot

	// fingerprints maps snapshot id to the xxh3 hash of its code.
	fingerprints map[string]uint64

	// persistMu orders copy+Set so an older list never overwrites a newer one.
	persistMu sync.Mutex
}

// LoadArchive restores the snapshot list from storage. A malformed record
// yields an empty archive; individual records without an id or with an
// unknown language are dropped.
func LoadArchive(s Storage, drafts *Drafts, log *slog.Logger) *Archive {
	if log == nil {
		log = discardLogger()
	}
	a := &Archive{
		storage: s,
		drafts:  drafts,
		log:     log,
		now:     time.Now,

		fingerprints: make(map[string]uint64),
	}

	raw, ok, err := s.Get(KeySnapshots)
	if err != nil {
		log.Warn("load snapshots", "err", err)
		return a
	}
	if !ok {
		return a
	}

	var stored []models.Snapshot
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Warn("snapshots record malformed, starting empty", "err", err)
		return a
	}
	for _, snap := range stored {
		if snap.ID == "" || !snap.Language.Valid() {
			continue
		}
		a.snapshots = append(a.snapshots, snap)
		a.fingerprints[snap.ID] = xxh3.HashString(snap.Code)
	}
	return a
}

// Save captures text as a new snapshot of lang. Blank text is rejected and
// returns false. Identical text may be saved any number of times.
func (a *Archive) Save(lang models.Language, text, lastMetric string) (*models.Snapshot, bool) {
	if strings.TrimSpace(text) == "" || !lang.Valid() {
		return nil, false
	}

	now := a.now()
	a.mu.Lock()
	n := a.countLocked(lang) + 1
	snap := models.Snapshot{
		ID:            uuid.New().String(),
		Name:          fmt.Sprintf("%s #%d", lang.Label(), n),
		Language:      lang,
		Code:          text,
		Description:   "Saved " + now.Format("2006-01-02 15:04:05"),
		UserSaved:     true,
		ExecutionTime: lastMetric,
		CreatedAt:     now,
	}
	a.snapshots = append(a.snapshots, snap)
	a.fingerprints[snap.ID] = xxh3.HashString(text)
	a.mu.Unlock()

	a.persist()
	return &snap, true
}

// Rename sets the name of snapshot id. Returns false if not found or if name
// is blank, keeping the previous name.
func (a *Archive) Rename(id, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	return a.mutate(id, func(s *models.Snapshot) { s.Name = name })
}

// RefreshMetric replaces the recorded metric of snapshot id.
func (a *Archive) RefreshMetric(id, metric string) bool {
	return a.mutate(id, func(s *models.Snapshot) { s.ExecutionTime = metric })
}

// Delete removes snapshot id, leaving all other snapshots untouched.
func (a *Archive) Delete(id string) bool {
	a.mu.Lock()
	idx := a.indexLocked(id)
	if idx < 0 {
		a.mu.Unlock()
		return false
	}
	a.snapshots = append(a.snapshots[:idx:idx], a.snapshots[idx+1:]...)
	delete(a.fingerprints, id)
	a.mu.Unlock()

	a.persist()
	return true
}

// List returns the snapshots of lang in creation order.
func (a *Archive) List(lang models.Language) []models.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []models.Snapshot
	for _, s := range a.snapshots {
		if s.Language == lang {
			out = append(out, s)
		}
	}
	return out
}

// All returns every snapshot in creation order.
func (a *Archive) All() []models.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]models.Snapshot, len(a.snapshots))
	copy(out, a.snapshots)
	return out
}

// Get returns snapshot id, or nil.
func (a *Archive) Get(id string) *models.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if idx := a.indexLocked(id); idx >= 0 {
		snap := a.snapshots[idx]
		return &snap
	}
	return nil
}

// LoadIntoDraft copies the snapshot's code into its language buffer and makes
// that language active.
func (a *Archive) LoadIntoDraft(snap models.Snapshot) {
	a.drafts.Write(snap.Language, snap.Code)
	a.drafts.SetActive(snap.Language)
}

// FindDuplicate returns the first snapshot of lang whose code is identical to
// text. It is informational only; Save never deduplicates.
func (a *Archive) FindDuplicate(lang models.Language, text string) *models.Snapshot {
	want := xxh3.HashString(text)

	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, s := range a.snapshots {
		if s.Language == lang && a.fingerprints[s.ID] == want && s.Code == text {
			snap := s
			return &snap
		}
	}
	return nil
}

func (a *Archive) mutate(id string, fn func(*models.Snapshot)) bool {
	a.mu.Lock()
	idx := a.indexLocked(id)
	if idx < 0 {
		a.mu.Unlock()
		return false
	}
	fn(&a.snapshots[idx])
	a.mu.Unlock()

	a.persist()
	return true
}

func (a *Archive) persist() {
	a.persistMu.Lock()
	defer a.persistMu.Unlock()

	a.mu.RLock()
	list := make([]models.Snapshot, len(a.snapshots))
	copy(list, a.snapshots)
	a.mu.RUnlock()

	persist(a.storage, a.log, KeySnapshots, list)
}

func (a *Archive) countLocked(lang models.Language) int {
	n := 0
	for _, s := range a.snapshots {
		if s.Language == lang {
			n++
		}
	}
	return n
}

func (a *Archive) indexLocked(id string) int {
	for i, s := range a.snapshots {
		if s.ID == id {
			return i
		}
	}
	return -1
}
