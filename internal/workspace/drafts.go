package workspace

import (
	"log/slog"
	"sync"

	"github.com/fentz26/kernelsim/internal/models"
)

// Drafts holds exactly one editable buffer per language plus the active
// language, and writes both through to storage on every change.
type Drafts struct {
	storage Storage
	log     *slog.Logger

	mu     sync.RWMutex
	texts  map[models.Language]string
	active models.Language

	// persistMu orders copy+Set so an older mirror never overwrites a newer one.
	persistMu sync.Mutex
}

// LoadDrafts restores drafts from storage. Absent or malformed records fall
// back to the built-in defaults, and languages missing from a stored mapping
// are backfilled, so every language has a buffer on return.
func LoadDrafts(s Storage, log *slog.Logger) *Drafts {
	if log == nil {
		log = discardLogger()
	}
	d := &Drafts{
		storage: s,
		log:     log,
		texts:   defaultTexts(),
		active:  models.LanguageCUDA,
	}

	if raw, ok, err := s.Get(KeyDrafts); err != nil {
		log.Warn("load drafts", "err", err)
	} else if ok {
		var stored map[string]string
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			log.Warn("drafts record malformed, using defaults", "err", err)
		} else {
			for k, text := range stored {
				lang := models.Language(k)
				if lang.Valid() {
					d.texts[lang] = text
				}
			}
		}
	}

	if raw, ok, err := s.Get(KeyActiveLanguage); err != nil {
		log.Warn("load active language", "err", err)
	} else if ok {
		var tag string
		if err := json.Unmarshal([]byte(raw), &tag); err == nil && models.Language(tag).Valid() {
			d.active = models.Language(tag)
		}
	}

	return d
}

func defaultTexts() map[models.Language]string {
	texts := make(map[models.Language]string, len(models.Languages()))
	for _, l := range models.Languages() {
		texts[l] = DefaultCode(l)
	}
	return texts
}

// Read returns the buffer for lang.
func (d *Drafts) Read(lang models.Language) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.texts[lang]
}

// Write replaces the buffer for lang and persists the whole mapping.
// Unknown languages are ignored.
func (d *Drafts) Write(lang models.Language, text string) {
	if !lang.Valid() {
		return
	}
	d.mu.Lock()
	d.texts[lang] = text
	d.mu.Unlock()

	d.persistTexts()
}

// Active returns the active language.
func (d *Drafts) Active() models.Language {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.active
}

// ActiveText returns the buffer of the active language.
func (d *Drafts) ActiveText() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.texts[d.active]
}

// SetActive switches the active language and persists it.
func (d *Drafts) SetActive(lang models.Language) {
	if !lang.Valid() {
		return
	}
	d.mu.Lock()
	d.active = lang
	d.mu.Unlock()

	d.persistMu.Lock()
	defer d.persistMu.Unlock()
	persist(d.storage, d.log, KeyActiveLanguage, string(d.Active()))
}

// LoadTemplate copies a built-in example into its language buffer and makes
// that language active.
func (d *Drafts) LoadTemplate(t models.Template) {
	d.Write(t.Language, t.Code)
	d.SetActive(t.Language)
}

// Reset restores the built-in default for lang.
func (d *Drafts) Reset(lang models.Language) {
	d.Write(lang, DefaultCode(lang))
}

// ResetAll forgets every stored draft and restores all defaults.
func (d *Drafts) ResetAll() {
	d.persistMu.Lock()
	defer d.persistMu.Unlock()

	d.mu.Lock()
	d.texts = defaultTexts()
	d.mu.Unlock()

	if err := d.storage.Remove(KeyDrafts); err != nil {
		d.log.Warn("remove drafts record", "err", err)
	}
}

func (d *Drafts) persistTexts() {
	d.persistMu.Lock()
	defer d.persistMu.Unlock()

	d.mu.RLock()
	snapshot := d.encodable()
	d.mu.RUnlock()

	persist(d.storage, d.log, KeyDrafts, snapshot)
}

// encodable must be called with mu held.
func (d *Drafts) encodable() map[string]string {
	out := make(map[string]string, len(d.texts))
	for l, text := range d.texts {
		out[string(l)] = text
	}
	return out
}
