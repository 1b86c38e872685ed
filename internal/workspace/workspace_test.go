package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fentz26/kernelsim/internal/models"
	"github.com/fentz26/kernelsim/internal/store"
)

// memStorage is an in-memory Storage for tests that do not need SQLite.
type memStorage struct {
	data   map[string]string
	setErr error
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string]string)}
}

func (m *memStorage) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStorage) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memStorage) Remove(key string) error {
	delete(m.data, key)
	return nil
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDraftsDefaultsFromEmptyStorage(t *testing.T) {
	d := LoadDrafts(newTestStore(t), nil)

	for _, lang := range models.Languages() {
		if d.Read(lang) == "" {
			t.Errorf("Expected default buffer for %s", lang)
		}
		if d.Read(lang) != DefaultCode(lang) {
			t.Errorf("Buffer for %s is not the built-in default", lang)
		}
	}
	if d.Active() != models.LanguageCUDA {
		t.Errorf("Expected cuda active by default, got %s", d.Active())
	}
}

func TestDraftsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	d := LoadDrafts(s, nil)

	texts := []string{"", "x", "int main(){}", "line1\nline2\n\ttab", "unicode ✔ 数据"}
	for _, text := range texts {
		d.Write(models.LanguagePython, text)
		if got := d.Read(models.LanguagePython); got != text {
			t.Errorf("Read after Write = %q, want %q", got, text)
		}
		reloaded := LoadDrafts(s, nil)
		if got := reloaded.Read(models.LanguagePython); got != text {
			t.Errorf("Reloaded Read = %q, want %q", got, text)
		}
	}
}

func TestDraftsReloadScenario(t *testing.T) {
	s := newTestStore(t)

	d := LoadDrafts(s, nil)
	d.Write(models.LanguageCPP, "int main(){}")
	d.SetActive(models.LanguageCPP)

	reloaded := LoadDrafts(s, nil)
	if got := reloaded.Read(models.LanguageCPP); got != "int main(){}" {
		t.Errorf("cpp buffer after reload = %q", got)
	}
	if got := reloaded.Read(models.LanguagePython); got != DefaultCode(models.LanguagePython) {
		t.Errorf("python buffer should keep its default, got %q", got)
	}
	if reloaded.Active() != models.LanguageCPP {
		t.Errorf("Expected cpp active after reload, got %s", reloaded.Active())
	}
	if reloaded.ActiveText() != "int main(){}" {
		t.Errorf("ActiveText = %q", reloaded.ActiveText())
	}
}

func TestDraftsMalformedFallsBackToDefaults(t *testing.T) {
	s := newMemStorage()
	s.data[KeyDrafts] = "{not json"
	s.data[KeyActiveLanguage] = "42"

	d := LoadDrafts(s, nil)
	for _, lang := range models.Languages() {
		if d.Read(lang) != DefaultCode(lang) {
			t.Errorf("Expected default for %s after malformed record", lang)
		}
	}
	if d.Active() != models.LanguageCUDA {
		t.Errorf("Expected cuda active after malformed record, got %s", d.Active())
	}
}

func TestDraftsBackfillsMissingLanguages(t *testing.T) {
	s := newMemStorage()
	s.data[KeyDrafts] = `{"cpp":"custom","fortran":"ignored"}`
	s.data[KeyActiveLanguage] = `"python"`

	d := LoadDrafts(s, nil)
	if d.Read(models.LanguageCPP) != "custom" {
		t.Errorf("Expected stored cpp buffer, got %q", d.Read(models.LanguageCPP))
	}
	if d.Read(models.LanguageCUDA) != DefaultCode(models.LanguageCUDA) {
		t.Error("Expected cuda to be backfilled with its default")
	}
	if d.Read(models.Language("fortran")) != "" {
		t.Error("Unknown languages must not be loaded")
	}
	if d.Active() != models.LanguagePython {
		t.Errorf("Expected python active, got %s", d.Active())
	}
}

func TestDraftsPersistenceFailureIsSilent(t *testing.T) {
	s := newMemStorage()
	s.setErr = errors.New("quota exceeded")

	d := LoadDrafts(s, nil)
	d.Write(models.LanguageCPP, "still here")
	if d.Read(models.LanguageCPP) != "still here" {
		t.Error("In-memory write must survive a storage failure")
	}
}

func TestDraftsResetAndTemplates(t *testing.T) {
	s := newTestStore(t)
	d := LoadDrafts(s, nil)

	d.Write(models.LanguageCUDA, "junk")
	d.Reset(models.LanguageCUDA)
	if d.Read(models.LanguageCUDA) != DefaultCode(models.LanguageCUDA) {
		t.Error("Reset should restore the default buffer")
	}

	tmpl := Templates(models.LanguageCUDA)[1]
	d.SetActive(models.LanguagePython)
	d.LoadTemplate(tmpl)
	if d.Active() != models.LanguageCUDA || d.Read(models.LanguageCUDA) != tmpl.Code {
		t.Error("LoadTemplate should activate the template language with its code")
	}

	d.Write(models.LanguageCPP, "custom")
	d.ResetAll()
	if d.Read(models.LanguageCPP) != DefaultCode(models.LanguageCPP) {
		t.Error("ResetAll should restore defaults")
	}
	if _, ok, _ := s.Get(KeyDrafts); ok {
		t.Error("ResetAll should remove the stored drafts record")
	}
}

func TestArchiveSaveRejectsBlankText(t *testing.T) {
	a := LoadArchive(newTestStore(t), nil, nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, ok := a.Save(models.LanguageCUDA, text, ""); ok {
			t.Errorf("Save(%q) should be rejected", text)
		}
	}
	if n := len(a.All()); n != 0 {
		t.Errorf("Expected no snapshots, got %d", n)
	}
}

func TestArchiveSaveNamesAndDuplicates(t *testing.T) {
	a := LoadArchive(newTestStore(t), nil, nil)

	first, ok := a.Save(models.LanguageCUDA, "kernel", "1.00ms")
	if !ok {
		t.Fatal("Save failed")
	}
	second, ok := a.Save(models.LanguageCUDA, "kernel", "")
	if !ok {
		t.Fatal("Saving identical text must be allowed")
	}
	other, _ := a.Save(models.LanguagePython, "print(1)", "")

	if first.ID == second.ID {
		t.Error("Snapshot ids must be unique")
	}
	if first.Name != "CUDA C++ #1" || second.Name != "CUDA C++ #2" {
		t.Errorf("Unexpected names %q, %q", first.Name, second.Name)
	}
	if other.Name != "Python 3.12 #1" {
		t.Errorf("Numbering is per language, got %q", other.Name)
	}
	if first.ExecutionTime != "1.00ms" || !first.UserSaved {
		t.Errorf("Unexpected snapshot fields: %+v", first)
	}
	if dup := a.FindDuplicate(models.LanguageCUDA, "kernel"); dup == nil || dup.ID != first.ID {
		t.Errorf("FindDuplicate should return the first identical snapshot, got %+v", dup)
	}
	if dup := a.FindDuplicate(models.LanguageCPP, "kernel"); dup != nil {
		t.Error("FindDuplicate must be scoped to the language")
	}
}

func TestArchiveDeleteKeepsOthers(t *testing.T) {
	s := newTestStore(t)
	a := LoadArchive(s, nil, nil)

	keep1, _ := a.Save(models.LanguageCPP, "a", "")
	target, _ := a.Save(models.LanguageCPP, "b", "12.00ms")
	keep2, _ := a.Save(models.LanguageCPP, "c", "")

	if !a.Delete(target.ID) {
		t.Fatal("Delete should find the snapshot")
	}
	if a.Delete(target.ID) {
		t.Error("Deleting twice should be a no-op")
	}

	list := a.List(models.LanguageCPP)
	if len(list) != 2 || list[0].ID != keep1.ID || list[1].ID != keep2.ID {
		t.Fatalf("Unexpected list after delete: %+v", list)
	}

	reloaded := LoadArchive(s, nil, nil)
	if got := reloaded.List(models.LanguageCPP); len(got) != 2 || got[0].ID != keep1.ID || got[1].ID != keep2.ID {
		t.Errorf("Persisted list mismatch: %+v", got)
	}
}

func TestArchiveRenameAndRefresh(t *testing.T) {
	s := newTestStore(t)
	a := LoadArchive(s, nil, nil)
	snap, _ := a.Save(models.LanguagePython, "print(1)", "")

	if !a.Rename(snap.ID, "baseline") {
		t.Fatal("Rename failed")
	}
	if a.Rename("missing", "x") {
		t.Error("Rename of unknown id should be a no-op")
	}
	before := a.Get(snap.ID).Name
	if a.Rename(snap.ID, "  ") {
		t.Error("Blank names should be rejected")
	}
	if got := a.Get(snap.ID).Name; got != before {
		t.Errorf("Blank rename changed name to %q, want %q", got, before)
	}
	if !a.RefreshMetric(snap.ID, "42.0 ms") {
		t.Fatal("RefreshMetric failed")
	}

	got := LoadArchive(s, nil, nil).Get(snap.ID)
	if got == nil || got.Name != "baseline" || got.ExecutionTime != "42.0 ms" {
		t.Errorf("Unexpected persisted snapshot %+v", got)
	}
}

func TestArchiveListCreationOrder(t *testing.T) {
	a := LoadArchive(newMemStorage(), nil, nil)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	a.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, text := range []string{"one", "two", "three"} {
		a.Save(models.LanguageCUDA, text, "")
	}
	list := a.List(models.LanguageCUDA)
	if len(list) != 3 || list[0].Code != "one" || list[2].Code != "three" {
		t.Fatalf("Unexpected order %+v", list)
	}
	if list[0].Description != "Saved 2026-01-01 00:01:00" {
		t.Errorf("Unexpected description %q", list[0].Description)
	}
}

func TestArchivePersistenceFailureIsSilent(t *testing.T) {
	s := newMemStorage()
	s.setErr = errors.New("storage unavailable")
	a := LoadArchive(s, nil, nil)

	snap, ok := a.Save(models.LanguageCUDA, "kernel", "")
	if !ok || snap == nil {
		t.Fatal("Save must succeed even when persistence fails")
	}
	if !a.Rename(snap.ID, "renamed") || !a.Delete(snap.ID) {
		t.Error("Rename/Delete must succeed even when persistence fails")
	}
}

func TestArchiveMalformedAndInvalidRecords(t *testing.T) {
	s := newMemStorage()
	s.data[KeySnapshots] = "[{"
	if n := len(LoadArchive(s, nil, nil).All()); n != 0 {
		t.Errorf("Expected empty archive from malformed record, got %d", n)
	}

	s.data[KeySnapshots] = `[{"id":"a","language":"cuda","code":"x"},{"id":"","language":"cpp"},{"id":"b","language":"rust"}]`
	all := LoadArchive(s, nil, nil).All()
	if len(all) != 1 || all[0].ID != "a" {
		t.Errorf("Expected only the valid record, got %+v", all)
	}
}

func TestArchiveLoadIntoDraft(t *testing.T) {
	s := newTestStore(t)
	d := LoadDrafts(s, nil)
	a := LoadArchive(s, d, nil)

	snap, _ := a.Save(models.LanguagePython, "print('saved')", "")
	d.Write(models.LanguagePython, "print('edited')")

	a.LoadIntoDraft(*snap)
	if d.Active() != models.LanguagePython {
		t.Errorf("Expected python active, got %s", d.Active())
	}
	if d.Read(models.LanguagePython) != "print('saved')" {
		t.Errorf("Unexpected buffer %q", d.Read(models.LanguagePython))
	}
}

func TestArchiveConcurrentMutationsPersistLatest(t *testing.T) {
	s := newTestStore(t)
	a := LoadArchive(s, nil, nil)

	var ids []string
	for i := 0; i < 8; i++ {
		snap, _ := a.Save(models.LanguageCUDA, fmt.Sprintf("kernel %d", i), "")
		ids = append(ids, snap.ID)
	}

	for round := 0; round < 20; round++ {
		var wg sync.WaitGroup
		for i, id := range ids {
			wg.Add(1)
			go func(i int, id string) {
				defer wg.Done()
				a.RefreshMetric(id, fmt.Sprintf("%d.%d ms", round, i))
			}(i, id)
		}
		wg.Wait()

		reloaded := LoadArchive(s, nil, nil)
		for i, id := range ids {
			want := fmt.Sprintf("%d.%d ms", round, i)
			if got := reloaded.Get(id); got == nil || got.ExecutionTime != want {
				t.Fatalf("Round %d: persisted snapshot %d has %+v, want metric %q", round, i, got, want)
			}
		}
	}
}

func TestDraftsConcurrentWritesPersistLatest(t *testing.T) {
	s := newTestStore(t)
	d := LoadDrafts(s, nil)

	for round := 0; round < 20; round++ {
		var wg sync.WaitGroup
		for _, lang := range models.Languages() {
			wg.Add(1)
			go func(lang models.Language) {
				defer wg.Done()
				d.Write(lang, fmt.Sprintf("%s round %d", lang, round))
			}(lang)
		}
		wg.Wait()

		reloaded := LoadDrafts(s, nil)
		for _, lang := range models.Languages() {
			if got, want := reloaded.Read(lang), fmt.Sprintf("%s round %d", lang, round); got != want {
				t.Fatalf("Round %d: persisted %s draft is %q, want %q", round, lang, got, want)
			}
		}
	}
}

func TestArchiveFindDuplicateAfterReload(t *testing.T) {
	s := newTestStore(t)
	a := LoadArchive(s, nil, nil)
	first, _ := a.Save(models.LanguageCPP, "int main() {}", "")
	a.Save(models.LanguageCPP, "int main() { return 1; }", "")

	reloaded := LoadArchive(s, nil, nil)
	if dup := reloaded.FindDuplicate(models.LanguageCPP, "int main() {}"); dup == nil || dup.ID != first.ID {
		t.Errorf("Expected fingerprint match after reload, got %+v", dup)
	}
	if dup := reloaded.FindDuplicate(models.LanguageCPP, "int main() {  }"); dup != nil {
		t.Errorf("Different code must not match, got %+v", dup)
	}

	if !reloaded.Delete(first.ID) {
		t.Fatal("Delete failed")
	}
	if dup := reloaded.FindDuplicate(models.LanguageCPP, "int main() {}"); dup != nil {
		t.Errorf("Deleted snapshot must not match, got %+v", dup)
	}
}
