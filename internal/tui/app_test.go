package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fentz26/kernelsim/internal/config"
	"github.com/fentz26/kernelsim/internal/dispatch"
	"github.com/fentz26/kernelsim/internal/logbuf"
	"github.com/fentz26/kernelsim/internal/models"
	"github.com/fentz26/kernelsim/internal/workspace"
)

type memStorage map[string]string

func (m memStorage) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memStorage) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m memStorage) Remove(key string) error {
	delete(m, key)
	return nil
}

type fakeBackend struct {
	result *models.RunResult
	err    error
}

func (f fakeBackend) Simulate(ctx context.Context, lang models.Language, source string) (*models.RunResult, error) {
	return f.result, f.err
}

func newTestApp(t *testing.T, b fakeBackend) *App {
	t.Helper()
	s := memStorage{}
	drafts := workspace.LoadDrafts(s, nil)
	archive := workspace.LoadArchive(s, drafts, nil)
	logs := logbuf.New()
	orch := dispatch.New(b, drafts, logs, dispatch.Options{Linger: 10 * time.Millisecond})

	a := New(Deps{
		Drafts:       drafts,
		Archive:      archive,
		Orchestrator: orch,
		Logs:         logs,
		UI:           config.UIConfig{MinLogHeight: 4, LogHeight: 8},
	})
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return a
}

// collect runs cmd and expands batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestParseCommand(t *testing.T) {
	name, args := parseCommand("  LANG   cpp ")
	if name != "lang" || len(args) != 1 || args[0] != "cpp" {
		t.Errorf("Unexpected parse: %q %v", name, args)
	}
	if name, _ := parseCommand("   "); name != "" {
		t.Errorf("Expected empty name, got %q", name)
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"rnu", "run", true},
		{"sav", "save", true},
		{"snapshot", "snapshots", true},
		{"completelywrong", "", false},
	}
	for _, tt := range tests {
		got, ok := suggest(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("suggest(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if msg := unknownCommand("sve"); !strings.Contains(msg, `"save"`) {
		t.Errorf("Expected a save hint, got %q", msg)
	}
}

func TestCmdBarCompletion(t *testing.T) {
	c := NewCmdBar()
	c.Open("sn")
	if !c.Accept() {
		t.Fatal("Accept failed with a matching prefix")
	}
	if got := c.Submit(); got != "snapshots" {
		t.Errorf("Expected completed command, got %q", got)
	}
	if c.IsOpen() {
		t.Error("Submit should close the bar")
	}
}

func TestCommandLanguageSwitch(t *testing.T) {
	a := newTestApp(t, fakeBackend{})

	a.executeCommand("lang cpp")
	if a.drafts.Active() != models.LanguageCPP {
		t.Fatalf("Expected cpp active, got %s", a.drafts.Active())
	}
	if a.editor.Value() != a.drafts.Read(models.LanguageCPP) {
		t.Error("Editor should show the cpp draft")
	}

	a.executeCommand("lang fortran")
	if !strings.HasPrefix(a.message, "Error") {
		t.Errorf("Expected error for unknown language, got %q", a.message)
	}
	if a.drafts.Active() != models.LanguageCPP {
		t.Error("Unknown language must not change the active language")
	}
}

func TestCommandSaveAndDuplicateHint(t *testing.T) {
	a := newTestApp(t, fakeBackend{})

	a.executeCommand("save")
	a.executeCommand("save")
	snaps := a.archive.List(models.LanguageCUDA)
	if len(snaps) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(snaps))
	}
	if !strings.Contains(a.message, "same code as "+snaps[0].Name) {
		t.Errorf("Expected duplicate hint, got %q", a.message)
	}

	a.drafts.Write(models.LanguageCUDA, "   ")
	a.executeCommand("save")
	if len(a.archive.List(models.LanguageCUDA)) != 2 {
		t.Error("Blank buffer must not be saved")
	}
}

func TestCommandRenameAndDelete(t *testing.T) {
	a := newTestApp(t, fakeBackend{})
	a.executeCommand("save")

	a.executeCommand("rename tiled v2")
	if got := a.archive.List(models.LanguageCUDA)[0].Name; got != "tiled v2" {
		t.Errorf("Expected renamed snapshot, got %q", got)
	}

	a.executeCommand("delete")
	if n := len(a.archive.List(models.LanguageCUDA)); n != 0 {
		t.Errorf("Expected no snapshots after delete, got %d", n)
	}
}

func TestCommandTemplate(t *testing.T) {
	a := newTestApp(t, fakeBackend{})
	tmpls := workspace.Templates(models.LanguageCUDA)

	a.executeCommand("template 2")
	if a.drafts.ActiveText() != tmpls[1].Code {
		t.Error("Expected second example in the buffer")
	}

	a.executeCommand("template 99")
	if !strings.HasPrefix(a.message, "Error") {
		t.Errorf("Expected error for missing example, got %q", a.message)
	}
}

func TestUnknownCommandMessage(t *testing.T) {
	a := newTestApp(t, fakeBackend{})
	a.executeCommand("rnu")
	if !strings.Contains(a.message, "did you mean") {
		t.Errorf("Expected suggestion, got %q", a.message)
	}
}

func TestRunCommandDeliversOutcome(t *testing.T) {
	a := newTestApp(t, fakeBackend{result: &models.RunResult{
		Output:  "ok",
		Metrics: &models.Metrics{ExecutionTime: "3.2 ms"},
	}})

	var done *dispatchDoneMsg
	for _, msg := range collect(a.executeCommand("run")) {
		if m, ok := msg.(dispatchDoneMsg); ok {
			done = &m
		}
	}
	if done == nil {
		t.Fatal("Expected a dispatch outcome")
	}
	a.Update(*done)

	if a.orch.LastMetric() != "3.2 ms" {
		t.Errorf("Expected latest metric, got %q", a.orch.LastMetric())
	}
	if a.panel != panelInsights {
		t.Errorf("Expected insights panel after success, got %q", a.panel)
	}
	if !strings.Contains(a.output.View(), "Execution succeeded") {
		t.Error("Output pane should show the success line")
	}
}

func TestMouseDragResizesLogPane(t *testing.T) {
	a := newTestApp(t, fakeBackend{})
	start := a.resize.Height()
	row := a.handleRow()

	cmd := a.handleMouse(tea.MouseMsg{Y: row, Type: tea.MouseLeft})
	if !a.resize.Resizing() || !a.tracker.attached {
		t.Fatal("Pressing on the handle should start a drag")
	}
	if cmd == nil {
		t.Error("Expected a mouse mode command on drag start")
	}

	a.handleMouse(tea.MouseMsg{Y: row - 3, Type: tea.MouseMotion})
	if got := a.resize.Height(); got != start+3 {
		t.Errorf("Expected height %d, got %d", start+3, got)
	}
	if a.output.Height != start+3 {
		t.Errorf("Output pane not relaid out: %d", a.output.Height)
	}

	// Far above the 70% cap: rejected, height kept.
	a.handleMouse(tea.MouseMsg{Y: 0, Type: tea.MouseMotion})
	if got := a.resize.Height(); got != start+3 {
		t.Errorf("Out of range drag changed height to %d", got)
	}

	a.handleMouse(tea.MouseMsg{Y: 0, Type: tea.MouseRelease})
	if a.resize.Resizing() || a.tracker.attached {
		t.Error("Release should end the drag")
	}
}

func TestMousePressOffHandleIgnored(t *testing.T) {
	a := newTestApp(t, fakeBackend{})
	a.handleMouse(tea.MouseMsg{Y: 3, Type: tea.MouseLeft})
	if a.resize.Resizing() {
		t.Error("Pressing inside the editor must not start a drag")
	}
}

func TestRenderLeaderboard(t *testing.T) {
	out := renderLeaderboard([]models.Entry{
		{Label: "CUDA C++", Value: 1.2, Color: "#22C55E", HasData: true, Width: 100},
		{Label: "Current dispatch", Color: "#A855F7"},
	}, 30)
	if !strings.Contains(out, "1.20 ms") || !strings.Contains(out, "--") {
		t.Errorf("Unexpected leaderboard render:\n%s", out)
	}
}

func TestRenderSnapshots(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := renderSnapshots([]models.Snapshot{
		{Name: "CUDA C++ #1", ExecutionTime: "1.2 ms", CreatedAt: now.Add(-2 * time.Hour)},
	}, 0, now)
	if !strings.Contains(out, "2 hours ago") {
		t.Errorf("Expected relative age, got:\n%s", out)
	}
	if !strings.Contains(renderSnapshots(nil, 0, now), "No snapshots") {
		t.Error("Expected empty state")
	}
}
