// Package tui provides the interactive terminal front end for kernelsim.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fentz26/kernelsim/internal/config"
	"github.com/fentz26/kernelsim/internal/dispatch"
	"github.com/fentz26/kernelsim/internal/leaderboard"
	"github.com/fentz26/kernelsim/internal/logbuf"
	"github.com/fentz26/kernelsim/internal/logging"
	"github.com/fentz26/kernelsim/internal/models"
	"github.com/fentz26/kernelsim/internal/resize"
	"github.com/fentz26/kernelsim/internal/workspace"
)

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED")
	successColor = lipgloss.Color("#10B981")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
	fgColor      = lipgloss.Color("#F9FAFB")
	cyanColor    = lipgloss.Color("#06B6D4")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(fgColor).
			Bold(true).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	handleStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	handleActiveStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	onlineStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	offlineStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	lineStyles = map[models.LineType]lipgloss.Style{
		models.LineInfo:    lipgloss.NewStyle().Foreground(cyanColor),
		models.LineError:   lipgloss.NewStyle().Foreground(errorColor),
		models.LineSuccess: lipgloss.NewStyle().Foreground(successColor),
		models.LineStdout:  lipgloss.NewStyle().Foreground(fgColor),
	}
)

// Fixed rows around the editor and log pane: header, rule, resize handle,
// message line and status bar.
const chromeRows = 5

// HealthChecker probes the simulation backend.
type HealthChecker interface {
	Health(ctx context.Context) (bool, error)
}

// Deps wires the App to the workspace and dispatch layers.
type Deps struct {
	Drafts       *workspace.Drafts
	Archive      *workspace.Archive
	Orchestrator *dispatch.Orchestrator
	Logs         *logbuf.Buffer
	Health       HealthChecker
	UI           config.UIConfig
	Log          *slog.Logger
}

// App is the main TUI application model.
type App struct {
	drafts  *workspace.Drafts
	archive *workspace.Archive
	orch    *dispatch.Orchestrator
	logs    *logbuf.Buffer
	health  HealthChecker
	log     *slog.Logger

	editor  textarea.Model
	output  viewport.Model
	spin    spinner.Model
	cmdbar  *CmdBar
	resize  *resize.Controller
	tracker *mouseTracker

	width         int
	height        int
	panel         panel
	snapIdx       int
	tmplIdx       int
	message       string
	backendOnline bool
}

// New creates a new TUI application.
func New(d Deps) *App {
	if d.Log == nil {
		d.Log = logging.Discard()
	}

	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Placeholder = "Write a kernel..."
	ta.SetValue(d.Drafts.ActiveText())
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	tracker := &mouseTracker{}
	a := &App{
		drafts:  d.Drafts,
		archive: d.Archive,
		orch:    d.Orchestrator,
		logs:    d.Logs,
		health:  d.Health,
		log:     d.Log,
		editor:  ta,
		output:  viewport.New(80, d.UI.LogHeight),
		spin:    sp,
		cmdbar:  NewCmdBar(),
		tracker: tracker,
		width:   80,
		height:  24,
	}
	a.resize = resize.New(d.UI.LogHeight, d.UI.MinLogHeight, a.height, tracker)
	a.refreshOutput()
	a.layout()
	return a
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		a.checkBackend(),
	)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.cmdbar.IsOpen() {
			return a, a.updateCmdBar(msg)
		}
		return a, a.handleKey(msg)

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize.SetViewport(msg.Height)
		a.layout()
		return a, nil

	case dispatchDoneMsg:
		a.refreshOutput()
		if msg.outcome.Stale {
			return a, nil
		}
		if msg.outcome.Err != nil {
			a.message = "Error: dispatch failed"
		} else {
			a.message = "✓ Dispatch complete"
			if a.panel == panelNone {
				a.panel = panelInsights
				a.layout()
			}
		}
		return a, nil

	case backendStatusMsg:
		a.backendOnline = msg.online
		return a, nil

	case spinner.TickMsg:
		if !a.orch.Visualizing() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	if a.cmdbar.IsOpen() {
		return a, tea.Batch(cmd, a.cmdbar.Update(msg))
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "ctrl+r":
		return a.runDispatch()
	case "ctrl+s":
		a.saveSnapshot()
		return nil
	case "ctrl+n":
		a.nextLanguage()
		return nil
	case "ctrl+l":
		a.logs.Clear()
		a.refreshOutput()
		return nil
	case "ctrl+p":
		return a.cmdbar.Open("")
	case "ctrl+o":
		a.togglePanel(panelSnapshots)
		return nil
	case "ctrl+b":
		a.togglePanel(panelLeaderboard)
		return nil
	case "ctrl+t":
		a.togglePanel(panelTemplates)
		return nil
	case "alt+up":
		if a.resize.Nudge(1) {
			a.layout()
		}
		return nil
	case "alt+down":
		if a.resize.Nudge(-1) {
			a.layout()
		}
		return nil
	case "esc":
		if a.panel != panelNone {
			a.togglePanel(a.panel)
		}
		return nil
	}

	switch a.panel {
	case panelSnapshots:
		return a.handleSnapshotKey(msg)
	case panelTemplates:
		return a.handleTemplateKey(msg)
	}

	return a.updateEditor(msg)
}

// updateEditor forwards a key to the editor and writes any change through to
// the active draft.
func (a *App) updateEditor(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	lang := a.drafts.Active()
	if text := a.editor.Value(); text != a.drafts.Read(lang) {
		a.drafts.Write(lang, text)
	}
	return cmd
}

func (a *App) handleSnapshotKey(msg tea.KeyMsg) tea.Cmd {
	snaps := a.archive.List(a.drafts.Active())
	switch msg.String() {
	case "up", "k":
		if a.snapIdx > 0 {
			a.snapIdx--
		}
	case "down", "j":
		if a.snapIdx < len(snaps)-1 {
			a.snapIdx++
		}
	case "enter":
		if snap := a.selectedSnapshot(); snap != nil {
			a.archive.LoadIntoDraft(*snap)
			a.syncEditor()
			a.message = "✓ Loaded " + snap.Name
		}
	case "d":
		a.deleteSnapshot()
	case "r":
		if a.selectedSnapshot() != nil {
			return a.cmdbar.Open("rename ")
		}
	case "m":
		a.refreshSnapshotMetric()
	}
	return nil
}

func (a *App) handleTemplateKey(msg tea.KeyMsg) tea.Cmd {
	tmpls := workspace.Templates(a.drafts.Active())
	switch msg.String() {
	case "up", "k":
		if a.tmplIdx > 0 {
			a.tmplIdx--
		}
	case "down", "j":
		if a.tmplIdx < len(tmpls)-1 {
			a.tmplIdx++
		}
	case "enter":
		if a.tmplIdx < len(tmpls) {
			a.loadTemplate(tmpls[a.tmplIdx])
		}
	}
	return nil
}

func (a *App) updateCmdBar(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		a.cmdbar.Close()
		return nil
	case "up":
		a.cmdbar.Prev()
		return nil
	case "down":
		a.cmdbar.Next()
		return nil
	case "tab":
		a.cmdbar.Accept()
		return nil
	case "enter":
		return a.executeCommand(a.cmdbar.Submit())
	}
	return a.cmdbar.Update(msg)
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Type {
	case tea.MouseLeft:
		if !a.resize.Resizing() && msg.Y == a.handleRow() {
			a.resize.PointerDown(msg.Y)
		}
	case tea.MouseMotion:
		if a.resize.PointerMove(msg.Y) {
			a.layout()
		}
	case tea.MouseRelease:
		a.resize.PointerUp()
	case tea.MouseWheelUp, tea.MouseWheelDown:
		if msg.Y > a.handleRow() {
			var cmd tea.Cmd
			a.output, cmd = a.output.Update(msg)
			return cmd
		}
	}
	return a.tracker.drain()
}

// runDispatch starts a dispatch and waits for its outcome off the UI loop.
func (a *App) runDispatch() tea.Cmd {
	ch, ok := a.orch.Run(context.Background())
	if !ok {
		a.message = "A dispatch is already in flight"
		return nil
	}
	a.message = ""
	a.refreshOutput()
	return tea.Batch(waitDispatch(ch), a.spin.Tick)
}

func waitDispatch(ch <-chan dispatch.Outcome) tea.Cmd {
	return func() tea.Msg {
		return dispatchDoneMsg{outcome: <-ch}
	}
}

func (a *App) checkBackend() tea.Cmd {
	if a.health == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		ok, err := a.health.Health(ctx)
		if err != nil {
			a.log.Debug("backend health check failed", "err", err)
		}
		return backendStatusMsg{online: ok && err == nil}
	}
}

func (a *App) saveSnapshot() {
	lang := a.drafts.Active()
	text := a.drafts.ActiveText()
	dup := a.archive.FindDuplicate(lang, text)

	snap, ok := a.archive.Save(lang, text, a.orch.LastMetric())
	if !ok {
		a.message = "Error: nothing to save, the buffer is empty"
		return
	}
	a.message = "✓ Saved " + snap.Name
	if dup != nil {
		a.message += fmt.Sprintf(" (same code as %s)", dup.Name)
	}
	a.snapIdx = len(a.archive.List(lang)) - 1
}

func (a *App) deleteSnapshot() {
	snap := a.selectedSnapshot()
	if snap == nil {
		a.message = "No snapshot selected"
		return
	}
	a.archive.Delete(snap.ID)
	a.message = "✓ Deleted " + snap.Name
	if n := len(a.archive.List(a.drafts.Active())); a.snapIdx >= n {
		a.snapIdx = max(0, n-1)
	}
}

func (a *App) renameSnapshot(name string) {
	snap := a.selectedSnapshot()
	if snap == nil {
		a.message = "No snapshot selected"
		return
	}
	if !a.archive.Rename(snap.ID, name) {
		a.message = "Usage: rename <name>"
		return
	}
	a.message = fmt.Sprintf("✓ Renamed %s to %s", snap.Name, strings.TrimSpace(name))
}

func (a *App) refreshSnapshotMetric() {
	snap := a.selectedSnapshot()
	if snap == nil {
		a.message = "No snapshot selected"
		return
	}
	metric := a.orch.LastMetric()
	if metric == "" {
		a.message = "No execution time recorded yet"
		return
	}
	a.archive.RefreshMetric(snap.ID, metric)
	a.message = fmt.Sprintf("✓ %s now records %s", snap.Name, metric)
}

func (a *App) selectedSnapshot() *models.Snapshot {
	snaps := a.archive.List(a.drafts.Active())
	if a.snapIdx < 0 || a.snapIdx >= len(snaps) {
		return nil
	}
	snap := snaps[a.snapIdx]
	return &snap
}

func (a *App) loadTemplate(t models.Template) {
	a.drafts.LoadTemplate(t)
	a.syncEditor()
	a.message = "✓ Loaded example " + t.Name
}

func (a *App) nextLanguage() {
	langs := models.Languages()
	cur := a.drafts.Active()
	for i, l := range langs {
		if l == cur {
			a.setLanguage(langs[(i+1)%len(langs)])
			return
		}
	}
	a.setLanguage(langs[0])
}

func (a *App) setLanguage(lang models.Language) {
	a.drafts.SetActive(lang)
	a.syncEditor()
	a.message = "Switched to " + lang.Label()
}

// syncEditor shows the active draft in the editor.
func (a *App) syncEditor() {
	a.editor.SetValue(a.drafts.ActiveText())
	a.snapIdx = 0
	a.tmplIdx = 0
}

func (a *App) togglePanel(p panel) {
	if a.panel == p {
		a.panel = panelNone
		a.editor.Focus()
	} else {
		a.panel = p
		if p == panelSnapshots || p == panelTemplates {
			a.editor.Blur()
		} else {
			a.editor.Focus()
		}
	}
	a.layout()
}

// refreshOutput copies the log buffer into the output pane.
func (a *App) refreshOutput() {
	var b strings.Builder
	for i, line := range a.logs.Lines() {
		if i > 0 {
			b.WriteString("\n")
		}
		style, ok := lineStyles[line.Type]
		if !ok {
			style = lineStyles[models.LineStdout]
		}
		b.WriteString(style.Render(line.Content))
	}
	a.output.SetContent(b.String())
	a.output.GotoBottom()
}

func (a *App) editorHeight() int {
	return max(1, a.height-chromeRows-a.resize.Height())
}

// handleRow is the screen row of the drag handle between editor and log.
func (a *App) handleRow() int {
	return 2 + a.editorHeight()
}

func (a *App) panelWidth() int {
	if a.panel == panelNone {
		return 0
	}
	return max(30, a.width*2/5)
}

func (a *App) layout() {
	a.editor.SetWidth(max(10, a.width-a.panelWidth()))
	a.editor.SetHeight(a.editorHeight())
	a.output.Width = a.width
	a.output.Height = a.resize.Height()
	a.cmdbar.SetWidth(a.width)
}

// View implements tea.Model
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.renderHeader() + "\n")
	b.WriteString(strings.Repeat("─", a.width) + "\n")

	editor := a.editor.View()
	if a.panel != panelNone {
		side := a.renderPanel(a.panelWidth()-4, a.editorHeight()-2)
		editor = lipgloss.JoinHorizontal(lipgloss.Top, editor, side)
	}
	b.WriteString(lipgloss.NewStyle().Height(a.editorHeight()).MaxHeight(a.editorHeight()).Render(editor) + "\n")

	b.WriteString(a.renderHandle() + "\n")
	b.WriteString(a.output.View() + "\n")

	switch {
	case a.cmdbar.IsOpen():
		b.WriteString(a.cmdbar.View(a.width) + "\n")
	case a.message != "":
		msgStyle := lipgloss.NewStyle().Foreground(successColor)
		if strings.HasPrefix(a.message, "Error") {
			msgStyle = lipgloss.NewStyle().Foreground(errorColor)
		}
		b.WriteString(msgStyle.Render(a.message) + "\n")
	default:
		b.WriteString("\n")
	}

	if s := a.cmdbar.Suggestions(); a.cmdbar.IsOpen() && s != "" {
		b.WriteString(s)
	} else {
		b.WriteString(statusBarStyle.Width(a.width).Render(a.statusLine()))
	}
	return b.String()
}

func (a *App) renderHeader() string {
	header := titleStyle.Render("⚡ kernelsim")

	active := a.drafts.Active()
	for _, lang := range models.Languages() {
		tab := " " + lang.Label() + " "
		if lang == active {
			tab = lipgloss.NewStyle().
				Background(lipgloss.Color(lang.Color())).
				Foreground(lipgloss.Color("#111827")).
				Bold(true).
				Render(tab)
		} else {
			tab = lipgloss.NewStyle().Foreground(mutedColor).Render(tab)
		}
		header += " " + tab
	}

	status := onlineStyle.Render("● BACKEND")
	if !a.backendOnline {
		status = offlineStyle.Render("○ BACKEND")
	}
	header += "  " + status

	if a.orch.Visualizing() {
		header += "  " + a.spin.View() + " running"
	}
	return header
}

func (a *App) renderHandle() string {
	label := fmt.Sprintf(" Output (%d rows) ", a.resize.Height())
	fill := max(0, a.width-lipgloss.Width(label)-2)
	line := "──" + label + strings.Repeat("─", fill)
	if a.resize.Resizing() {
		return handleActiveStyle.Render(strings.ReplaceAll(line, "─", "━"))
	}
	return handleStyle.Render(line)
}

func (a *App) statusLine() string {
	lang := a.drafts.Active()
	text := a.drafts.ActiveText()
	parts := []string{
		lang.Label() + "." + lang.Ext(),
		humanize.Bytes(uint64(len(text))),
		fmt.Sprintf("%d snapshots", len(a.archive.List(lang))),
	}
	if a.orch.Busy() {
		parts = append(parts, "dispatching...")
	}
	parts = append(parts, "^R:run ^S:save ^N:lang ^P:cmd ^O:snaps ^B:board ^T:examples ^C:quit")
	return " " + strings.Join(parts, " | ")
}

func (a *App) renderPanel(width, height int) string {
	var body string
	switch a.panel {
	case panelInsights:
		body = renderInsights(a.orch.Result(), width)
	case panelLeaderboard:
		body = renderLeaderboard(leaderboard.Compute(a.archive.All(), a.orch.Result()), width)
	case panelSnapshots:
		body = renderSnapshots(a.archive.List(a.drafts.Active()), a.snapIdx, time.Now())
	case panelTemplates:
		body = a.renderTemplates()
	}
	return panelStyle.Width(width).Height(max(1, height)).Render(body)
}

func renderInsights(r *models.RunResult, width int) string {
	if r == nil {
		return helpStyle.Render("Run a kernel (ctrl+r) to see insights.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Insights") + "\n\n")
	if m := r.Metrics; m != nil {
		rows := [][2]string{
			{"Execution", m.ExecutionTime},
			{"Memory", m.MemoryUsage},
			{"GPU", m.GPUUtilization},
			{"Throughput", m.Throughput},
			{"Batch", m.BatchSize},
			{"Dimension", m.Dimension},
		}
		for _, row := range rows {
			if row[1] == "" {
				continue
			}
			b.WriteString(fmt.Sprintf("%-11s %s\n", row[0], row[1]))
		}
		b.WriteString("\n")
	}
	for _, c := range r.Comparison {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("■")
		b.WriteString(fmt.Sprintf("%s %s  %.2f ms\n", dot, c.Label, c.Value))
	}
	if r.Analysis != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Width(width).Render(r.Analysis))
	}
	return b.String()
}

func renderLeaderboard(entries []models.Entry, width int) string {
	track := max(5, width-2)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Leaderboard") + "\n\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%-18s %s\n", e.Label, e.Display()))
		filled := int(e.Width * float64(track) / 100)
		if e.HasData && filled < 1 {
			filled = 1
		}
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render(strings.Repeat("█", filled))
		b.WriteString(bar + handleStyle.Render(strings.Repeat("░", track-filled)) + "\n")
	}
	return b.String()
}

func renderSnapshots(snaps []models.Snapshot, selected int, now time.Time) string {
	if len(snaps) == 0 {
		return helpStyle.Render("No snapshots yet. Press ctrl+s to save one.")
	}

	var lines []string
	lines = append(lines, titleStyle.Render("Snapshots"), "")
	for i, s := range snaps {
		metric := s.ExecutionTime
		if metric == "" {
			metric = "--"
		}
		line := fmt.Sprintf("%s  %s  %s", s.Name, metric, humanize.RelTime(s.CreatedAt, now, "ago", "from now"))
		if i == selected {
			lines = append(lines, selectedStyle.Render("▶ "+line))
		} else {
			lines = append(lines, itemStyle.Render("  "+line))
		}
	}
	lines = append(lines, "", helpStyle.Render("enter:load d:delete r:rename m:record time esc:close"))
	return strings.Join(lines, "\n")
}

func (a *App) renderTemplates() string {
	tmpls := workspace.Templates(a.drafts.Active())
	if len(tmpls) == 0 {
		return helpStyle.Render("No examples for this language.")
	}

	var lines []string
	lines = append(lines, titleStyle.Render("Examples"), "")
	for i, t := range tmpls {
		if i == a.tmplIdx {
			lines = append(lines, selectedStyle.Render("▶ "+t.Name))
		} else {
			lines = append(lines, itemStyle.Render("  "+t.Name))
		}
	}
	lines = append(lines, "", helpStyle.Render("enter:load esc:close"))
	return strings.Join(lines, "\n")
}

// executeCommand runs a command bar entry.
func (a *App) executeCommand(input string) tea.Cmd {
	name, args := parseCommand(input)
	if name == "" {
		return nil
	}
	a.log.Debug("command", "name", name, "args", args)

	switch name {
	case "run":
		return a.runDispatch()

	case "save":
		a.saveSnapshot()

	case "lang", "language":
		if len(args) < 1 {
			a.message = "Usage: lang <cuda|cpp|python>"
			return nil
		}
		lang, err := models.ParseLanguage(args[0])
		if err != nil {
			a.message = "Error: " + err.Error()
			return nil
		}
		a.setLanguage(lang)

	case "rename":
		if len(args) < 1 {
			a.message = "Usage: rename <name>"
			return nil
		}
		a.renameSnapshot(strings.Join(args, " "))

	case "delete":
		a.deleteSnapshot()

	case "metric":
		a.refreshSnapshotMetric()

	case "template", "example":
		tmpls := workspace.Templates(a.drafts.Active())
		if len(args) < 1 {
			a.message = fmt.Sprintf("Usage: template <1-%d>", len(tmpls))
			return nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(tmpls) {
			a.message = fmt.Sprintf("Error: no example %q for %s", args[0], a.drafts.Active().Label())
			return nil
		}
		a.loadTemplate(tmpls[n-1])

	case "snapshots":
		a.panel = panelNone
		a.togglePanel(panelSnapshots)

	case "leaderboard":
		a.panel = panelNone
		a.togglePanel(panelLeaderboard)

	case "insights":
		a.panel = panelNone
		a.togglePanel(panelInsights)

	case "clear":
		a.logs.Clear()
		a.refreshOutput()

	case "reset":
		a.drafts.Reset(a.drafts.Active())
		a.syncEditor()
		a.message = "✓ Restored the default " + a.drafts.Active().Label() + " buffer"

	case "quit", "exit", "q":
		return tea.Quit

	default:
		a.message = unknownCommand(name)
	}
	return nil
}
