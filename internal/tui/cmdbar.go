package tui

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cmdBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	suggestionSelectedStyle = lipgloss.NewStyle().
				Foreground(fgColor).
				Background(primaryColor)
)

// command describes one command bar entry.
type command struct {
	Name        string
	Args        string
	Description string
}

var commands = []command{
	{Name: "run", Description: "Dispatch the active buffer"},
	{Name: "save", Description: "Save the active buffer as a snapshot"},
	{Name: "lang", Args: "<cuda|cpp|python>", Description: "Switch language"},
	{Name: "rename", Args: "<name>", Description: "Rename the selected snapshot"},
	{Name: "delete", Description: "Delete the selected snapshot"},
	{Name: "metric", Description: "Record the latest time on the selected snapshot"},
	{Name: "template", Args: "<n>", Description: "Load built-in example n"},
	{Name: "snapshots", Description: "Show saved snapshots"},
	{Name: "leaderboard", Description: "Show the performance leaderboard"},
	{Name: "insights", Description: "Show the latest analysis"},
	{Name: "clear", Description: "Clear the output pane"},
	{Name: "reset", Description: "Restore the default buffer for this language"},
	{Name: "quit", Description: "Exit kernelsim"},
}

// CmdBar is the single-line command prompt.
type CmdBar struct {
	input    textinput.Model
	open     bool
	matches  []command
	selected int
}

// NewCmdBar creates a closed command bar.
func NewCmdBar() *CmdBar {
	ti := textinput.New()
	ti.Placeholder = "run | save | lang <tag> | rename <name> | delete | template <n> | quit"
	ti.CharLimit = 256
	ti.Width = 80
	return &CmdBar{input: ti}
}

// Open focuses the bar, optionally prefilled.
func (c *CmdBar) Open(prefill string) tea.Cmd {
	c.open = true
	c.input.SetValue(prefill)
	c.input.CursorEnd()
	c.refresh()
	c.input.Focus()
	return textinput.Blink
}

// Close blurs and clears the bar.
func (c *CmdBar) Close() {
	c.open = false
	c.input.Blur()
	c.input.SetValue("")
	c.matches = nil
	c.selected = 0
}

// IsOpen reports whether the bar has focus.
func (c *CmdBar) IsOpen() bool { return c.open }

// Submit returns the entered text and closes the bar.
func (c *CmdBar) Submit() string {
	v := strings.TrimSpace(c.input.Value())
	c.Close()
	return v
}

// SetWidth resizes the input.
func (c *CmdBar) SetWidth(w int) {
	c.input.Width = max(10, w-6)
}

// Next and Prev move through the visible suggestions.
func (c *CmdBar) Next() {
	if len(c.matches) > 0 {
		c.selected = (c.selected + 1) % len(c.matches)
	}
}

func (c *CmdBar) Prev() {
	if len(c.matches) > 0 {
		c.selected = (c.selected - 1 + len(c.matches)) % len(c.matches)
	}
}

// Accept completes the selected suggestion. Returns false when nothing was completed.
func (c *CmdBar) Accept() bool {
	if len(c.matches) == 0 {
		return false
	}
	c.input.SetValue(c.matches[c.selected].Name + " ")
	c.input.CursorEnd()
	c.refresh()
	return true
}

// Update forwards input events.
func (c *CmdBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	c.refresh()
	return cmd
}

// refresh recomputes prefix matches while the first word is being typed.
func (c *CmdBar) refresh() {
	v := c.input.Value()
	c.matches = nil
	c.selected = 0
	if v == "" || strings.Contains(v, " ") {
		return
	}
	prefix := strings.ToLower(v)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd.Name, prefix) && cmd.Name != prefix {
			c.matches = append(c.matches, cmd)
		}
	}
}

// View renders the prompt line.
func (c *CmdBar) View(width int) string {
	return cmdBarStyle.Width(width).Render(promptStyle.Render(": ") + c.input.View())
}

// Suggestions renders the completion strip, or "" when there is nothing to offer.
func (c *CmdBar) Suggestions() string {
	if len(c.matches) == 0 {
		return ""
	}
	var parts []string
	for i, m := range c.matches {
		label := m.Name
		if m.Args != "" {
			label += " " + m.Args
		}
		if i == c.selected {
			parts = append(parts, suggestionSelectedStyle.Render(" "+label+" "))
		} else {
			parts = append(parts, suggestionStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

// parseCommand splits input into a lower-cased name and its arguments.
func parseCommand(input string) (string, []string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return "", nil
	}
	return strings.ToLower(parts[0]), parts[1:]
}

// suggest returns the closest known command name within edit distance 2.
func suggest(name string) (string, bool) {
	best := ""
	bestDist := 3
	for _, cmd := range commands {
		if d := levenshtein.ComputeDistance(name, cmd.Name); d < bestDist {
			best, bestDist = cmd.Name, d
		}
	}
	return best, best != ""
}

func unknownCommand(name string) string {
	if s, ok := suggest(name); ok {
		return fmt.Sprintf("Unknown command: %s (did you mean %q?)", name, s)
	}
	return fmt.Sprintf("Unknown command: %s (try: run, save, lang, snapshots, quit)", name)
}
