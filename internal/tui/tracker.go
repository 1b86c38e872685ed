package tui

import tea "github.com/charmbracelet/bubbletea"

// mouseTracker routes pointer motion to the resize controller only while a
// drag is active, and asks the terminal for all-motion reporting for that
// window alone.
type mouseTracker struct {
	attached bool
	pending  tea.Cmd
}

func (t *mouseTracker) Attach() {
	t.attached = true
	t.pending = tea.EnableMouseAllMotion
}

func (t *mouseTracker) Detach() {
	t.attached = false
	t.pending = tea.EnableMouseCellMotion
}

// drain returns and clears the queued terminal command.
func (t *mouseTracker) drain() tea.Cmd {
	cmd := t.pending
	t.pending = nil
	return cmd
}
