package tui

import (
	"github.com/fentz26/kernelsim/internal/dispatch"
)

// panel identifies the side panel next to the editor.
type panel string

const (
	panelNone        panel = ""
	panelInsights    panel = "insights"
	panelLeaderboard panel = "leaderboard"
	panelSnapshots   panel = "snapshots"
	panelTemplates   panel = "templates"
)

type dispatchDoneMsg struct {
	outcome dispatch.Outcome
}

type backendStatusMsg struct {
	online bool
}
