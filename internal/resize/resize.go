// Package resize implements the draggable split between the editor and the
// log pane.
package resize

// MaxPercent caps the pane at this share of the viewport height.
const MaxPercent = 70

// Tracker installs and removes the global pointer listeners. Attach is
// called on entering the resizing state and Detach on leaving it.
type Tracker interface {
	Attach()
	Detach()
}

type nopTracker struct{}

func (nopTracker) Attach() {}
func (nopTracker) Detach() {}

// State of the controller.
type State int

const (
	Idle State = iota
	Resizing
)

// Controller tracks the pane height. Out-of-bounds proposals are rejected,
// not clamped, so the stored height never sits outside [min, max]. When the
// viewport is too small for the cap to reach min, min wins: the height
// stays at min and every proposal is rejected until the viewport grows.
type Controller struct {
	tracker   Tracker
	state     State
	height    int
	minHeight int
	viewport  int

	startY      int
	startHeight int
}

// New creates a controller with an initial height. tracker may be nil.
func New(height, minHeight, viewport int, tracker Tracker) *Controller {
	if tracker == nil {
		tracker = nopTracker{}
	}
	c := &Controller{
		tracker:   tracker,
		minHeight: minHeight,
		viewport:  viewport,
		height:    height,
	}
	if !c.inBounds(height) {
		c.height = c.fallbackHeight()
	}
	return c
}

// Height returns the current pane height.
func (c *Controller) Height() int { return c.height }

// State returns the interaction state.
func (c *Controller) State() State { return c.state }

// Resizing reports whether a drag is in progress.
func (c *Controller) Resizing() bool { return c.state == Resizing }

// MaxHeight returns the upper bound for the current viewport.
func (c *Controller) MaxHeight() int {
	return c.viewport * MaxPercent / 100
}

// SetViewport records a new viewport height. If the current height no longer
// fits it is pulled back into range.
func (c *Controller) SetViewport(h int) {
	c.viewport = h
	if !c.inBounds(c.height) {
		c.height = c.fallbackHeight()
	}
}

// PointerDown starts a drag at row y.
func (c *Controller) PointerDown(y int) {
	if c.state == Resizing {
		return
	}
	c.state = Resizing
	c.startY = y
	c.startHeight = c.height
	c.tracker.Attach()
}

// PointerMove proposes a new height from the drag distance. Dragging up grows
// the pane. It returns whether the proposal was accepted.
func (c *Controller) PointerMove(y int) bool {
	if c.state != Resizing {
		return false
	}
	return c.propose(c.startHeight + (c.startY - y))
}

// PointerUp ends the drag.
func (c *Controller) PointerUp() {
	if c.state != Resizing {
		return
	}
	c.state = Idle
	c.tracker.Detach()
}

// Nudge changes the height by delta rows when the result is in bounds.
func (c *Controller) Nudge(delta int) bool {
	return c.propose(c.height + delta)
}

func (c *Controller) propose(h int) bool {
	if !c.inBounds(h) {
		return false
	}
	c.height = h
	return true
}

func (c *Controller) inBounds(h int) bool {
	return h >= c.minHeight && h <= c.MaxHeight()
}

// fallbackHeight picks the largest valid height not above the current one,
// or min when no valid height exists.
func (c *Controller) fallbackHeight() int {
	if c.height > c.MaxHeight() {
		if max := c.MaxHeight(); max >= c.minHeight {
			return max
		}
	}
	return c.minHeight
}
