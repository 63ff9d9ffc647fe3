package viz

import (
	"image"

	"github.com/RequiringSleep/spacejam/internal/config"
)

// SceneMode selects which rendering routine runs each frame.
type SceneMode int

const (
	ModeSelection SceneMode = iota
	ModeActive
	ModeConclusion
)

// Transition is the optional scene-transition token produced by click
// routing.
type Transition string

const (
	TransitionNone      Transition = ""
	TransitionSelection Transition = "selection"
)

// Controller owns the scene-mode state and routes pointer input to mode
// transitions. One controller instance is consumed by one render loop; all
// access is single-threaded and frame-driven.
type Controller struct {
	Engine *Engine

	width, height int
	mode          SceneMode
	screenshot    bool
}

func NewController(width, height int) *Controller {
	return &Controller{
		Engine: NewEngine(width, height),
		width:  width,
		height: height,
		mode:   ModeSelection,
	}
}

func (c *Controller) Mode() SceneMode        { return c.mode }
func (c *Controller) SetMode(mode SceneMode) { c.mode = mode }

// ScreenshotMode reports whether UI chrome (timer text, back button) is
// suppressed for clean exported frames.
func (c *Controller) ScreenshotMode() bool { return c.screenshot }

func (c *Controller) ToggleScreenshotMode() { c.screenshot = !c.screenshot }

// HandleClick routes a pointer position: a click on the back button returns
// the selection transition unless screenshot mode is hiding the button.
func (c *Controller) HandleClick(pos image.Point) Transition {
	button := image.Rect(
		config.BackButtonX, config.BackButtonY,
		config.BackButtonX+config.BackButtonW, config.BackButtonY+config.BackButtonH,
	)
	if pos.In(button) && !c.screenshot {
		return TransitionSelection
	}
	return TransitionNone
}

// SelectionHit maps a click on the selection screen to a category row.
func (c *Controller) SelectionHit(pos image.Point) (string, bool) {
	spacing := c.height / 4
	cx := c.width / 2
	for i, category := range Categories {
		y := spacing * (i + 1)
		row := image.Rect(cx-60, y-40, cx+60, y+64)
		if pos.In(row) {
			return category, true
		}
	}
	return "", false
}

// Reset zeroes all per-orb motion state, clears trails, resets glow and fade,
// and leaves screenshot mode off. Used to start a new session without
// recreating the controller.
func (c *Controller) Reset() {
	c.Engine.Reset()
	c.screenshot = false
}
