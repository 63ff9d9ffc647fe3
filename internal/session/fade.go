package session

import "github.com/charmbracelet/harmonica"

// Fade eases the conclusion progress from 0 to 1 with a critically damped
// spring, stepped once per frame by the render loop.
type Fade struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func NewFade(fps int) *Fade {
	return &Fade{spring: harmonica.NewSpring(harmonica.FPS(fps), 1.2, 1.0)}
}

// Step advances the fade one frame and returns the new progress.
func (f *Fade) Step() float64 {
	f.pos, f.vel = f.spring.Update(f.pos, f.vel, 1)
	return f.Progress()
}

// Progress is the fade position clamped to [0,1].
func (f *Fade) Progress() float64 {
	if f.pos < 0 {
		return 0
	}
	if f.pos > 1 {
		return 1
	}
	return f.pos
}

// Done reports whether the fade has effectively reached the end.
func (f *Fade) Done() bool { return f.pos >= 0.995 }
