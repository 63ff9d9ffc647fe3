package viz

import (
	"math"

	"github.com/RequiringSleep/spacejam/internal/config"
)

// AudioFrame is the per-frame input from the audio collaborator. A nil frame
// (no audio source, or a dropped capture) makes Update a no-op.
type AudioFrame struct {
	Intensity     float64 // [0,1]
	HasRecentPeak bool    // informational only, unused by physics
}

// Engine advances the orb set once per display frame. It assumes a roughly
// constant call cadence and performs no variable-timestep compensation: the
// clock and selection pulse advance by fixed deltas per call.
type Engine struct {
	cx, cy      float64
	orbitRadius float64

	orbs   [NumOrbs]OrbModel
	trails TrailBuffer

	glow      float64
	fadeAlpha float64
	clock     float64
	pulse     float64
}

func NewEngine(width, height int) *Engine {
	r := width
	if height < r {
		r = height
	}
	return &Engine{
		cx:          float64(width) / 2,
		cy:          float64(height) / 2,
		orbitRadius: float64(r) / 4,
		orbs:        newOrbs(),
		fadeAlpha:   255,
	}
}

// Update integrates one frame of orbital motion from the audio signal.
// Per orb, in array order: advance the angle, perturb the Cartesian position
// by the accumulated audio impulse, then re-derive angle and deviation from
// the perturbed position so polar and Cartesian state cannot drift apart.
func (e *Engine) Update(frame *AudioFrame) {
	if frame == nil {
		return
	}
	intensity := clamp01(frame.Intensity)

	for i := range e.orbs {
		orb := &e.orbs[i]
		orb.Angle += orb.AngularVelocity

		radius := e.orbitRadius + orb.Deviation
		x := e.cx + math.Cos(orb.Angle)*radius
		y := e.cy + math.Sin(orb.Angle)*radius

		if intensity > 0 {
			dx := e.cx - x
			dy := e.cy - y
			dist := math.Hypot(dx, dy)
			// An orb sitting exactly on the center has no defined
			// attraction direction; skip the impulse for that frame.
			if dist > config.CenterEpsilon {
				attraction := config.AttractionStrength * intensity
				orb.VelX += dx / dist * attraction
				orb.VelY += dy / dist * attraction
			}
		}

		x += orb.VelX
		y += orb.VelY

		orb.Angle = unwrapAngle(math.Atan2(y-e.cy, x-e.cx), orb.Angle)
		orb.Deviation = math.Hypot(x-e.cx, y-e.cy) - e.orbitRadius

		orb.VelX *= config.Damping
		orb.VelY *= config.Damping

		if orb.Deviation != 0 {
			orb.RadialVelocity += -config.SpringConstant * orb.Deviation
			orb.Deviation += orb.RadialVelocity
			orb.RadialVelocity *= config.Damping
		}

		e.trails.Append(i, TrailPoint{X: x, Y: y, Intensity: intensity})
	}

	e.glow = math.Min(1, e.glow+intensity*config.GlowBoost)
	e.glow *= config.GlowDecay

	e.clock += config.TimeStep
	e.pulse = math.Mod(e.pulse+config.PulseStep, 2*math.Pi)
}

// unwrapAngle lifts an atan2 result onto the turn nearest to prev, keeping
// the monotonic unwrapped accumulation that atan2 alone would destroy.
func unwrapAngle(wrapped, prev float64) float64 {
	return wrapped + 2*math.Pi*math.Round((prev-wrapped)/(2*math.Pi))
}

// AdvancePulse ticks only the selection-screen pulse, so the selection mode
// can animate without running orb physics or growing trails.
func (e *Engine) AdvancePulse() {
	e.pulse = math.Mod(e.pulse+config.PulseStep, 2*math.Pi)
}

// Reset returns the engine to its freshly constructed state, keeping the
// immutable per-orb color and angle configuration.
func (e *Engine) Reset() {
	for i := range e.orbs {
		orb := &e.orbs[i]
		orb.Deviation = 0
		orb.RadialVelocity = 0
		orb.VelX = 0
		orb.VelY = 0
	}
	e.glow = 0
	e.fadeAlpha = 255
	e.clock = 0
	e.pulse = 0
	e.trails.Clear()
}

// OrbPosition computes an orb's current Cartesian position from its polar
// state.
func (e *Engine) OrbPosition(i int) (float64, float64) {
	radius := e.orbitRadius + e.orbs[i].Deviation
	x := e.cx + math.Cos(e.orbs[i].Angle)*radius
	y := e.cy + math.Sin(e.orbs[i].Angle)*radius
	return x, y
}

func (e *Engine) Trails() *TrailBuffer { return &e.trails }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
