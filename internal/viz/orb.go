// Package viz implements the orbital physics model and the layered-surface
// render pipeline: five colored orbs orbit a central timer display, pulled
// toward the center by audio intensity, leaving fading trails.
package viz

import (
	"image/color"
	"math"

	"github.com/RequiringSleep/spacejam/internal/config"
)

// NumOrbs is fixed; orb order is significant and indexes trails and colors.
const NumOrbs = 5

// OrbModel holds one orb's kinematic state. Angle and deviation are polar,
// velX/velY is the Cartesian audio impulse; the two representations are
// reconciled once per update (see Engine.Update), never tracked independently.
type OrbModel struct {
	Color           color.RGBA
	BaseAngle       float64
	Angle           float64
	AngularVelocity float64
	Deviation       float64
	RadialVelocity  float64
	VelX, VelY      float64
}

func newOrbs() [NumOrbs]OrbModel {
	palette := [NumOrbs]color.RGBA{
		{R: 80, G: 180, B: 255, A: 255},
		{R: 255, G: 80, B: 150, A: 255},
		{R: 255, G: 200, B: 80, A: 255},
		{R: 200, G: 255, B: 80, A: 255},
		{R: 230, G: 130, B: 255, A: 255},
	}

	var orbs [NumOrbs]OrbModel
	for i := range orbs {
		angle := float64(i) * 2 * math.Pi / NumOrbs
		orbs[i] = OrbModel{
			Color:           palette[i],
			BaseAngle:       angle,
			Angle:           angle,
			AngularVelocity: config.BaseSpeed,
		}
	}
	return orbs
}
