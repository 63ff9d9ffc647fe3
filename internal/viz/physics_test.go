package viz

import (
	"math"
	"testing"

	"github.com/RequiringSleep/spacejam/internal/config"
)

func TestAngleAccumulatesWithoutAudio(t *testing.T) {
	e := NewEngine(800, 800)

	initial := make([]float64, NumOrbs)
	for i := range e.orbs {
		initial[i] = e.orbs[i].Angle
	}

	const n = 200
	for k := 0; k < n; k++ {
		e.Update(&AudioFrame{})
	}

	for i := range e.orbs {
		want := initial[i] + n*config.BaseSpeed
		if math.Abs(e.orbs[i].Angle-want) > 1e-9 {
			t.Errorf("orb %d: angle = %v, want %v", i, e.orbs[i].Angle, want)
		}
	}
}

func TestGlowIntensityStaysBounded(t *testing.T) {
	e := NewEngine(800, 800)

	intensities := []float64{0, 0.2, 1.0, 1.0, 1.0, 0.7, 0, 0, 0.9, 1.0}
	for k := 0; k < 100; k++ {
		e.Update(&AudioFrame{Intensity: intensities[k%len(intensities)]})
		if e.glow < 0 || e.glow > 1 {
			t.Fatalf("after update %d: glow = %v, want within [0,1]", k, e.glow)
		}
	}
}

func TestUpdateAppendsOneTrailPointPerOrb(t *testing.T) {
	e := NewEngine(800, 800)

	const n = 25
	for k := 0; k < n; k++ {
		e.Update(&AudioFrame{Intensity: 0.5})
	}

	for i := 0; i < NumOrbs; i++ {
		if got := e.trails.Len(i); got != n {
			t.Errorf("orb %d: trail length = %d, want %d", i, got, n)
		}
	}
}

func TestNilFrameIsNoOp(t *testing.T) {
	e := NewEngine(800, 800)
	before := e.orbs

	e.Update(nil)

	if e.orbs != before {
		t.Error("orb state changed on nil frame")
	}
	for i := 0; i < NumOrbs; i++ {
		if e.trails.Len(i) != 0 {
			t.Errorf("orb %d: trail grew on nil frame", i)
		}
	}
}

func TestResetMatchesFreshEngine(t *testing.T) {
	e := NewEngine(800, 800)
	for k := 0; k < 50; k++ {
		e.Update(&AudioFrame{Intensity: 0.8})
	}
	e.Reset()

	fresh := NewEngine(800, 800)
	for i := range e.orbs {
		got, want := e.orbs[i], fresh.orbs[i]
		if got.Color != want.Color || got.AngularVelocity != want.AngularVelocity {
			t.Errorf("orb %d: immutable config changed by reset", i)
		}
		if got.Deviation != 0 || got.RadialVelocity != 0 || got.VelX != 0 || got.VelY != 0 {
			t.Errorf("orb %d: motion state not zeroed: %+v", i, got)
		}
	}
	if e.glow != fresh.glow || e.fadeAlpha != fresh.fadeAlpha {
		t.Errorf("glow/fade not reset: glow=%v fade=%v", e.glow, e.fadeAlpha)
	}
	if e.clock != fresh.clock || e.pulse != fresh.pulse {
		t.Errorf("accumulators not reset: clock=%v pulse=%v", e.clock, e.pulse)
	}
	for i := 0; i < NumOrbs; i++ {
		if e.trails.Len(i) != 0 {
			t.Errorf("orb %d: trail not cleared", i)
		}
	}
}

func TestDeviationConvergesUnderSpring(t *testing.T) {
	e := NewEngine(800, 800)
	e.orbs[0].Deviation = 40

	for k := 0; k < 3000; k++ {
		e.Update(&AudioFrame{})
	}

	if got := math.Abs(e.orbs[0].Deviation); got > 0.01 {
		t.Errorf("deviation = %v after spring-back, want near 0", got)
	}
}

func TestAttractionGuardedAtCenter(t *testing.T) {
	e := NewEngine(800, 800)
	// Park the orb exactly on the center, where the attraction direction
	// is undefined.
	e.orbs[0].Deviation = -e.orbitRadius

	e.Update(&AudioFrame{Intensity: 1})

	orb := e.orbs[0]
	for _, v := range []float64{orb.Angle, orb.Deviation, orb.VelX, orb.VelY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("orb state not finite after center-distance-zero update: %+v", orb)
		}
	}
}

func TestUnwrapAngle(t *testing.T) {
	tests := []struct {
		name    string
		wrapped float64
		prev    float64
		want    float64
	}{
		{"Same turn", 0.5, 0.4, 0.5},
		{"One turn up", -math.Pi + 0.1, math.Pi + 0.05, math.Pi + 0.1},
		{"Many turns", 0.25, 20*math.Pi + 0.3, 20*math.Pi + 0.25},
		{"Negative history", -0.25, -6*math.Pi - 0.3, -6*math.Pi - 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unwrapAngle(tt.wrapped, tt.prev); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("unwrapAngle(%v, %v) = %v, want %v", tt.wrapped, tt.prev, got, tt.want)
			}
		})
	}
}

func TestAdvancePulseLeavesOrbsAlone(t *testing.T) {
	e := NewEngine(800, 800)
	before := e.orbs

	for k := 0; k < 10; k++ {
		e.AdvancePulse()
	}

	if e.pulse == 0 {
		t.Error("pulse did not advance")
	}
	if e.orbs != before {
		t.Error("orb state changed by pulse advance")
	}
	for i := 0; i < NumOrbs; i++ {
		if e.trails.Len(i) != 0 {
			t.Errorf("orb %d: trail grew on pulse advance", i)
		}
	}
}
