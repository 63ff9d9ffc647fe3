package audio

import (
	"math"
	"time"

	"github.com/RequiringSleep/spacejam/internal/config"
	"github.com/RequiringSleep/spacejam/internal/viz"
)

// Analyzer condenses the tap's recent samples into the per-frame intensity
// the physics engine consumes: RMS over the analysis window, compressed for
// visual range, then smoothed against the previous frame.
type Analyzer struct {
	tap      *Tap
	smoothed float64
	lastPeak time.Time

	now func() time.Time
}

func NewAnalyzer(tap *Tap) *Analyzer {
	return &Analyzer{tap: tap, now: time.Now}
}

func (a *Analyzer) Frame() viz.AudioFrame {
	samples := a.tap.Recent(config.AnalysisWindow)

	var mag float64
	if len(samples) > 0 {
		var sumSquares float64
		for _, s := range samples {
			sumSquares += s * s
		}
		rms := math.Sqrt(sumSquares / float64(len(samples)))
		mag = math.Pow(rms, 0.3)
	}

	a.smoothed = config.SmoothingFactor*a.smoothed + (1-config.SmoothingFactor)*clamp01(mag)
	if a.smoothed > config.PeakThreshold {
		a.lastPeak = a.now()
	}

	return viz.AudioFrame{
		Intensity:     a.smoothed,
		HasRecentPeak: !a.lastPeak.IsZero() && a.now().Sub(a.lastPeak) < time.Second,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
