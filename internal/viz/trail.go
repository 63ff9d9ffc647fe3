package viz

import "github.com/RequiringSleep/spacejam/internal/config"

// TrailPoint is one recorded orb position with the audio intensity captured
// at record time. Intensity only feeds rendering (segment width/opacity),
// physics never reads it back.
type TrailPoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Intensity float64 `json:"intensity"`
}

// TrailBuffer keeps one ordered position history per orb. Each physics update
// appends exactly one point per orb; once a trail exceeds config.TrailCap the
// oldest points are dropped.
type TrailBuffer struct {
	points [NumOrbs][]TrailPoint
}

func (b *TrailBuffer) Append(orb int, p TrailPoint) {
	t := append(b.points[orb], p)
	if len(t) > config.TrailCap {
		t = t[len(t)-config.TrailCap:]
	}
	b.points[orb] = t
}

func (b *TrailBuffer) Trail(orb int) []TrailPoint {
	return b.points[orb]
}

func (b *TrailBuffer) Len(orb int) int {
	return len(b.points[orb])
}

// Last returns the most recent point for an orb, if any was recorded.
func (b *TrailBuffer) Last(orb int) (TrailPoint, bool) {
	t := b.points[orb]
	if len(t) == 0 {
		return TrailPoint{}, false
	}
	return t[len(t)-1], true
}

func (b *TrailBuffer) Clear() {
	for i := range b.points {
		b.points[i] = nil
	}
}

// Replace swaps in an externally captured history, used for one-shot playback
// of a stored pattern. The caller validates the trail count at the boundary;
// extra trails beyond NumOrbs are ignored.
func (b *TrailBuffer) Replace(trails [][]TrailPoint) {
	b.Clear()
	for i := 0; i < len(trails) && i < NumOrbs; i++ {
		b.points[i] = trails[i]
	}
}

// Snapshot deep-copies all trails, for persisting a session's pattern.
func (b *TrailBuffer) Snapshot() [][]TrailPoint {
	out := make([][]TrailPoint, NumOrbs)
	for i := range b.points {
		out[i] = append([]TrailPoint(nil), b.points[i]...)
	}
	return out
}
