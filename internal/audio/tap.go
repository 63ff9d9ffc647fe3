// Package audio feeds the visualizer with an intensity signal derived from
// whatever is currently playing: a tap in the playback chain records recent
// samples, and an analyzer condenses them into one per-frame AudioFrame.
package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and records recently played samples, downmixed to
// mono, into a ring buffer. The speaker goroutine writes, the render loop
// reads, so the ring is mutex-guarded.
type Tap struct {
	source beep.Streamer

	mu   sync.RWMutex
	ring []float64
	next int
}

func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		source: src,
		ring:   make([]float64, ringSize),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.ring[t.next] = (samples[i][0] + samples[i][1]) * 0.5
			t.next = (t.next + 1) % len(t.ring)
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.source.Err() }

// Recent returns up to n of the most recent mono samples in chronological
// order.
func (t *Tap) Recent(n int) []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > len(t.ring) {
		n = len(t.ring)
	}
	out := make([]float64, n)
	idx := t.next - n
	if idx < 0 {
		idx += len(t.ring)
	}
	for i := 0; i < n; i++ {
		out[i] = t.ring[idx]
		idx = (idx + 1) % len(t.ring)
	}
	return out
}
