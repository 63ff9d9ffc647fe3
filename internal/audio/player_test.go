package audio

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
)

// writeWav emits a minimal 16-bit mono PCM file the decoder accepts.
func writeWav(t *testing.T, path string, sampleRate uint32) {
	t.Helper()

	data := make([]byte, 8) // four silent samples
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(data)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, sampleRate)
	binary.Write(&buf, binary.LittleEndian, sampleRate*2)
	binary.Write(&buf, binary.LittleEndian, uint16(2))  // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16)) // bits per sample
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
}

// The speaker's Lock, Clear and Init all take one non-reentrant mutex;
// replacing a running file must therefore never call Clear or Init while
// holding the lock, or Play freezes the whole update loop.
func TestPlayNeverTouchesSpeakerUnderItsLock(t *testing.T) {
	origInit, origClear, origPlay := speakerInit, speakerClear, speakerPlay
	origLock, origUnlock := speakerLock, speakerUnlock
	defer func() {
		speakerInit, speakerClear, speakerPlay = origInit, origClear, origPlay
		speakerLock, speakerUnlock = origLock, origUnlock
	}()

	locked := false
	inits, clears := 0, 0
	speakerLock = func() { locked = true }
	speakerUnlock = func() { locked = false }
	speakerInit = func(beep.SampleRate, int) error {
		if locked {
			t.Fatal("speaker.Init called while the speaker lock is held")
		}
		inits++
		return nil
	}
	speakerClear = func() {
		if locked {
			t.Fatal("speaker.Clear called while the speaker lock is held")
		}
		clears++
	}
	speakerPlay = func(...beep.Streamer) {}

	dir := t.TempDir()
	first := filepath.Join(dir, "first.wav")
	writeWav(t, first, 44100)

	p := NewPlayer()
	if err := p.Play(first); err != nil {
		t.Fatalf("first play: %v", err)
	}
	if inits != 1 {
		t.Fatalf("inits = %d after first play, want 1", inits)
	}

	// Opening a second file while one is already playing.
	if err := p.Play(first); err != nil {
		t.Fatalf("second play: %v", err)
	}
	if clears != 1 {
		t.Errorf("clears = %d, want 1 for a same-rate replacement", clears)
	}

	other := filepath.Join(dir, "other.wav")
	writeWav(t, other, 22050)
	if err := p.Play(other); err != nil {
		t.Fatalf("rate-change play: %v", err)
	}
	if inits != 2 {
		t.Errorf("inits = %d, want 2 (initial + rate change)", inits)
	}

	p.TogglePause()
	p.Close()
	if clears != 2 {
		t.Errorf("clears = %d after close, want 2", clears)
	}
}
