package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"

	"github.com/RequiringSleep/spacejam/internal/viz"
)

const ringSize = 8192

// Indirection over the beep speaker so playback plumbing is testable without
// a sound device. speaker.Lock, Clear and Init all take the same
// non-reentrant package mutex, so Clear and Init must never run under Lock.
var (
	speakerInit   = speaker.Init
	speakerClear  = speaker.Clear
	speakerPlay   = speaker.Play
	speakerLock   = speaker.Lock
	speakerUnlock = speaker.Unlock
)

// Player owns one playback chain: decoded file -> tap -> ctrl -> speaker.
// Frame exposes the analyzed intensity of whatever is currently audible; it
// returns nil when nothing is playing, which the physics engine treats as a
// no-op frame.
type Player struct {
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *Tap
	analyzer *Analyzer

	paused   bool
	initDone bool
	done     atomic.Bool
}

func NewPlayer() *Player { return &Player{} }

// OpenDialog prompts for an audio file and starts playback. A canceled dialog
// is not an error.
func (p *Player) OpenDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return fmt.Errorf("select file: %w", err)
	}
	return p.Play(filename)
}

// Play decodes the file by extension and starts it on the speaker, replacing
// any previous playback.
func (p *Player) Play(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", path, err)
	}

	tap := NewTap(streamer, ringSize)
	ctrl := &beep.Ctrl{Streamer: tap}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speakerInit(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		// Init drains any previous playback and replaces the device.
		if err := speakerInit(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("reinit speaker: %w", err)
		}
	default:
		speakerClear()
	}

	p.closeCurrent()

	p.file = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = tap
	p.analyzer = NewAnalyzer(tap)
	p.paused = false
	p.done.Store(false)

	speakerPlay(beep.Seq(ctrl, beep.Callback(func() {
		p.done.Store(true)
	})))

	return nil
}

// Frame returns the current analyzed audio frame, or nil when no audio is
// playing.
func (p *Player) Frame() *viz.AudioFrame {
	if p.analyzer == nil || p.done.Load() {
		return nil
	}
	frame := p.analyzer.Frame()
	return &frame
}

func (p *Player) TogglePause() {
	if p.ctrl == nil {
		return
	}
	speakerLock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speakerUnlock()
}

func (p *Player) Close() {
	if p.initDone {
		speakerClear()
	}
	p.closeCurrent()
}

func (p *Player) closeCurrent() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		_ = p.file.Close()
		p.file = nil
	}
}
