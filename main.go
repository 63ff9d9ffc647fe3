package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/RequiringSleep/spacejam/internal/audio"
	"github.com/RequiringSleep/spacejam/internal/config"
	"github.com/RequiringSleep/spacejam/internal/pattern"
	"github.com/RequiringSleep/spacejam/internal/session"
	"github.com/RequiringSleep/spacejam/internal/viz"
)

// game drives the scene once per frame: the controller picks the mode, the
// engine integrates from the current audio frame, the pipeline draws.
type game struct {
	ctrl   *viz.Controller
	pipe   *viz.Pipeline
	player *audio.Player
	store  *pattern.Store

	sess *session.Session
	fade *session.Fade

	// replay, when set, pins the whole run to one-shot pattern rendering.
	replay *pattern.Pattern
}

func newGame(store *pattern.Store) *game {
	return &game{
		ctrl:   viz.NewController(config.WindowWidth, config.WindowHeight),
		pipe:   viz.NewPipeline(config.WindowWidth, config.WindowHeight),
		player: audio.NewPlayer(),
		store:  store,
	}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if g.replay != nil {
		return nil
	}

	switch g.ctrl.Mode() {
	case viz.ModeSelection:
		g.ctrl.Engine.AdvancePulse()
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			if category, ok := g.ctrl.SelectionHit(cursor()); ok {
				g.startSession(category)
			}
		}

	case viz.ModeActive:
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			g.ctrl.ToggleScreenshotMode()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyO) {
			if err := g.player.OpenDialog(); err != nil {
				slog.Error("open audio", "error", err)
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.player.TogglePause()
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			if g.ctrl.HandleClick(cursor()) == viz.TransitionSelection {
				g.beginConclusion()
			}
		}
		g.ctrl.Engine.Update(g.player.Frame())

	case viz.ModeConclusion:
		g.fade.Step()
		if g.fade.Done() {
			g.finishSession()
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.replay != nil {
		g.pipe.DrawStoredPattern(screen, g.ctrl.Engine, g.replay.Trails)
		return
	}

	switch g.ctrl.Mode() {
	case viz.ModeSelection:
		g.pipe.DrawSelection(screen, g.ctrl.Engine)
	case viz.ModeActive:
		var category string
		var elapsed time.Duration
		if g.sess != nil {
			category = g.sess.Category
			elapsed = g.sess.Elapsed()
		}
		g.pipe.Draw(screen, g.ctrl.Engine, category, elapsed, g.ctrl.ScreenshotMode())
	case viz.ModeConclusion:
		g.pipe.DrawConclusion(screen, g.ctrl.Engine, g.fade.Progress())
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

func (g *game) startSession(category string) {
	g.ctrl.Reset()
	g.sess = session.New(category)
	g.ctrl.SetMode(viz.ModeActive)
	slog.Info("session started", "category", category, "voice", viz.VoiceName(category))
}

func (g *game) beginConclusion() {
	g.fade = session.NewFade(config.TPS)
	g.ctrl.SetMode(viz.ModeConclusion)
}

func (g *game) finishSession() {
	if g.store != nil && g.sess != nil {
		trails := g.ctrl.Engine.Trails().Snapshot()
		if _, err := g.store.Save(g.sess.Category, g.sess.Elapsed(), trails); err != nil {
			slog.Error("save pattern", "error", err)
		}
	}
	g.sess = nil
	g.fade = nil
	g.ctrl.Reset()
	g.ctrl.SetMode(viz.ModeSelection)
}

func cursor() image.Point {
	x, y := ebiten.CursorPosition()
	return image.Pt(x, y)
}

func main() {
	dbPath := flag.String("db", "spacejam.db", "path to the pattern database")
	list := flag.Bool("list", false, "list stored patterns and exit")
	replayID := flag.String("replay", "", "render a stored pattern by id")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	store, err := pattern.Open(*dbPath)
	if err != nil {
		slog.Error("open pattern store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if *list {
		patterns, err := store.List()
		if err != nil {
			slog.Error("list patterns", "error", err)
			os.Exit(1)
		}
		for _, p := range patterns {
			fmt.Printf("%s  %-6s  %-8s  saved %s\n", p.ID, p.Category, p.Duration.Round(time.Second), p.Age())
		}
		return
	}

	g := newGame(store)
	defer g.player.Close()

	if *replayID != "" {
		p, err := store.Get(*replayID)
		if err != nil {
			slog.Error("load pattern", "error", err)
			os.Exit(1)
		}
		g.replay = p
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("spacejam - click a category to begin, O: open audio, S: screenshot mode, Esc/Q: quit")
	ebiten.SetTPS(config.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("run", "error", err)
		os.Exit(1)
	}
}
