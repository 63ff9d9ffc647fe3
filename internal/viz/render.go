package viz

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/RequiringSleep/spacejam/internal/config"
)

// Categories are the three selectable session categories, in display order;
// the index doubles as the orb palette index on the selection screen.
var Categories = [3]string{"sleep", "study", "vent"}

// VoiceName resolves the narrator voice shown under the timer. Unrecognized
// categories fall back to the default voice.
func VoiceName(category string) string {
	switch category {
	case "sleep":
		return "Shimmer"
	case "study":
		return "Onyx"
	case "vent":
		return "Nova"
	default:
		return "Nova"
	}
}

var backgroundColor = color.RGBA{R: 215, G: 248, B: 255, A: 255}

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Pipeline composites background, trails, orb glyphs and overlay text onto a
// destination surface. The trail and glow layers are reused scratch buffers;
// each is fully cleared before every use so nothing ghosts in from the
// previous frame. The trail layer doubles as the static snapshot the
// conclusion mode fades out.
type Pipeline struct {
	width, height int
	cx, cy        float64

	trailLayer *ebiten.Image
	glowLayer  *ebiten.Image
	textLayer  *ebiten.Image

	face font.Face
}

func NewPipeline(width, height int) *Pipeline {
	return &Pipeline{
		width:      width,
		height:     height,
		cx:         float64(width) / 2,
		cy:         float64(height) / 2,
		trailLayer: ebiten.NewImage(width, height),
		glowLayer:  ebiten.NewImage(width, height),
		textLayer:  ebiten.NewImage(256, 32),
		face:       basicfont.Face7x13,
	}
}

// Draw renders the active-session scene.
func (p *Pipeline) Draw(dst *ebiten.Image, e *Engine, category string, elapsed time.Duration, screenshot bool) {
	dst.Fill(backgroundColor)
	p.drawTrails(dst, e)

	for i := range e.orbs {
		x, y := e.OrbPosition(i)
		p.drawOrb(dst, x, y, e.orbs[i].Color, config.OrbitalOrbSize, 1+e.glow)
	}

	if !screenshot {
		p.drawTimer(dst, category, elapsed)
		p.drawBackButton(dst)
	}
}

// DrawSelection renders the category-selection scene: a pulsing glow, an orb
// glyph and a haloed label per category.
func (p *Pipeline) DrawSelection(dst *ebiten.Image, e *Engine) {
	dst.Fill(backgroundColor)

	spacing := p.height / 4
	pulseScale := 1 + math.Sin(e.pulse)*0.1

	for i, category := range Categories {
		x := p.cx
		y := float64(spacing * (i + 1))

		glowRadius := int(30 * pulseScale)
		for r := glowRadius; r > 0; r-- {
			alpha := uint8(25 * float64(r) / float64(glowRadius))
			vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r), withAlpha(e.orbs[i].Color, alpha), false)
		}

		p.drawOrb(dst, x, y, e.orbs[i].Color, config.SelectionOrbSize, 1.0)

		label := strings.ToUpper(category)
		p.drawCenteredText(dst, label, x-2, y+38, 2, e.orbs[i].Color)
		p.drawCenteredText(dst, label, x, y+40, 2, color.White)
	}
}

// DrawConclusion fades out the recorded session: the trail layer is
// composited as a static snapshot with a progress-scaled alpha and each orb
// sits at its last recorded trail position. Physics is not advanced here.
func (p *Pipeline) DrawConclusion(dst *ebiten.Image, e *Engine, progress float64) {
	dst.Fill(backgroundColor)

	e.fadeAlpha = float64(conclusionAlpha(progress))
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(e.fadeAlpha) / 255)
	dst.DrawImage(p.trailLayer, op)

	intensity := conclusionIntensity(progress)
	for i := range e.orbs {
		if last, ok := e.trails.Last(i); ok {
			p.drawOrb(dst, last.X, last.Y, e.orbs[i].Color, config.OrbitalOrbSize, intensity)
		}
	}
}

// DrawStoredPattern replays a previously captured trail history once: the
// engine's trails are substituted, rendered, then cleared again.
func (p *Pipeline) DrawStoredPattern(dst *ebiten.Image, e *Engine, trails [][]TrailPoint) {
	e.trails.Replace(trails)
	p.drawTrails(dst, e)
	e.trails.Clear()
}

func (p *Pipeline) drawTrails(dst *ebiten.Image, e *Engine) {
	p.trailLayer.Clear()

	for i := range e.orbs {
		trail := e.trails.Trail(i)
		if len(trail) < 2 {
			continue
		}
		for j := 1; j < len(trail); j++ {
			// Width and opacity come from the later point's stored
			// intensity.
			pt := trail[j]
			col := withAlpha(e.orbs[i].Color, trailAlpha(pt.Intensity))
			vector.StrokeLine(p.trailLayer,
				float32(trail[j-1].X), float32(trail[j-1].Y),
				float32(pt.X), float32(pt.Y),
				trailWidth(pt.Intensity), col, false)
		}
	}

	dst.DrawImage(p.trailLayer, nil)
}

// drawOrb renders one orb glyph on the glow layer: concentric circles with a
// radial alpha falloff, a solid core, and a near-white highlight one unit
// smaller, then composites the layer onto the destination.
func (p *Pipeline) drawOrb(dst *ebiten.Image, x, y float64, col color.RGBA, size, intensity float64) {
	p.glowLayer.Clear()

	fx, fy := float32(x), float32(y)
	maxRadius := int(12 * (1 + intensity*0.5))
	for r := maxRadius; r > 0; r-- {
		alpha := uint8(100 * float64(r) / float64(maxRadius) * intensity)
		vector.DrawFilledCircle(p.glowLayer, fx, fy, float32(r), withAlpha(col, alpha), false)
	}

	coreSize := size * (1 + intensity*0.3)
	vector.DrawFilledCircle(p.glowLayer, fx, fy, float32(coreSize), col, true)
	highlight := float32(math.Max(1, coreSize-1))
	vector.DrawFilledCircle(p.glowLayer, fx, fy, highlight, highlightColor(col), true)

	dst.DrawImage(p.glowLayer, nil)
}

func (p *Pipeline) drawTimer(dst *ebiten.Image, category string, elapsed time.Duration) {
	vector.DrawFilledCircle(dst, float32(p.cx), float32(p.cy), config.CenterOrbRadius+5, color.RGBA{R: 20, G: 22, B: 25, A: 255}, true)

	p.drawCenteredText(dst, formatClock(elapsed), p.cx, p.cy-20, 4, color.White)
	p.drawCenteredText(dst, strings.ToUpper(category), p.cx, p.cy+16, 2, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	p.drawCenteredText(dst, "Voice: "+VoiceName(category), p.cx, p.cy+36, 1, color.RGBA{R: 150, G: 150, B: 150, A: 255})
}

func (p *Pipeline) drawBackButton(dst *ebiten.Image) {
	vector.DrawFilledCircle(dst, 40, 40, 20, color.RGBA{R: 40, G: 42, B: 45, A: 255}, true)

	var path vector.Path
	path.MoveTo(50, 40)
	path.LineTo(35, 30)
	path.LineTo(35, 50)
	path.Close()
	fillPath(dst, &path, color.RGBA{R: 200, G: 200, B: 200, A: 255})
}

// drawCenteredText renders a string on the text scratch layer and composites
// it scaled, centered on (cx, cy).
func (p *Pipeline) drawCenteredText(dst *ebiten.Image, s string, cx, cy, scale float64, clr color.Color) {
	b := text.BoundString(p.face, s)
	p.textLayer.Clear()
	text.Draw(p.textLayer, s, p.face, -b.Min.X, -b.Min.Y, clr)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-float64(b.Dx())*scale/2, cy-float64(b.Dy())*scale/2)
	dst.DrawImage(p.textLayer, op)
}

func fillPath(dst *ebiten.Image, path *vector.Path, col color.RGBA) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(col.R) / 255
		vs[i].ColorG = float32(col.G) / 255
		vs[i].ColorB = float32(col.B) / 255
		vs[i].ColorA = float32(col.A) / 255
	}
	dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func trailWidth(intensity float64) float32 {
	w := 8 * intensity
	if w < 4 {
		w = 4
	}
	return float32(w)
}

func trailAlpha(intensity float64) uint8 {
	return uint8(255 * (0.5 + 0.5*clamp01(intensity)))
}

func conclusionAlpha(progress float64) uint8 {
	return uint8(255 * (1 - clamp01(progress)))
}

func conclusionIntensity(progress float64) float64 {
	return 1 - clamp01(progress)
}

// highlightColor blends the orb color most of the way toward white for the
// glyph's inner highlight.
func highlightColor(c color.RGBA) color.RGBA {
	base, ok := colorful.MakeColor(c)
	if !ok {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	blended := base.BlendLuv(colorful.Color{R: 1, G: 1, B: 1}, 0.85).Clamped()
	r, g, b := blended.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

func formatClock(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
