package xmap

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// markerSize is the side of the square drawn for each visible marker.
const markerSize = 8

// zoomStep is the fraction of the camera distance covered per wheel notch.
const zoomStep = 0.1

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowFPS draws FPS and TPS in the top-left corner.
	ShowFPS bool
	// ScreenshotDir receives PNGs queued with Screenshot.
	ScreenshotDir string
	// Markers, if set, is installed as the view's overlays and drawn over
	// the map.
	Markers *MarkerLayer
	// Script, if set, is stepped once per frame.
	Script *TestRunner
	// ExitWhenScriptDone closes the window after the script finishes.
	ExitWhenScriptDone bool
}

// errScriptDone terminates RunGame after a scripted session.
var errScriptDone = errors.New("xmap: script done")

// game is the ebiten host of a MapView: it reports the window size as the
// client size, blits the rasterizer canvas, and drives the render loop from
// Update.
type game struct {
	cfg     RunConfig
	mv      *MapView
	surface *EbitenSurface

	w, h    int
	ratio   float64
	opacity float64

	listeners map[int]func()
	nextID    int

	screenshotQueue []string
}

// Run opens a window, initializes a MapView inside it, calls setup, and runs
// the render loop until the window closes.
func Run(setup func(mv *MapView) error, cfg RunConfig, opts ...Option) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	g := &game{
		cfg:       cfg,
		surface:   NewEbitenSurface(),
		w:         cfg.Width,
		h:         cfg.Height,
		ratio:     ebiten.Monitor().DeviceScaleFactor(),
		listeners: make(map[int]func()),
	}
	opts = append(opts, WithRenderer(NewRasterizer(g.surface)))
	if cfg.Markers != nil {
		opts = append(opts, WithOverlays(cfg.Markers))
	}
	g.mv = NewMapView(g, opts...)
	g.mv.InitView()
	if setup != nil {
		if err := setup(g.mv); err != nil {
			return fmt.Errorf("run: setup: %w", err)
		}
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.mv.frameRate)

	err := ebiten.RunGame(g)
	g.mv.Destroy()
	if errors.Is(err, errScriptDone) {
		return nil
	}
	return err
}

// --- Host ---

func (g *game) ClientSize() (int, int)   { return g.w, g.h }
func (g *game) PixelRatio() float64      { return g.ratio }
func (g *game) SetOpacity(alpha float64) { g.opacity = alpha }

func (g *game) OnResize(fn func()) func() {
	id := g.nextID
	g.nextID++
	g.listeners[id] = fn
	return func() { delete(g.listeners, id) }
}

// --- ebiten.Game ---

// Layout reports the device-pixel screen size and fires resize listeners
// when the window size or scale factor changed.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := ebiten.Monitor().DeviceScaleFactor()
	if outsideWidth != g.w || outsideHeight != g.h || ratio != g.ratio {
		g.w, g.h, g.ratio = outsideWidth, outsideHeight, ratio
		for _, fn := range g.listeners {
			fn()
		}
	}
	return int(float64(outsideWidth) * ratio), int(float64(outsideHeight) * ratio)
}

// Update handles pointer input, steps the script and ticks the view. It
// never returns a frame error: failures are logged by the view.
func (g *game) Update() error {
	g.handleInput()
	if r := g.cfg.Script; r != nil {
		r.step(g)
		if r.Done() && g.cfg.ExitWhenScriptDone && len(g.screenshotQueue) == 0 {
			return errScriptDone
		}
	}
	g.mv.Tick()
	return nil
}

// Draw blits the map canvas at the container opacity, then markers and
// debug text, then flushes queued screenshots.
func (g *game) Draw(screen *ebiten.Image) {
	screen.Clear()
	if img := g.surface.Image(); img != nil && g.opacity > 0 {
		var op ebiten.DrawImageOptions
		op.ColorScale.ScaleAlpha(float32(g.opacity))
		screen.DrawImage(img, &op)
	}
	g.drawMarkers(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	g.flushScreenshots(screen)
}

func (g *game) drawMarkers(screen *ebiten.Image) {
	if g.cfg.Markers == nil || g.opacity == 0 {
		return
	}
	src := ensureWhitePixel()
	for _, m := range g.cfg.Markers.Markers() {
		if !m.Visible {
			continue
		}
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(markerSize*g.ratio, markerSize*g.ratio)
		op.GeoM.Translate((m.Screen.X-markerSize/2)*g.ratio, (m.Screen.Y-markerSize/2)*g.ratio)
		op.ColorScale.ScaleWithColor(color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff})
		screen.DrawImage(src, &op)
	}
}

// handleInput picks on click and dollies the camera on wheel.
func (g *game) handleInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.Click(float64(x), float64(y))
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		cam := g.mv.Camera()
		offset := cam.Position.Sub(cam.Target)
		cam.Position = cam.Target.Add(offset.Mul(1 - dy*zoomStep))
		g.mv.Invalidate()
	}
}

// --- scriptTarget ---

func (g *game) Click(x, y float64) {
	ctx, err := g.mv.Click(Vec2{X: x, Y: y})
	if err != nil {
		g.mv.Logger().Error("click failed", "err", err)
		return
	}
	if !ctx.HasHit {
		g.mv.Logger().Debug("click", "x", x, "y", y, "hit", false)
		return
	}
	g.mv.Logger().Info("click", "x", x, "y", y, "mesh", ctx.Hit.Mesh.Name, "distance", ctx.Hit.Distance)
}

func (g *game) ChangeBackground(bg string) {
	if err := g.mv.ChangeTheme(Theme{Background: bg}); err != nil {
		g.mv.Logger().Error("theme failed", "err", err)
	}
}

func (g *game) ResizeWindow(w, h int) {
	if w > 0 && h > 0 {
		ebiten.SetWindowSize(w, h)
	}
}
