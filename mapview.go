package xmap

import (
	"context"
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// defaultFrameRate is the tick rate used by StartRenderer.
const defaultFrameRate = 60

// viewState is the renderer/scene/camera triple of a MapView, created
// together by InitView and kept for the view's lifetime.
type viewState struct {
	renderer  Renderer
	scene     *Scene
	camera    *Camera
	viewport  ViewportTransform
	raycaster Raycaster
}

// MapView binds one renderer, scene and camera to a host widget and drives
// them from a conditional render loop. A MapView is not safe for concurrent
// use: call it from the goroutine running the loop, or queue work with Do.
type MapView struct {
	// ID identifies the view in logs and events.
	ID string

	host     Host
	overlays Overlays
	engine   AnimationEngine
	animator *Animator
	logger   *log.Logger
	sink     EventSink
	debug    bool

	frameRate   int
	newRenderer func() Renderer

	state *viewState
	model Model
	theme Theme

	needsUpdate     bool
	projectionDirty bool

	cancelResize func()
	handlers     handlerRegistry

	// tasksMu guards tasks and stopLoop, which other goroutines touch.
	tasksMu  sync.Mutex
	tasks    []func()
	stopLoop context.CancelFunc

	stats FrameStats
}

// Option configures a MapView.
type Option func(*MapView)

// WithRenderer makes InitView use r instead of an ebiten-backed Rasterizer.
func WithRenderer(r Renderer) Option {
	return func(mv *MapView) {
		mv.newRenderer = func() Renderer { return r }
	}
}

// WithOverlays sets the overlay collaborator updated on every redraw.
func WithOverlays(o Overlays) Option {
	return func(mv *MapView) { mv.overlays = o }
}

// WithAnimationEngine replaces the default Animator.
func WithAnimationEngine(e AnimationEngine) Option {
	return func(mv *MapView) { mv.engine = e }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(mv *MapView) { mv.logger = l }
}

// WithEventSink sets the optional ECS bridge.
func WithEventSink(s EventSink) Option {
	return func(mv *MapView) { mv.sink = s }
}

// WithDebug enables per-frame timing logs at debug level.
func WithDebug(enabled bool) Option {
	return func(mv *MapView) { mv.debug = enabled }
}

// WithFrameRate sets the StartRenderer tick rate in frames per second.
func WithFrameRate(fps int) Option {
	return func(mv *MapView) {
		if fps > 0 {
			mv.frameRate = fps
		}
	}
}

// NewMapView creates an uninitialized view bound to host.
func NewMapView(host Host, opts ...Option) *MapView {
	mv := &MapView{
		ID:        uuid.NewString(),
		host:      host,
		frameRate: defaultFrameRate,
	}
	for _, opt := range opts {
		opt(mv)
	}
	if mv.engine == nil {
		mv.animator = NewAnimator()
		mv.engine = mv.animator
	} else if a, ok := mv.engine.(*Animator); ok {
		mv.animator = a
	}
	if mv.logger == nil {
		mv.logger = defaultLogger()
	}
	mv.logger = mv.logger.With("view", mv.ID[:8])
	if mv.newRenderer == nil {
		mv.newRenderer = func() Renderer { return NewRasterizer(NewEbitenSurface()) }
	}
	return mv
}

// InitView creates the renderer, scene and camera, sizes them to the host
// and subscribes to host resizes. The view stays hidden until the first
// ChangeTheme. Calling InitView again is a no-op.
func (mv *MapView) InitView() {
	if mv.state != nil {
		return
	}
	w, h := mv.host.ClientSize()
	st := &viewState{
		renderer: mv.newRenderer(),
		scene:    NewScene(),
		camera:   newCamera(float64(w), float64(h)),
		viewport: newViewportTransform(float64(w), float64(h)),
	}
	st.renderer.SetPixelRatio(mv.host.PixelRatio())
	st.renderer.SetSize(w, h)
	mv.state = st

	mv.host.SetOpacity(0)
	mv.cancelResize = mv.host.OnResize(mv.Resize)
	mv.logger.Debug("view initialized", "width", w, "height", h)
}

// Initialized reports whether InitView has run.
func (mv *MapView) Initialized() bool {
	return mv.state != nil
}

// Resize recomputes camera and viewport for the host's current size and
// pixel ratio, and schedules a redraw. An empty host keeps the previous
// camera and viewport.
func (mv *MapView) Resize() {
	st := mv.state
	if st == nil {
		return
	}
	w, h := mv.host.ClientSize()
	if st.camera.Recompute(float64(w), float64(h)) {
		st.viewport = newViewportTransform(float64(w), float64(h))
	}
	st.renderer.SetPixelRatio(mv.host.PixelRatio())
	st.renderer.SetSize(w, h)
	mv.projectionDirty = true

	mv.logger.Debug("resized", "width", w, "height", h, "ratio", mv.host.PixelRatio())
	mv.emit(ViewEvent{Type: EventResized, Width: w, Height: h})
}

// LoadModel attaches model as the scene's model root, replacing any model
// already attached. A nil model is ignored.
func (mv *MapView) LoadModel(model Model) error {
	if model == nil {
		return nil
	}
	st := mv.state
	if st == nil {
		return ErrNotInitialized
	}
	if mv.model != nil && mv.model != model {
		mv.model.BindMap(nil)
	}
	model.BindMap(mv)
	st.scene.setModel(model)
	mv.model = model
	mv.needsUpdate = true

	mv.logger.Debug("model attached", "name", model.Base().Name)
	mv.emit(ViewEvent{Type: EventModelAttached})
	return nil
}

// Clear detaches the model root, clears overlays and clears the renderer.
func (mv *MapView) Clear() {
	st := mv.state
	if st == nil {
		return
	}
	if mv.model != nil {
		mv.model.BindMap(nil)
		st.scene.setModel(nil)
		mv.model = nil
	}
	if mv.overlays != nil {
		mv.overlays.ClearOverlays()
	}
	st.renderer.Clear()

	mv.logger.Debug("model cleared")
	mv.emit(ViewEvent{Type: EventModelCleared})
}

// ChangeTheme applies theme: sets the renderer clear color, lets every
// model node react, and reveals the view.
func (mv *MapView) ChangeTheme(theme Theme) error {
	st := mv.state
	if st == nil {
		return ErrNotInitialized
	}
	bg := resolveBackground(theme.Background)
	st.renderer.SetClearColor(bg)
	if mv.model == nil {
		st.renderer.ClearColor()
	} else {
		WalkTheme(mv.model, theme)
		mv.needsUpdate = true
	}
	mv.theme = theme
	mv.host.SetOpacity(1)

	mv.emit(ViewEvent{Type: EventThemeChanged, Background: bg})
	return nil
}

// Destroy stops a running StartRenderer loop, unsubscribes from the host
// and detaches the model. The view must not be used afterwards.
func (mv *MapView) Destroy() {
	mv.tasksMu.Lock()
	stop := mv.stopLoop
	mv.stopLoop = nil
	mv.tasksMu.Unlock()
	if stop != nil {
		stop()
	}

	if mv.cancelResize != nil {
		mv.cancelResize()
		mv.cancelResize = nil
	}
	if mv.model != nil {
		mv.model.BindMap(nil)
		if mv.state != nil {
			mv.state.scene.setModel(nil)
		}
		mv.model = nil
	}
	mv.state = nil
	mv.logger.Debug("view destroyed")
}

// Invalidate requests a model update and redraw on the next tick.
func (mv *MapView) Invalidate() {
	mv.needsUpdate = true
}

// Model returns the attached model root, or nil.
func (mv *MapView) Model() Model {
	return mv.model
}

// Theme returns the theme applied by the last ChangeTheme.
func (mv *MapView) Theme() Theme {
	return mv.theme
}

// Scene returns the view's scene, or nil before InitView.
func (mv *MapView) Scene() *Scene {
	if mv.state == nil {
		return nil
	}
	return mv.state.scene
}

// Camera returns the view's camera, or nil before InitView.
func (mv *MapView) Camera() *Camera {
	if mv.state == nil {
		return nil
	}
	return mv.state.camera
}

// Renderer returns the view's renderer, or nil before InitView.
func (mv *MapView) Renderer() Renderer {
	if mv.state == nil {
		return nil
	}
	return mv.state.renderer
}

// Viewport returns the current viewport transform.
func (mv *MapView) Viewport() ViewportTransform {
	if mv.state == nil {
		return ViewportTransform{}
	}
	return mv.state.viewport
}

// Animator returns the default animator, or nil when a custom engine is set.
func (mv *MapView) Animator() *Animator {
	return mv.animator
}

// Logger returns the view's logger.
func (mv *MapView) Logger() *log.Logger {
	return mv.logger
}

// Stats returns the render loop counters.
func (mv *MapView) Stats() FrameStats {
	return mv.stats
}

// LocationToViewport projects loc into host pixels. It fails with an
// *InvalidFloorError when the attached model has no such floor, and returns
// the Offscreen sentinel when the floor exists but is hidden.
func (mv *MapView) LocationToViewport(loc Location) (ScreenPosition, error) {
	st := mv.state
	if st == nil {
		return ScreenPosition{}, ErrNotInitialized
	}
	if mv.model == nil {
		return ScreenPosition{}, &InvalidFloorError{Floor: loc.Floor}
	}
	floor, ok := mv.model.Floor(loc.Floor)
	if !ok || floor == nil {
		return ScreenPosition{}, &InvalidFloorError{Floor: loc.Floor}
	}
	if !floor.Visible {
		return offscreen, nil
	}

	world := floor.LocalToWorld(mgl64.Vec3{loc.X, loc.Y, loc.Z})
	distance := world.Sub(st.camera.Position).Len()
	ndc := st.camera.Project(world)
	x, y := st.viewport.NDCToScreen(ndc.X(), ndc.Y())
	return ScreenPosition{
		X:        math.Round(x),
		Y:        math.Round(y),
		Distance: distance,
	}, nil
}

// CameraRaycast returns the world ray from the camera through pointer p,
// given in host pixels. The ray reflects the camera as of this call.
func (mv *MapView) CameraRaycast(p Vec2) (Ray, error) {
	st := mv.state
	if st == nil {
		return Ray{}, ErrNotInitialized
	}
	w, h := mv.host.ClientSize()
	if w <= 0 || h <= 0 {
		return Ray{Origin: st.camera.Position, Direction: st.camera.Forward()}, nil
	}
	ndc := mgl64.Vec3{
		(p.X/float64(w))*2 - 1,
		-(p.Y/float64(h))*2 + 1,
		RaySeedZ,
	}
	st.raycaster.SetFromCamera(ndc, st.camera)
	return st.raycaster.Ray, nil
}

// Pick returns the nearest model mesh under pointer p.
func (mv *MapView) Pick(p Vec2) (Hit, bool, error) {
	if _, err := mv.CameraRaycast(p); err != nil {
		return Hit{}, false, err
	}
	if mv.model == nil {
		return Hit{}, false, nil
	}
	hits := mv.state.raycaster.IntersectNode(mv.model)
	if len(hits) == 0 {
		return Hit{}, false, nil
	}
	return hits[0], true, nil
}

// Do queues fn to run at the start of the next tick on the loop goroutine.
// Safe to call from any goroutine.
func (mv *MapView) Do(fn func()) {
	mv.tasksMu.Lock()
	mv.tasks = append(mv.tasks, fn)
	mv.tasksMu.Unlock()
}

// runTasks drains the Do queue.
func (mv *MapView) runTasks() {
	mv.tasksMu.Lock()
	tasks := mv.tasks
	mv.tasks = nil
	mv.tasksMu.Unlock()
	for _, fn := range tasks {
		fn()
	}
}
