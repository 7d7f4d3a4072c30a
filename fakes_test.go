package xmap

import (
	"bytes"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec3(t *testing.T, name string, got, want mgl64.Vec3, eps float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > eps {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

// callLog records collaborator calls in the order they happen.
type callLog struct {
	calls []string
}

func (l *callLog) add(name string) { l.calls = append(l.calls, name) }

func (l *callLog) count(name string) int {
	n := 0
	for _, c := range l.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (l *callLog) reset() { l.calls = l.calls[:0] }

// fakeRenderer is a Renderer that only records calls.
type fakeRenderer struct {
	log        *callLog
	w, h       int
	ratio      float64
	clearColor Color
	renderErr  error
	panicOn    bool
}

func (r *fakeRenderer) SetSize(w, h int)            { r.w, r.h = w, h; r.log.add("setSize") }
func (r *fakeRenderer) SetPixelRatio(ratio float64) { r.ratio = ratio; r.log.add("setPixelRatio") }
func (r *fakeRenderer) SetClearColor(c Color)       { r.clearColor = c; r.log.add("setClearColor") }
func (r *fakeRenderer) ClearColor()                 { r.log.add("clearColor") }
func (r *fakeRenderer) ClearDepth()                 { r.log.add("clearDepth") }
func (r *fakeRenderer) Clear()                      { r.log.add("clear") }

func (r *fakeRenderer) Render(*Scene, *Camera) error {
	r.log.add("render")
	if r.panicOn {
		panic("render exploded")
	}
	return r.renderErr
}

// fakeOverlays records UpdateOverlays and ClearOverlays calls.
type fakeOverlays struct {
	log *callLog
}

func (o *fakeOverlays) UpdateOverlays(*MapView) { o.log.add("updateOverlays") }
func (o *fakeOverlays) ClearOverlays()          { o.log.add("clearOverlays") }

// fakeEngine is an AnimationEngine returning a scripted result.
type fakeEngine struct {
	log     *callLog
	changed bool
}

func (e *fakeEngine) Update() bool {
	e.log.add("engineUpdate")
	return e.changed
}

// fakeSurface records Surface calls.
type fakeSurface struct {
	w, h  int
	fills []Color
	draws [][]Triangle
}

func (s *fakeSurface) Resize(w, h int) { s.w, s.h = w, h }
func (s *fakeSurface) Fill(c Color)    { s.fills = append(s.fills, c) }
func (s *fakeSurface) DrawTriangles(tris []Triangle) error {
	s.draws = append(s.draws, append([]Triangle(nil), tris...))
	return nil
}

// recordingSink collects emitted view events.
type recordingSink struct {
	events []ViewEvent
}

func (s *recordingSink) EmitEvent(e ViewEvent) { s.events = append(s.events, e) }

// testModel is a MapModel that records Model calls.
type testModel struct {
	*MapModel
	log *callLog
}

func newTestModel(l *callLog) *testModel {
	m := &testModel{MapModel: NewMapModel("test"), log: l}
	m.OnFrameUpdate = func(*Scene, *Camera) { l.add("frameUpdate") }
	return m
}

func (m *testModel) MarkBoundsDirty() {
	m.log.add("markBoundsDirty")
	m.MapModel.MarkBoundsDirty()
}

// newTestView creates an initialized view over fakes.
func newTestView(t *testing.T, w, h int, opts ...Option) (*MapView, *StaticHost, *fakeRenderer, *callLog) {
	t.Helper()
	l := &callLog{}
	r := &fakeRenderer{log: l}
	host := NewStaticHost(w, h)
	opts = append([]Option{
		WithRenderer(r),
		WithLogger(log.New(&bytes.Buffer{})),
	}, opts...)
	mv := NewMapView(host, opts...)
	mv.InitView()
	l.reset()
	return mv, host, r, l
}
