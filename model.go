package xmap

// Model is the externally supplied scene graph attached to a MapView.
// The MapView never owns a Model; it only holds it while attached.
type Model interface {
	Node

	// Floor resolves a floor by index. ok is false if no such floor exists.
	Floor(index int) (floor *Floor, ok bool)
	// FrameUpdate is invoked by the render loop when the view has been
	// invalidated, before the camera projection is recomputed.
	FrameUpdate(scene *Scene, cam *Camera)
	// MarkBoundsDirty flags cached bounds as stale. Called once per redraw.
	MarkBoundsDirty()
	// BindMap records the MapView the model is attached to. Lookup only.
	BindMap(mv *MapView)
}

// Floor is one independently visible layer of a map model.
type Floor struct {
	Object

	Index int
	// Height is the floor's elevation above the model origin.
	Height float64
}

// NewFloor creates a floor at the given elevation.
func NewFloor(index int, height float64) *Floor {
	f := &Floor{Index: index, Height: height}
	initObject(&f.Object, "floor")
	f.Position[2] = height
	return f
}

// MapModel is the stock Model: a root object holding a set of floors.
type MapModel struct {
	Object

	floors []*Floor

	// BoundsNeedUpdate is set on every redraw and cleared by whoever
	// consumes the model bounds.
	BoundsNeedUpdate bool

	// OnFrameUpdate, if set, runs inside FrameUpdate.
	OnFrameUpdate func(scene *Scene, cam *Camera)

	mapView *MapView
}

// NewMapModel creates an empty map model.
func NewMapModel(name string) *MapModel {
	m := &MapModel{}
	initObject(&m.Object, name)
	return m
}

// AddFloor adds a floor as a child of the model. A floor with the same index
// replaces the previous one.
func (m *MapModel) AddFloor(f *Floor) {
	for i, old := range m.floors {
		if old.Index == f.Index {
			m.RemoveChild(old)
			m.floors[i] = f
			m.AddChild(f)
			return
		}
	}
	m.floors = append(m.floors, f)
	m.AddChild(f)
}

// Floors returns the model's floors in insertion order. MUST NOT be mutated.
func (m *MapModel) Floors() []*Floor {
	return m.floors
}

// Floor implements Model.
func (m *MapModel) Floor(index int) (*Floor, bool) {
	for _, f := range m.floors {
		if f.Index == index {
			return f, true
		}
	}
	return nil, false
}

// ShowFloor makes only the floor with the given index visible. Returns false
// if the floor does not exist.
func (m *MapModel) ShowFloor(index int) bool {
	if _, ok := m.Floor(index); !ok {
		return false
	}
	for _, f := range m.floors {
		f.Visible = f.Index == index
	}
	m.invalidate()
	return true
}

// ShowAllFloors makes every floor visible.
func (m *MapModel) ShowAllFloors() {
	for _, f := range m.floors {
		f.Visible = true
	}
	m.invalidate()
}

// FrameUpdate implements Model.
func (m *MapModel) FrameUpdate(scene *Scene, cam *Camera) {
	if m.OnFrameUpdate != nil {
		m.OnFrameUpdate(scene, cam)
	}
}

// MarkBoundsDirty implements Model.
func (m *MapModel) MarkBoundsDirty() {
	m.BoundsNeedUpdate = true
}

// BindMap implements Model.
func (m *MapModel) BindMap(mv *MapView) {
	m.mapView = mv
}

// Map returns the MapView the model is attached to, or nil.
func (m *MapModel) Map() *MapView {
	return m.mapView
}

// invalidate asks the bound view, if any, for a full update next tick.
func (m *MapModel) invalidate() {
	if m.mapView != nil {
		m.mapView.Invalidate()
	}
}
