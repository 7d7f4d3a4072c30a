package xmap

import "github.com/go-gl/mathgl/mgl64"

// Scene is the top-level object that owns the node tree and the lighting rig.
// The attached map model, if any, is a direct child of the root.
type Scene struct {
	root   *Object
	lights []*Light
	model  Model
}

// NewScene creates a scene with the default map lighting.
func NewScene() *Scene {
	s := &Scene{root: NewObject("scene")}
	for _, l := range defaultLights() {
		s.AddLight(l)
	}
	return s
}

// Root returns the scene's root object.
func (s *Scene) Root() *Object {
	return s.root
}

// Add appends n to the scene root.
func (s *Scene) Add(n Node) {
	s.root.AddChild(n)
}

// Remove detaches n from the scene root.
func (s *Scene) Remove(n Node) bool {
	return s.root.RemoveChild(n)
}

// AddLight adds a light to the scene.
func (s *Scene) AddLight(l *Light) {
	s.lights = append(s.lights, l)
	s.root.AddChild(l)
}

// Lights returns the scene's lights. MUST NOT be mutated.
func (s *Scene) Lights() []*Light {
	return s.lights
}

// Model returns the attached model root, or nil.
func (s *Scene) Model() Model {
	return s.model
}

// setModel replaces the attached model, detaching the previous one.
func (s *Scene) setModel(m Model) {
	if s.model != nil {
		s.root.RemoveChild(s.model)
	}
	s.model = m
	if m != nil {
		s.root.AddChild(m)
	}
}

// UpdateWorld refreshes cached world matrices for every dirty subtree.
func (s *Scene) UpdateWorld() {
	updateWorldMatrix(s.root, mgl64.Ident4(), false)
}
