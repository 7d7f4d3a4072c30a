package xmap

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// Node is anything that can live in the map scene graph. Custom node types
// embed Object to satisfy it and override OnThemeChange to react to themes.
type Node interface {
	// Base returns the embedded Object carrying hierarchy and transform.
	Base() *Object
	// Children returns the node's direct children. MUST NOT be mutated.
	Children() []Node
	// OnThemeChange is called once per theme application.
	OnThemeChange(theme Theme)
}

// --- ID counter ---

// objectIDCounter is atomic: models are often built off the loop goroutine.
var objectIDCounter atomic.Uint32

func nextObjectID() uint32 {
	return objectIDCounter.Add(1)
}

// Object is the common scene graph element: identity, hierarchy, transform
// and visibility. Its OnThemeChange does nothing.
type Object struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	parent   *Object
	children []Node

	// Transform (local)
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3

	// Computed (updated during Scene.UpdateWorld)
	worldMatrix    mgl64.Mat4
	transformDirty bool

	// Visible hides the object and its subtree from rendering and picking.
	Visible bool

	// Metadata
	UserData any
}

// NewObject creates an empty group object.
func NewObject(name string) *Object {
	o := &Object{}
	initObject(o, name)
	return o
}

// initObject sets the default field values shared by all constructors.
func initObject(o *Object, name string) {
	o.ID = nextObjectID()
	o.Name = name
	o.Rotation = mgl64.QuatIdent()
	o.Scale = mgl64.Vec3{1, 1, 1}
	o.worldMatrix = mgl64.Ident4()
	o.Visible = true
	o.transformDirty = true
}

// Base implements Node.
func (o *Object) Base() *Object { return o }

// Children implements Node.
func (o *Object) Children() []Node { return o.children }

// OnThemeChange implements Node as a no-op.
func (o *Object) OnThemeChange(Theme) {}

// Parent returns the parent object, or nil for a root.
func (o *Object) Parent() *Object { return o.parent }

// WorldMatrix returns the world matrix cached by the last Scene.UpdateWorld.
func (o *Object) WorldMatrix() mgl64.Mat4 { return o.worldMatrix }

// AddChild appends child to this object's children. If child already has a
// parent it is removed from that parent first.
func (o *Object) AddChild(child Node) {
	c := child.Base()
	if c == o {
		panic("xmap: cannot add object as its own child")
	}
	if c.parent != nil {
		c.parent.RemoveChild(child)
	}
	c.parent = o
	c.transformDirty = true
	o.children = append(o.children, child)
}

// RemoveChild detaches child from this object. Returns false if child was
// not a direct child.
func (o *Object) RemoveChild(child Node) bool {
	c := child.Base()
	for i, n := range o.children {
		if n.Base() == c {
			copy(o.children[i:], o.children[i+1:])
			o.children[len(o.children)-1] = nil
			o.children = o.children[:len(o.children)-1]
			c.parent = nil
			c.transformDirty = true
			return true
		}
	}
	return false
}

// RemoveFromParent detaches the object from its parent, if any.
func (o *Object) RemoveFromParent() {
	if o.parent == nil {
		return
	}
	p := o.parent
	for _, n := range p.children {
		if n.Base() == o {
			p.RemoveChild(n)
			return
		}
	}
}

// Walk visits n and its descendants depth-first, pre-order. Returning false
// from fn skips the node's subtree.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children() {
		Walk(child, fn)
	}
}

// worldVisible reports whether o and all its ancestors are visible.
func worldVisible(o *Object) bool {
	for p := o; p != nil; p = p.parent {
		if !p.Visible {
			return false
		}
	}
	return true
}
