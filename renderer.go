package xmap

// Renderer draws a Scene through a Camera onto a pixel surface. Renderers
// never clear on their own: the color and depth buffers are cleared only
// through ClearColor, ClearDepth and Clear, so callers decide where clears
// fall relative to overlay updates.
type Renderer interface {
	// SetSize resizes the drawing surface to w×h CSS pixels.
	SetSize(w, h int)
	// SetPixelRatio sets device pixels per CSS pixel.
	SetPixelRatio(ratio float64)
	// SetClearColor sets the color (and alpha) used by ClearColor.
	SetClearColor(c Color)
	// ClearColor fills the color buffer with the clear color.
	ClearColor()
	// ClearDepth resets the depth buffer.
	ClearDepth()
	// Clear clears both color and depth.
	Clear()
	// Render draws the scene.
	Render(scene *Scene, cam *Camera) error
}

// Triangle is a flat-colored triangle in surface pixels.
type Triangle struct {
	P     [3]Vec2
	Color Color
}

// Surface is the pixel backend of a Rasterizer.
type Surface interface {
	// Resize sets the backing size in device pixels.
	Resize(w, h int)
	// Fill replaces every pixel with c.
	Fill(c Color)
	// DrawTriangles composites tris in order over the current contents.
	DrawTriangles(tris []Triangle) error
}

// Rasterizer is the software Renderer: it flattens the scene into
// depth-sorted, flat-shaded triangles and submits them to a Surface.
//
// The depth buffer is the list of triangles rendered since the last depth
// clear. Each Render merges its triangles into that list, resorts it far to
// near and submits it, so consecutive renders composite with correct
// occlusion until ClearDepth.
type Rasterizer struct {
	surface    Surface
	width      int
	height     int
	pixelRatio float64
	clearColor Color
	viewport   ViewportTransform

	depth   []renderCommand
	sortBuf []renderCommand
	tris    []Triangle
	order   int

	stats RenderStats
}

// RenderStats counts rasterizer work since creation.
type RenderStats struct {
	Renders     int // Render calls
	ColorClears int
	DepthClears int
	Triangles   int // triangles submitted by the last Render
}

// NewRasterizer creates a rasterizer drawing onto surface.
func NewRasterizer(surface Surface) *Rasterizer {
	return &Rasterizer{
		surface:    surface,
		pixelRatio: 1,
		clearColor: defaultBackground,
	}
}

// SetSize implements Renderer.
func (r *Rasterizer) SetSize(w, h int) {
	r.width, r.height = w, h
	r.resize()
}

// SetPixelRatio implements Renderer.
func (r *Rasterizer) SetPixelRatio(ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	r.pixelRatio = ratio
	r.resize()
}

func (r *Rasterizer) resize() {
	pw, ph := r.DeviceSize()
	r.viewport = newViewportTransform(float64(pw), float64(ph))
	r.surface.Resize(pw, ph)
}

// DeviceSize returns the surface size in device pixels.
func (r *Rasterizer) DeviceSize() (int, int) {
	return int(float64(r.width) * r.pixelRatio), int(float64(r.height) * r.pixelRatio)
}

// SetClearColor implements Renderer.
func (r *Rasterizer) SetClearColor(c Color) {
	r.clearColor = c
}

// ClearColorValue returns the current clear color.
func (r *Rasterizer) ClearColorValue() Color {
	return r.clearColor
}

// ClearColor implements Renderer.
func (r *Rasterizer) ClearColor() {
	r.stats.ColorClears++
	r.surface.Fill(r.clearColor)
}

// ClearDepth implements Renderer.
func (r *Rasterizer) ClearDepth() {
	r.stats.DepthClears++
	r.depth = r.depth[:0]
	r.order = 0
}

// Clear implements Renderer.
func (r *Rasterizer) Clear() {
	r.ClearColor()
	r.ClearDepth()
}

// Stats returns the rasterizer counters.
func (r *Rasterizer) Stats() RenderStats {
	return r.stats
}

// Render implements Renderer.
func (r *Rasterizer) Render(scene *Scene, cam *Camera) error {
	r.stats.Renders++
	scene.UpdateWorld()

	n := len(r.depth)
	r.depth = r.emit(scene, cam, r.depth)
	r.stats.Triangles = len(r.depth) - n
	if len(r.depth) == n {
		return nil
	}

	r.sortByDepth()

	r.tris = r.tris[:0]
	for i := range r.depth {
		r.tris = append(r.tris, r.depth[i].tri)
	}
	return r.surface.DrawTriangles(r.tris)
}
