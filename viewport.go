package xmap

// ViewportTransform maps camera-projected NDC in [-1,1]×[-1,1] to pixel
// coordinates with the origin at the top-left. It is the affine
//
//	Translate(w/2, h/2) * Scale(w/2, -h/2)
type ViewportTransform struct {
	m      [6]float64
	inv    [6]float64
	width  float64
	height float64
}

// newViewportTransform builds the transform for a w×h pixel surface.
func newViewportTransform(w, h float64) ViewportTransform {
	hw, hh := w/2, h/2
	m := multiplyAffine(
		[6]float64{1, 0, 0, 1, hw, hh},
		[6]float64{hw, 0, 0, -hh, 0, 0},
	)
	return ViewportTransform{m: m, inv: invertAffine(m), width: w, height: h}
}

// Matrix returns the affine matrix in [a, b, c, d, tx, ty] layout.
func (v ViewportTransform) Matrix() [6]float64 {
	return v.m
}

// Size returns the pixel size the transform was built for.
func (v ViewportTransform) Size() (w, h float64) {
	return v.width, v.height
}

// NDCToScreen maps an NDC point to pixels.
func (v ViewportTransform) NDCToScreen(x, y float64) (sx, sy float64) {
	return transformPoint(v.m, x, y)
}

// ScreenToNDC maps a pixel position back to NDC.
func (v ViewportTransform) ScreenToNDC(sx, sy float64) (x, y float64) {
	return transformPoint(v.inv, sx, sy)
}
