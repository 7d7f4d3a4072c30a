package xmap

// Host is the widget a MapView is bound to. Resize callbacks must be
// delivered on the goroutine that drives the MapView; hosts living on other
// goroutines should forward through MapView.Do.
type Host interface {
	// ClientSize returns the widget size in CSS pixels.
	ClientSize() (w, h int)
	// PixelRatio returns device pixels per CSS pixel.
	PixelRatio() float64
	// SetOpacity sets the opacity of the map container.
	SetOpacity(alpha float64)
	// OnResize registers fn for size and pixel-ratio changes and returns a
	// function that unregisters it.
	OnResize(fn func()) (cancel func())
}

// StaticHost is a Host with a size set by the caller. It suits headless
// rendering and tests.
type StaticHost struct {
	Width, Height int
	Ratio         float64
	Opacity       float64

	listeners map[int]func()
	nextID    int
}

// NewStaticHost creates a host of the given size with a pixel ratio of 1.
func NewStaticHost(w, h int) *StaticHost {
	return &StaticHost{Width: w, Height: h, Ratio: 1}
}

// ClientSize implements Host.
func (h *StaticHost) ClientSize() (int, int) { return h.Width, h.Height }

// PixelRatio implements Host.
func (h *StaticHost) PixelRatio() float64 {
	if h.Ratio <= 0 {
		return 1
	}
	return h.Ratio
}

// SetOpacity implements Host.
func (h *StaticHost) SetOpacity(alpha float64) { h.Opacity = alpha }

// OnResize implements Host.
func (h *StaticHost) OnResize(fn func()) func() {
	if h.listeners == nil {
		h.listeners = make(map[int]func())
	}
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() { delete(h.listeners, id) }
}

// Resize changes the host size and notifies listeners.
func (h *StaticHost) Resize(w, ht int) {
	h.Width, h.Height = w, ht
	h.notify()
}

// SetPixelRatio changes the pixel ratio and notifies listeners.
func (h *StaticHost) SetPixelRatio(ratio float64) {
	h.Ratio = ratio
	h.notify()
}

func (h *StaticHost) notify() {
	for _, fn := range h.listeners {
		fn()
	}
}
