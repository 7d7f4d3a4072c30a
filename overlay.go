package xmap

import (
	"errors"
	"slices"
)

// Overlays is the overlay collaborator of a MapView.
type Overlays interface {
	// UpdateOverlays repositions overlays. Called once per redraw, before
	// the color buffer is cleared.
	UpdateOverlays(mv *MapView)
	// ClearOverlays removes every overlay. Called by MapView.Clear.
	ClearOverlays()
}

// Marker is a screen-space overlay pinned to a map Location.
type Marker struct {
	ID       string
	Location Location
	UserData any

	// Screen is the projected position as of the last update.
	Screen ScreenPosition
	// Visible is false when the marker's floor is hidden or invalid, or
	// when it projects outside the viewport.
	Visible bool
}

// MarkerLayer is an Overlays implementation holding point markers. After
// each update markers are ordered far to near so they can be drawn in order.
type MarkerLayer struct {
	markers []*Marker
}

// NewMarkerLayer creates an empty marker layer.
func NewMarkerLayer() *MarkerLayer {
	return &MarkerLayer{}
}

// Add places a marker at loc. An existing marker with the same ID is moved.
func (l *MarkerLayer) Add(id string, loc Location) *Marker {
	for _, m := range l.markers {
		if m.ID == id {
			m.Location = loc
			return m
		}
	}
	m := &Marker{ID: id, Location: loc}
	l.markers = append(l.markers, m)
	return m
}

// Remove deletes the marker with the given ID.
func (l *MarkerLayer) Remove(id string) bool {
	for i, m := range l.markers {
		if m.ID == id {
			l.markers = slices.Delete(l.markers, i, i+1)
			return true
		}
	}
	return false
}

// Markers returns the markers in draw order. MUST NOT be mutated.
func (l *MarkerLayer) Markers() []*Marker {
	return l.markers
}

// Len returns the number of markers.
func (l *MarkerLayer) Len() int {
	return len(l.markers)
}

// UpdateOverlays implements Overlays.
func (l *MarkerLayer) UpdateOverlays(mv *MapView) {
	w, h := mv.Viewport().Size()
	for _, m := range l.markers {
		pos, err := mv.LocationToViewport(m.Location)
		if err != nil {
			m.Visible = false
			m.Screen = offscreen
			if errors.Is(err, ErrInvalidFloor) {
				mv.Logger().Warn("marker on invalid floor", "marker", m.ID, "floor", m.Location.Floor)
			}
			continue
		}
		m.Screen = pos
		m.Visible = !pos.Offscreen() &&
			pos.X >= 0 && pos.X <= w &&
			pos.Y >= 0 && pos.Y <= h
	}
	slices.SortStableFunc(l.markers, func(a, b *Marker) int {
		switch {
		case a.Screen.Distance > b.Screen.Distance:
			return -1
		case a.Screen.Distance < b.Screen.Distance:
			return 1
		}
		return 0
	})
}

// ClearOverlays implements Overlays.
func (l *MarkerLayer) ClearOverlays() {
	clear(l.markers)
	l.markers = l.markers[:0]
}
