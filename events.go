package xmap

// EventSink is the interface for optional ECS integration.
// When set on a MapView, lifecycle events are forwarded to it.
type EventSink interface {
	EmitEvent(event ViewEvent)
}

// ViewEventType identifies a kind of MapView lifecycle event.
type ViewEventType uint8

const (
	EventModelAttached ViewEventType = iota // a model root was attached
	EventModelCleared                       // the model root was detached
	EventThemeChanged                       // a theme was applied
	EventResized                            // camera and viewport were recomputed
)

// String returns the event type name.
func (t ViewEventType) String() string {
	switch t {
	case EventModelAttached:
		return "model-attached"
	case EventModelCleared:
		return "model-cleared"
	case EventThemeChanged:
		return "theme-changed"
	case EventResized:
		return "resized"
	default:
		return "unknown"
	}
}

// ViewEvent carries lifecycle data for the ECS bridge.
type ViewEvent struct {
	Type   ViewEventType
	ViewID string
	// Resize fields (valid for EventResized)
	Width  int
	Height int
	// Theme fields (valid for EventThemeChanged)
	Background Color
}

// emit forwards e to the sink, if any.
func (mv *MapView) emit(e ViewEvent) {
	if mv.sink == nil {
		return
	}
	e.ViewID = mv.ID
	mv.sink.EmitEvent(e)
}
