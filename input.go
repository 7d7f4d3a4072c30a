package xmap

// ClickContext describes a click on the map and what it hit.
type ClickContext struct {
	// Point is the click position in host pixels.
	Point Vec2
	// Ray is the world ray through Point.
	Ray Ray
	// Hit is the nearest mesh under Point. Valid only when HasHit is true.
	Hit    Hit
	HasHit bool
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

// handlerRegistry holds the click callbacks of a MapView.
type handlerRegistry struct {
	click  []clickHandler
	nextID uint32
}

// CallbackHandle allows removing a registered click callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.click = removeClickHandler(h.reg.click, h.id)
}

func removeClickHandler(s []clickHandler, id uint32) []clickHandler {
	for i, h := range s {
		if h.id == id {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// OnClick registers fn to run for every Click, hit or miss.
func (mv *MapView) OnClick(fn func(ClickContext)) CallbackHandle {
	mv.handlers.nextID++
	id := mv.handlers.nextID
	mv.handlers.click = append(mv.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &mv.handlers}
}

// Click picks at p and fires the click callbacks. Hosts call it for real
// pointer input; tests and scripts call it to inject clicks.
func (mv *MapView) Click(p Vec2) (ClickContext, error) {
	hit, ok, err := mv.Pick(p)
	if err != nil {
		return ClickContext{}, err
	}
	ctx := ClickContext{Point: p, Ray: mv.state.raycaster.Ray, Hit: hit, HasHit: ok}
	// Handlers may remove themselves.
	handlers := append([]clickHandler(nil), mv.handlers.click...)
	for _, h := range handlers {
		h.fn(ctx)
	}
	return ctx, nil
}
