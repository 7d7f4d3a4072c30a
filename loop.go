package xmap

import (
	"context"
	"fmt"
	"time"
)

// StartRenderer runs the render loop on the calling goroutine at the
// configured frame rate until ctx is done or Destroy is called. It returns
// ctx.Err(), which is nil when Destroy stopped the loop. A failing frame is
// logged and never stops the loop.
func (mv *MapView) StartRenderer(ctx context.Context) error {
	if mv.state == nil {
		return ErrNotInitialized
	}
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	mv.tasksMu.Lock()
	mv.stopLoop = cancel
	mv.tasksMu.Unlock()

	ticker := time.NewTicker(time.Second / time.Duration(mv.frameRate))
	defer ticker.Stop()

	mv.logger.Debug("render loop started", "fps", mv.frameRate)
	for {
		select {
		case <-loopCtx.Done():
			mv.logger.Debug("render loop stopped")
			return ctx.Err()
		case <-ticker.C:
			mv.Tick()
		}
	}
}

// Tick runs one render loop iteration: queued tasks, animation, and at most
// one draw. It reports whether a draw was issued. Panics inside the frame
// are recovered and logged so the caller's schedule is unaffected.
func (mv *MapView) Tick() (drawn bool) {
	defer func() {
		if r := recover(); r != nil {
			mv.stats.Errors++
			mv.logger.Error("frame failed", "err", fmt.Sprint(r))
			drawn = false
		}
	}()
	mv.runTasks()
	return mv.tick()
}

// tick decides whether this frame must be drawn and draws it.
func (mv *MapView) tick() bool {
	st := mv.state
	if st == nil || mv.model == nil {
		return false
	}
	mv.stats.Ticks++

	rerender := mv.engine.Update()
	if mv.needsUpdate {
		// Cleared first so a panicking hook fails one frame, not every frame.
		mv.needsUpdate = false
		mv.model.FrameUpdate(st.scene, st.camera)
		st.camera.UpdateProjection()
		mv.projectionDirty = true
		rerender = true
	} else if mv.projectionDirty {
		mv.projectionDirty = false
		rerender = true
	}
	if !rerender {
		return false
	}
	mv.draw(st)
	return true
}

// draw updates models and overlays, then clears color, renders and clears
// depth, in that order.
func (mv *MapView) draw(st *viewState) {
	var stats debugStats
	start := time.Now()

	mv.model.MarkBoundsDirty()
	if mv.overlays != nil {
		mv.overlays.UpdateOverlays(mv)
	}
	if mv.debug {
		stats.overlayTime = time.Since(start)
	}

	t0 := time.Now()
	err := renderFrame(st)

	mv.stats.Draws++
	mv.stats.LastDraw = time.Since(start)
	if err != nil {
		mv.stats.Errors++
		mv.logger.Error("render failed", "err", err)
	}

	if mv.debug {
		stats.renderTime = time.Since(t0)
		if r, ok := st.renderer.(*Rasterizer); ok {
			stats.triangles = r.Stats().Triangles
		}
		mv.debugLog(stats)
	}
}

// renderFrame clears color, renders, and clears depth even if Render panics.
func renderFrame(st *viewState) error {
	st.renderer.ClearColor()
	defer st.renderer.ClearDepth()
	return st.renderer.Render(st.scene, st.camera)
}
