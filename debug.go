package xmap

import "time"

// FrameStats counts render loop activity since the view was initialized.
type FrameStats struct {
	Ticks  int // ticks with a model attached
	Draws  int // ticks that issued a draw
	Errors int // frames whose draw failed or panicked

	LastDraw time.Duration // wall time of the most recent draw
}

// debugStats holds per-frame timing. Only populated when debug is enabled.
type debugStats struct {
	overlayTime time.Duration
	renderTime  time.Duration
	triangles   int
}

// debugLog logs frame timing at debug level.
func (mv *MapView) debugLog(stats debugStats) {
	if !mv.debug {
		return
	}
	mv.logger.Debug("frame",
		"overlays", stats.overlayTime,
		"render", stats.renderTime,
		"total", stats.overlayTime+stats.renderTime,
		"triangles", stats.triangles,
	)
}
