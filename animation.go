package xmap

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AnimationEngine advances in-flight animations once per tick and reports
// whether any animated value changed.
type AnimationEngine interface {
	Update() bool
}

// Tween animates any number of float64 fields from their value at Add time
// to a target over a shared duration and easing function.
type Tween struct {
	tweens   []*gween.Tween
	fields   []*float64
	targets  []float64
	duration float32
	easeFn   ease.TweenFunc

	// OnComplete, if set, runs once when the tween finishes.
	OnComplete func()

	Done bool
}

// NewTween creates an empty tween. Add fields before handing it to an Animator.
func NewTween(duration float32, fn ease.TweenFunc) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	return &Tween{duration: duration, easeFn: fn}
}

// Add animates *field from its current value to the target value. gween
// interpolates in float32; the exact target is written on the last step.
func (t *Tween) Add(field *float64, to float64) *Tween {
	t.tweens = append(t.tweens, gween.New(float32(*field), float32(to), t.duration, t.easeFn))
	t.fields = append(t.fields, field)
	t.targets = append(t.targets, to)
	return t
}

// Stop marks the tween done without writing further values.
func (t *Tween) Stop() {
	t.Done = true
}

// Update advances all fields by dt seconds and reports whether any field
// value changed.
func (t *Tween) Update(dt float32) bool {
	if t.Done {
		return false
	}
	changed := false
	allDone := true
	for i, tw := range t.tweens {
		val, finished := tw.Update(dt)
		v := float64(val)
		if finished {
			v = t.targets[i]
		}
		if *t.fields[i] != v {
			*t.fields[i] = v
			changed = true
		}
		if !finished {
			allDone = false
		}
	}
	if allDone {
		t.Done = true
		if t.OnComplete != nil {
			t.OnComplete()
		}
	}
	return changed
}

// Animator is the default AnimationEngine: a list of tweens advanced by the
// wall-clock time elapsed since the previous Update.
type Animator struct {
	tweens []*Tween
	now    func() time.Time
	last   time.Time
}

// NewAnimator creates an animator driven by time.Now.
func NewAnimator() *Animator {
	return &Animator{now: time.Now}
}

// Add registers a tween. It starts advancing on the next Update.
func (a *Animator) Add(t *Tween) {
	a.tweens = append(a.tweens, t)
}

// Len returns the number of tweens still running.
func (a *Animator) Len() int {
	return len(a.tweens)
}

// Update implements AnimationEngine using elapsed wall-clock time.
func (a *Animator) Update() bool {
	now := a.now()
	if len(a.tweens) == 0 {
		a.last = now
		return false
	}
	if a.last.IsZero() {
		a.last = now
	}
	dt := float32(now.Sub(a.last).Seconds())
	a.last = now
	return a.Step(dt)
}

// Step advances every tween by dt seconds, drops finished tweens and reports
// whether any value changed.
func (a *Animator) Step(dt float32) bool {
	changed := false
	kept := a.tweens[:0]
	for _, t := range a.tweens {
		if t.Update(dt) {
			changed = true
		}
		if !t.Done {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(a.tweens); i++ {
		a.tweens[i] = nil
	}
	a.tweens = kept
	return changed
}
