// Package playback holds the state machine that drives frame advancement:
// which frame is current, whether playback is running, and the single
// recurring tick that advances it.
package playback

import (
	"time"

	"github.com/sebastiengilbert73/auto-pde/internal/dataset"
	"github.com/sebastiengilbert73/auto-pde/internal/surface"
)

// TickPeriod is the fixed interval between automatic frame advances.
const TickPeriod = 100 * time.Millisecond

// Scheduler owns the recurring tick on behalf of a Controller. Arm schedules
// the tick; Disarm cancels it synchronously, so a pause or seek issued
// between two ticks always takes effect before the next tick would fire.
// Implementations that cannot truly cancel a pending timer (the bubbletea
// adapter) must instead drop ticks scheduled before the last Disarm.
type Scheduler interface {
	Arm(period time.Duration)
	Disarm()
}

// Controller is the only stateful, time-driven part of the viewer. All of
// its methods run on one cooperative timeline: user input and tick delivery
// are serialized by the caller, so no internal locking is needed.
//
// Invariant: at most one armed tick exists at any time. Every transition
// that stops playback, replaces the dataset, or tears the controller down
// disarms before returning.
type Controller struct {
	sched   Scheduler
	ds      *dataset.Dataset
	bounds  surface.Bounds
	frame   int
	playing bool
	armed   bool
}

func NewController(sched Scheduler) *Controller {
	return &Controller{sched: sched}
}

// Load replaces the active dataset: any outstanding tick is cancelled first,
// the position resets to frame 0 paused, and the axis bounds are recomputed.
// Bounds are derived exactly once per load and reused for every frame.
func (c *Controller) Load(ds *dataset.Dataset) {
	c.disarm()
	c.playing = false
	c.frame = 0
	c.ds = ds
	c.bounds = surface.ComputeBounds(ds)
}

// Play starts automatic advancement. Idempotent: calling it while already
// playing arms nothing further.
func (c *Controller) Play() {
	if c.ds == nil || c.playing {
		return
	}
	c.playing = true
	c.arm()
}

// Pause stops automatic advancement and cancels the outstanding tick.
// Idempotent.
func (c *Controller) Pause() {
	c.playing = false
	c.disarm()
}

// Toggle pauses when playing and plays when paused.
func (c *Controller) Toggle() {
	if c.playing {
		c.Pause()
	} else {
		c.Play()
	}
}

// Seek pauses playback and jumps to the clamped frame index. A manual scrub
// always wins over the timer, so seeking never leaves playback running.
// Out-of-range indices are clamped rather than rejected.
func (c *Controller) Seek(index int) {
	c.Pause()
	if c.ds == nil {
		return
	}
	if index < 0 {
		index = 0
	}
	if max := c.ds.NumFrames() - 1; index > max {
		index = max
	}
	c.frame = index
}

// Step seeks relative to the current frame.
func (c *Controller) Step(delta int) {
	c.Seek(c.frame + delta)
}

// Tick advances the frame index while playing, wrapping past the last frame
// so the animation loops forever. Ticks delivered while paused are ignored;
// they are stale firings the scheduler failed to suppress.
func (c *Controller) Tick() {
	if !c.playing || c.ds == nil {
		return
	}
	c.frame = (c.frame + 1) % c.ds.NumFrames()
}

// Close tears the controller down, cancelling any outstanding tick. A tick
// firing after Close would mutate dead state.
func (c *Controller) Close() {
	c.playing = false
	c.disarm()
	c.ds = nil
}

func (c *Controller) arm() {
	if c.armed {
		return
	}
	c.armed = true
	c.sched.Arm(TickPeriod)
}

func (c *Controller) disarm() {
	if !c.armed {
		return
	}
	c.armed = false
	c.sched.Disarm()
}

// Frame reports the current frame index.
func (c *Controller) Frame() int { return c.frame }

// Playing reports whether the timer is advancing frames.
func (c *Controller) Playing() bool { return c.playing }

// NumFrames reports the frame count of the loaded dataset, 0 when empty.
func (c *Controller) NumFrames() int {
	if c.ds == nil {
		return 0
	}
	return c.ds.NumFrames()
}

// Dataset returns the active dataset, nil when none is loaded.
func (c *Controller) Dataset() *dataset.Dataset { return c.ds }

// Bounds returns the fixed axis bounds of the active dataset.
func (c *Controller) Bounds() surface.Bounds { return c.bounds }

// Surface projects the current frame against the fixed bounds.
func (c *Controller) Surface() surface.Surface {
	return surface.Project(c.ds, c.bounds, c.frame)
}
