package viz

import (
	"testing"
	"time"

	"github.com/sebastiengilbert73/auto-pde/internal/dataset"
)

func TestSchedulerPendingEmitsOncePerArm(t *testing.T) {
	s := &teaScheduler{}

	if cmd := s.pending(); cmd != nil {
		t.Fatal("pending before any Arm should yield nothing")
	}

	s.Arm(50 * time.Millisecond)
	if cmd := s.pending(); cmd == nil {
		t.Fatal("pending after Arm should yield a command")
	}
	if cmd := s.pending(); cmd != nil {
		t.Fatal("pending should yield the command only once per Arm")
	}

	s.Disarm()
	s.Arm(50 * time.Millisecond)
	if cmd := s.pending(); cmd == nil {
		t.Fatal("a fresh Arm should queue a new command")
	}
}

func TestSchedulerDropsTicksArmedBeforeDisarm(t *testing.T) {
	s := &teaScheduler{}

	s.Arm(50 * time.Millisecond)
	stale := TickMsg{epoch: s.epoch}
	if !s.live(stale) {
		t.Fatal("a tick from the current arm epoch should be live")
	}

	s.Disarm()
	if s.live(stale) {
		t.Fatal("Disarm should invalidate ticks already in flight")
	}

	s.Arm(50 * time.Millisecond)
	if s.live(stale) {
		t.Fatal("re-arming should not revive a tick from an earlier epoch")
	}
	if !s.live(TickMsg{epoch: s.epoch}) {
		t.Fatal("a tick from the new epoch should be live")
	}
}

func TestSchedulerDisarmedTicksNeverLive(t *testing.T) {
	s := &teaScheduler{}
	s.Arm(50 * time.Millisecond)
	s.Disarm()
	if s.live(TickMsg{epoch: s.epoch}) {
		t.Fatal("no tick should be live while disarmed, whatever its epoch")
	}
}

func TestViewerIgnoresStaleTick(t *testing.T) {
	v := NewViewer("test", dataset.Sample())

	v.ctrl.Play()
	stale := TickMsg{epoch: v.sched.epoch}
	v.ctrl.Pause()
	v.ctrl.Play()

	model, cmd := v.Update(stale)
	v = model.(Viewer)
	if cmd != nil {
		t.Fatal("a stale tick must not reschedule")
	}
	if got := v.ctrl.Frame(); got != 0 {
		t.Fatalf("stale tick advanced the frame to %d", got)
	}

	model, cmd = v.Update(TickMsg{epoch: v.sched.epoch})
	v = model.(Viewer)
	if cmd == nil {
		t.Fatal("a live tick should reschedule the next one")
	}
	if got := v.ctrl.Frame(); got != 1 {
		t.Fatalf("live tick should advance to frame 1, got %d", got)
	}
}
