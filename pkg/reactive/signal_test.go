package reactive

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/senghongH/devdocs/pkg/scheduler"
	"github.com/senghongH/devdocs/pkg/vdom"
)

// recordingScheduler counts dirty marks per fiber and lets tests pose as a
// scheduler mid-render by setting current.
type recordingScheduler struct {
	marks   map[uint32]int
	current *scheduler.Fiber
}

func newRecordingScheduler() *recordingScheduler {
	return &recordingScheduler{marks: make(map[uint32]int)}
}

func (r *recordingScheduler) MarkDirty(fiber *scheduler.Fiber) {
	if fiber != nil {
		r.marks[fiber.ID()]++
	}
}

func (r *recordingScheduler) CurrentFiber() *scheduler.Fiber {
	return r.current
}

func testFiber(t *testing.T) *scheduler.Fiber {
	t.Helper()
	s := scheduler.NewScheduler()
	return s.CreateFiber(nil, nil)
}

func TestStateGetSet(t *testing.T) {
	state := NewState(41, nil)

	if got := state.Get(); got != 41 {
		t.Errorf("Get = %d, want 41", got)
	}

	state.Set(42)
	if got := state.Get(); got != 42 {
		t.Errorf("Get after Set = %d, want 42", got)
	}
}

func TestStateUpdate(t *testing.T) {
	state := NewState(map[int]bool{}, nil)

	state.Update(func(m map[int]bool) map[int]bool {
		next := map[int]bool{1: true}
		return next
	})

	if !state.Get()[1] {
		t.Error("Update result not visible")
	}
}

func TestStateNotifiesSubscribers(t *testing.T) {
	sched := newRecordingScheduler()
	state := NewState("a", sched)
	fiber := testFiber(t)

	state.Subscribe(fiber)
	state.Set("b")

	if got := sched.marks[fiber.ID()]; got != 1 {
		t.Errorf("fiber marked dirty %d times, want 1", got)
	}

	state.Unsubscribe(fiber)
	state.Set("c")

	if got := sched.marks[fiber.ID()]; got != 1 {
		t.Errorf("unsubscribed fiber marked again (%d marks)", got)
	}
}

func TestStateGetTracksCurrentFiber(t *testing.T) {
	sched := newRecordingScheduler()
	state := NewState(1, sched)
	fiber := testFiber(t)

	sched.current = fiber
	_ = state.Get()
	sched.current = nil

	state.Set(2)
	if got := sched.marks[fiber.ID()]; got != 1 {
		t.Errorf("read during render did not subscribe (marks = %d)", got)
	}
}

func TestStateGetOutsideRenderDoesNotSubscribe(t *testing.T) {
	sched := newRecordingScheduler()
	state := NewState(1, sched)

	_ = state.Get()
	state.Set(2)

	if len(sched.marks) != 0 {
		t.Errorf("Get outside a render subscribed something (marks = %v)", sched.marks)
	}
}

// Two sessions rendering at the same time on their own schedulers must each
// subscribe only their own fiber, no matter how the renders interleave.
func TestConcurrentRendersIsolatePerScheduler(t *testing.T) {
	type session struct {
		sched *scheduler.Scheduler
		fiber *scheduler.Fiber
		state *State[int]
	}

	newSession := func() *session {
		s := &session{sched: scheduler.NewScheduler()}
		s.state = NewState(0, s.sched)
		s.fiber = s.sched.CreateFiber(func() *vdom.VNode {
			_ = s.state.Get()
			return nil
		}, nil)
		return s
	}

	a := newSession()
	b := newSession()

	var crossed atomic.Int32
	var wg sync.WaitGroup
	for _, s := range []*session{a, b} {
		wg.Add(1)
		go func(s *session) {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				s.sched.RenderFiber(s.fiber)

				s.state.depsMu.RLock()
				for id := range s.state.deps {
					if id != s.fiber.ID() {
						crossed.Add(1)
					}
				}
				s.state.depsMu.RUnlock()
			}
		}(s)
	}
	wg.Wait()

	if n := crossed.Load(); n != 0 {
		t.Errorf("foreign fiber subscribed %d times", n)
	}
	for _, s := range []*session{a, b} {
		if got := len(s.state.deps); got != 1 {
			t.Errorf("state has %d subscribers, want 1", got)
		}
	}
}

func TestStateNilSchedulerIsInert(t *testing.T) {
	state := NewState(0, nil)
	fiber := testFiber(t)

	state.Subscribe(fiber)
	state.Set(1) // must not panic
}

func TestComputedMemoizes(t *testing.T) {
	calls := 0
	computed := NewComputed(func() int {
		calls++
		return calls * 10
	}, nil)

	if got := computed.Get(); got != 10 {
		t.Errorf("first Get = %d, want 10", got)
	}
	if got := computed.Get(); got != 10 {
		t.Errorf("cached Get = %d, want 10", got)
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}

	computed.Invalidate()
	if got := computed.Get(); got != 20 {
		t.Errorf("Get after Invalidate = %d, want 20", got)
	}
}

func TestRunBatchCoalescesUpdates(t *testing.T) {
	sched := newRecordingScheduler()
	state := NewState(0, sched)
	fiber := testFiber(t)
	state.Subscribe(fiber)

	RunBatch(sched, func() {
		state.Set(1)
		state.Set(2)
		state.Set(3)
	})

	if got := sched.marks[fiber.ID()]; got != 1 {
		t.Errorf("batched updates marked fiber %d times, want 1", got)
	}
	if got := state.Get(); got != 3 {
		t.Errorf("final value = %d, want 3", got)
	}
}
