package scheduler

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/senghongH/devdocs/pkg/vdom"
)

// patchCollector records patch batches delivered by the scheduler
type patchCollector struct {
	mu      sync.Mutex
	batches [][]vdom.Patch
}

func (c *patchCollector) apply(patches []vdom.Patch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, patches)
}

func (c *patchCollector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.batches)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestSchedulerRendersDirtyFiber(t *testing.T) {
	s := NewScheduler()
	collector := &patchCollector{}
	s.SetPatchApplier(collector.apply)

	var mu sync.Mutex
	text := "first"

	fiber := s.CreateFiber(func() *vdom.VNode {
		mu.Lock()
		defer mu.Unlock()
		return vdom.NewElement("p", nil, vdom.NewText(text))
	}, nil)

	// Establish the baseline tree without emitting patches
	fiber.SetVNode(fiber.render())

	s.Start()
	defer s.Stop()

	mu.Lock()
	text = "second"
	mu.Unlock()
	s.MarkDirty(fiber)

	waitFor(t, func() bool { return collector.count() == 1 })

	collector.mu.Lock()
	patch := collector.batches[0][0]
	collector.mu.Unlock()

	if patch.Op != vdom.OpReplaceText || patch.Value != "second" {
		t.Errorf("got %v, want ReplaceText(second)", patch)
	}
}

func TestSchedulerNoPatchesWhenUnchanged(t *testing.T) {
	s := NewScheduler()
	collector := &patchCollector{}
	s.SetPatchApplier(collector.apply)

	fiber := s.CreateFiber(func() *vdom.VNode {
		return vdom.NewElement("p", nil, vdom.NewText("same"))
	}, nil)
	fiber.SetVNode(fiber.render())

	s.Start()
	defer s.Stop()

	s.MarkDirty(fiber)

	// Give the loop time to process; no batch may arrive
	time.Sleep(100 * time.Millisecond)
	if got := collector.count(); got != 0 {
		t.Errorf("unchanged render produced %d batches", got)
	}
}

func TestSchedulerDirtyIsIdempotent(t *testing.T) {
	s := NewScheduler()

	renders := make(chan struct{}, 16)
	fiber := s.CreateFiber(func() *vdom.VNode {
		renders <- struct{}{}
		return vdom.NewText("x")
	}, nil)

	s.Start()
	defer s.Stop()

	// Marking an already-dirty fiber must not queue extra renders
	s.MarkDirty(fiber)
	s.MarkDirty(fiber)
	s.MarkDirty(fiber)

	waitFor(t, func() bool { return len(renders) >= 1 })
	time.Sleep(50 * time.Millisecond)

	if got := len(renders); got > 2 {
		t.Errorf("three marks caused %d renders", got)
	}
}

func TestSchedulerPanicUnmountsFiber(t *testing.T) {
	s := NewScheduler()

	var handled sync.WaitGroup
	handled.Add(1)
	s.SetDefaultErrorHandler(func(fiber *Fiber, err any) bool {
		handled.Done()
		return false
	})

	fiber := s.CreateFiber(func() *vdom.VNode {
		panic("render exploded")
	}, nil)

	if s.FiberCount() != 1 {
		t.Fatalf("FiberCount = %d, want 1", s.FiberCount())
	}

	s.Start()
	defer s.Stop()

	s.MarkDirty(fiber)
	handled.Wait()

	waitFor(t, func() bool { return s.FiberCount() == 0 })
}

func TestSchedulerStopEndsLoop(t *testing.T) {
	before := runtime.NumGoroutine()

	// Every session disconnect stops one scheduler; none of their loop
	// goroutines may outlive the Stop call
	for i := 0; i < 50; i++ {
		s := NewScheduler()
		s.Start()
		s.Stop()
	}

	waitFor(t, func() bool { return runtime.NumGoroutine() <= before+2 })
}

func TestSchedulerRestartAfterStop(t *testing.T) {
	s := NewScheduler()
	collector := &patchCollector{}
	s.SetPatchApplier(collector.apply)

	fiber := s.CreateFiber(func() *vdom.VNode {
		return vdom.NewElement("p", nil, vdom.NewText("again"))
	}, nil)

	s.Start()
	s.Stop()

	s.Start()
	defer s.Stop()

	s.MarkDirty(fiber)
	waitFor(t, func() bool { return collector.count() == 1 })
}

func TestSchedulerSweepsUnqueuedDirtyFibers(t *testing.T) {
	s := NewScheduler()

	renders := make(chan string, 8)
	early := s.CreateFiber(func() *vdom.VNode {
		renders <- "early"
		return vdom.NewText("a")
	}, nil)
	late := s.CreateFiber(func() *vdom.VNode {
		renders <- "late"
		return vdom.NewText("b")
	}, nil)

	// Marked before Start: dirty is set but no wake is queued, the same
	// state a full wake buffer leaves behind
	s.MarkDirty(early)

	s.Start()
	defer s.Stop()

	s.MarkDirty(late)

	seen := map[string]bool{}
	waitFor(t, func() bool {
		for {
			select {
			case name := <-renders:
				seen[name] = true
			default:
				return seen["early"] && seen["late"]
			}
		}
	})
}

func TestSchedulerFiberLifecycle(t *testing.T) {
	s := NewScheduler()

	fiber := s.CreateFiber(func() *vdom.VNode { return vdom.NewText("x") }, nil)

	if got := s.GetFiber(fiber.ID()); got != fiber {
		t.Error("GetFiber did not return the created fiber")
	}

	s.RemoveFiber(fiber)
	if got := s.GetFiber(fiber.ID()); got != nil {
		t.Error("fiber still registered after removal")
	}
}
