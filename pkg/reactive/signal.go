package reactive

import (
	"sync"
	"sync/atomic"

	"github.com/senghongH/devdocs/pkg/scheduler"
)

// Scheduler is the dependency sink for reactive values. Mutating a signal
// marks every subscribed fiber dirty on it. CurrentFiber reports the fiber
// the scheduler is rendering, so a Get during that render subscribes it.
// The register lives on the scheduler, never in package state: concurrent
// renders on different schedulers must not see each other's fibers.
type Scheduler interface {
	MarkDirty(fiber *scheduler.Fiber)
	CurrentFiber() *scheduler.Fiber
}

// Signal is the interface for reactive values
type Signal[T any] interface {
	Get() T
	Set(T)
	Subscribe(fiber *scheduler.Fiber)
	Unsubscribe(fiber *scheduler.Fiber)
}

// State represents a reactive state value
type State[T any] struct {
	value T
	mu    sync.RWMutex

	// Fibers that depend on this signal
	deps      map[uint32]*scheduler.Fiber
	depsMu    sync.RWMutex
	scheduler Scheduler
}

// NewState creates a new reactive state
func NewState[T any](initial T, sched Scheduler) *State[T] {
	return &State[T]{
		value:     initial,
		deps:      make(map[uint32]*scheduler.Fiber),
		scheduler: sched,
	}
}

// Get returns the current value and tracks dependencies
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.scheduler != nil {
		if fiber := s.scheduler.CurrentFiber(); fiber != nil {
			s.Subscribe(fiber)
		}
	}

	return s.value
}

// Set updates the value and marks dependent fibers as dirty
func (s *State[T]) Set(value T) {
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()

	s.notify()
}

// Update atomically reads, modifies, and writes the value
func (s *State[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	s.mu.Unlock()

	s.notify()
}

// notify marks all dependent fibers dirty, outside the value lock
func (s *State[T]) notify() {
	s.depsMu.RLock()
	deps := make([]*scheduler.Fiber, 0, len(s.deps))
	for _, fiber := range s.deps {
		deps = append(deps, fiber)
	}
	s.depsMu.RUnlock()

	for _, fiber := range deps {
		markDirtyOrBatch(s.scheduler, fiber)
	}
}

// Subscribe adds a fiber as a dependency
func (s *State[T]) Subscribe(fiber *scheduler.Fiber) {
	if fiber == nil {
		return
	}

	s.depsMu.Lock()
	defer s.depsMu.Unlock()

	s.deps[fiber.ID()] = fiber
}

// Unsubscribe removes a fiber as a dependency
func (s *State[T]) Unsubscribe(fiber *scheduler.Fiber) {
	if fiber == nil {
		return
	}

	s.depsMu.Lock()
	defer s.depsMu.Unlock()

	delete(s.deps, fiber.ID())
}

// Computed represents a memoized computed value
type Computed[T any] struct {
	compute   func() T
	value     T
	valid     bool
	mu        sync.Mutex
	scheduler Scheduler

	// Fibers that depend on this computed
	fiberDeps   map[uint32]*scheduler.Fiber
	fiberDepsMu sync.RWMutex
}

// NewComputed creates a new computed value
func NewComputed[T any](compute func() T, sched Scheduler) *Computed[T] {
	return &Computed[T]{
		compute:   compute,
		scheduler: sched,
		fiberDeps: make(map[uint32]*scheduler.Fiber),
	}
}

// Get returns the computed value, recalculating if necessary
func (c *Computed[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scheduler != nil {
		if fiber := c.scheduler.CurrentFiber(); fiber != nil {
			c.Subscribe(fiber)
		}
	}

	if !c.valid {
		c.value = c.compute()
		c.valid = true
	}

	return c.value
}

// Invalidate marks the computed value as needing recalculation
func (c *Computed[T]) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()

	c.fiberDepsMu.RLock()
	deps := make([]*scheduler.Fiber, 0, len(c.fiberDeps))
	for _, fiber := range c.fiberDeps {
		deps = append(deps, fiber)
	}
	c.fiberDepsMu.RUnlock()

	for _, fiber := range deps {
		markDirtyOrBatch(c.scheduler, fiber)
	}
}

// Subscribe adds a fiber as a dependency
func (c *Computed[T]) Subscribe(fiber *scheduler.Fiber) {
	if fiber == nil {
		return
	}

	c.fiberDepsMu.Lock()
	defer c.fiberDepsMu.Unlock()

	c.fiberDeps[fiber.ID()] = fiber
}

// Unsubscribe removes a fiber as a dependency
func (c *Computed[T]) Unsubscribe(fiber *scheduler.Fiber) {
	if fiber == nil {
		return
	}

	c.fiberDepsMu.Lock()
	defer c.fiberDepsMu.Unlock()

	delete(c.fiberDeps, fiber.ID())
}

// batchContext holds the current batch state
var batchContext atomic.Pointer[Batch]

// Batch collects dirty fibers so multiple state updates trigger a single
// re-render when the batch commits.
type Batch struct {
	scheduler   Scheduler
	dirtyFibers map[uint32]*scheduler.Fiber
	mu          sync.Mutex
	active      bool
}

// NewBatch creates a new batch context
func NewBatch(sched Scheduler) *Batch {
	return &Batch{
		scheduler:   sched,
		dirtyFibers: make(map[uint32]*scheduler.Fiber),
		active:      true,
	}
}

// Add adds a fiber to the batch
func (b *Batch) Add(fiber *scheduler.Fiber) {
	if !b.active || fiber == nil {
		return
	}

	b.mu.Lock()
	b.dirtyFibers[fiber.ID()] = fiber
	b.mu.Unlock()
}

// Commit commits all batched updates
func (b *Batch) Commit() {
	b.mu.Lock()
	b.active = false
	fibers := make([]*scheduler.Fiber, 0, len(b.dirtyFibers))
	for _, fiber := range b.dirtyFibers {
		fibers = append(fibers, fiber)
	}
	b.dirtyFibers = nil
	b.mu.Unlock()

	for _, fiber := range fibers {
		b.scheduler.MarkDirty(fiber)
	}
}

// RunBatch executes a function within a batch context
func RunBatch(sched Scheduler, fn func()) {
	batch := NewBatch(sched)
	oldBatch := batchContext.Swap(batch)

	defer func() {
		batchContext.Store(oldBatch)
		batch.Commit()
	}()

	fn()
}

// markDirtyOrBatch marks a fiber dirty or adds it to the current batch
func markDirtyOrBatch(sched Scheduler, fiber *scheduler.Fiber) {
	if batch := batchContext.Load(); batch != nil && batch.active {
		batch.Add(fiber)
	} else if sched != nil {
		sched.MarkDirty(fiber)
	}
}
