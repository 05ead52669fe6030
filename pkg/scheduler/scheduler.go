package scheduler

import (
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/senghongH/devdocs/pkg/vdom"
)

// RenderFunc is the function type for component render functions
type RenderFunc func() *vdom.VNode

// ErrorHandler handles panics during rendering.
// Returns true to continue scheduling, false to unmount the fiber.
type ErrorHandler func(fiber *Fiber, err any) bool

// Fiber represents a lightweight component execution context
type Fiber struct {
	id     uint32
	parent *Fiber
	vnode  *vdom.VNode // last rendered tree

	render RenderFunc

	dirty atomic.Bool

	onError ErrorHandler

	userData any
}

// fiberIDs issues IDs across all schedulers. Signals key their dependency
// maps by fiber ID, and fibers of different schedulers can share a signal,
// so IDs must not collide between schedulers.
var fiberIDs atomic.Uint32

// Scheduler manages fiber execution. State mutations mark fibers dirty;
// a single loop drains the wake channel, re-renders each dirty fiber,
// diffs against its previous tree and hands the patches to the applier.
type Scheduler struct {
	mu         sync.Mutex
	fibers     map[uint32]*Fiber
	globalWake chan *Fiber
	quit       chan struct{}
	running    atomic.Bool

	// currentFiber is the fiber this scheduler is rendering right now.
	// Signals read it to subscribe the rendering fiber; keeping the
	// register per scheduler means a render on one scheduler can never
	// subscribe a fiber owned by another.
	currentFiber atomic.Pointer[Fiber]

	applyPatches func(patches []vdom.Patch)
	defaultError ErrorHandler
}

// NewScheduler creates a new scheduler instance
func NewScheduler() *Scheduler {
	return &Scheduler{
		fibers:     make(map[uint32]*Fiber),
		globalWake: make(chan *Fiber, 1024),
	}
}

// SetPatchApplier sets the function that receives patch batches
func (s *Scheduler) SetPatchApplier(applier func(patches []vdom.Patch)) {
	s.applyPatches = applier
}

// SetDefaultErrorHandler sets the default error handler for fibers
func (s *Scheduler) SetDefaultErrorHandler(handler ErrorHandler) {
	s.defaultError = handler
}

// CreateFiber creates a new fiber for a component
func (s *Scheduler) CreateFiber(render RenderFunc, parent *Fiber) *Fiber {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fiberIDs.Add(1)

	fiber := &Fiber{
		id:     id,
		parent: parent,
		render: render,
	}

	if s.defaultError != nil {
		fiber.onError = s.defaultError
	}

	s.fibers[id] = fiber
	return fiber
}

// RemoveFiber removes a fiber from the scheduler
func (s *Scheduler) RemoveFiber(fiber *Fiber) {
	if fiber == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.fibers, fiber.id)
}

// MarkDirty marks a fiber as needing re-render
func (s *Scheduler) MarkDirty(fiber *Fiber) {
	if fiber == nil {
		return
	}

	if fiber.dirty.CompareAndSwap(false, true) {
		if s.running.Load() {
			select {
			case s.globalWake <- fiber:
			default:
				// Channel full; the loop sweeps still-dirty fibers
				// after every batch
			}
		}
	}
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running.CompareAndSwap(false, true) {
		s.quit = make(chan struct{})
		go s.loop(s.quit)
	}
}

// Stop stops the scheduler and terminates its loop goroutine
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running.CompareAndSwap(true, false) {
		close(s.quit)
	}
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}

// CurrentFiber returns the fiber this scheduler is rendering, or nil
// outside a render.
func (s *Scheduler) CurrentFiber() *Fiber {
	return s.currentFiber.Load()
}

// RenderFiber runs the fiber's render function with dependency tracking
// active, so signals read during the render subscribe the fiber.
func (s *Scheduler) RenderFiber(fiber *Fiber) *vdom.VNode {
	s.currentFiber.Store(fiber)
	defer s.currentFiber.Store(nil)
	return fiber.render()
}

// loop is the main scheduler event loop
func (s *Scheduler) loop(quit chan struct{}) {
	for {
		var fiber *Fiber
		select {
		case fiber = <-s.globalWake:
		case <-quit:
			return
		}
		if fiber == nil {
			continue
		}

		// Drain the channel so a burst of updates renders once per fiber
		batch := []*Fiber{fiber}
	drainLoop:
		for {
			select {
			case f := <-s.globalWake:
				if f != nil {
					batch = append(batch, f)
				}
			default:
				break drainLoop
			}
		}

		for _, f := range batch {
			s.processFiber(f)
		}

		// A mark that found the wake buffer full, or that arrived before
		// Start, set dirty without queueing a wake. Sweep those fibers
		// now rather than waiting for an unrelated wake to rescue them.
		s.mu.Lock()
		var stragglers []*Fiber
		for _, f := range s.fibers {
			if f.dirty.Load() {
				stragglers = append(stragglers, f)
			}
		}
		s.mu.Unlock()
		for _, f := range stragglers {
			s.processFiber(f)
		}
	}
}

// processFiber renders a single fiber and applies patches
func (s *Scheduler) processFiber(fiber *Fiber) {
	if !fiber.dirty.CompareAndSwap(true, false) {
		return
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				s.handleFiberError(fiber, r)
			}
		}()

		next := s.RenderFiber(fiber)

		patches := vdom.Diff(fiber.vnode, next)

		if s.applyPatches != nil && len(patches) > 0 {
			s.applyPatches(patches)
		}

		fiber.vnode = next
	}()
}

// handleFiberError handles a panic during fiber rendering
func (s *Scheduler) handleFiberError(fiber *Fiber, err any) {
	errorMsg := fmt.Sprintf("fiber %d panic: %v\n%s", fiber.id, err, debug.Stack())

	shouldContinue := false
	if fiber.onError != nil {
		shouldContinue = fiber.onError(fiber, errorMsg)
	} else {
		log.Printf("[Scheduler] %s", errorMsg)
	}

	if !shouldContinue {
		s.RemoveFiber(fiber)
	}
}

// GetFiber returns a fiber by ID
func (s *Scheduler) GetFiber(id uint32) *Fiber {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fibers[id]
}

// FiberCount returns the number of active fibers
func (s *Scheduler) FiberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fibers)
}

// SetUserData sets custom data on a fiber
func (f *Fiber) SetUserData(data any) {
	f.userData = data
}

// GetUserData gets custom data from a fiber
func (f *Fiber) GetUserData() any {
	return f.userData
}

// ID returns the fiber's unique ID
func (f *Fiber) ID() uint32 {
	return f.id
}

// Parent returns the fiber's parent
func (f *Fiber) Parent() *Fiber {
	return f.parent
}

// VNode returns the fiber's last rendered VNode
func (f *Fiber) VNode() *vdom.VNode {
	return f.vnode
}

// SetVNode sets the current VNode for the fiber (used after initial SSR)
func (f *Fiber) SetVNode(vnode *vdom.VNode) {
	f.vnode = vnode
}

// SetErrorHandler sets a custom error handler for this fiber
func (f *Fiber) SetErrorHandler(handler ErrorHandler) {
	f.onError = handler
}
