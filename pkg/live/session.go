package live

import (
	"errors"
	"sync"

	"github.com/senghongH/devdocs/pkg/scheduler"
	"github.com/senghongH/devdocs/pkg/vdom"
)

// Component is a server-driven component mounted into a session
type Component interface {
	Render() *vdom.VNode
}

// ComponentFactory builds the component a session drives. It receives the
// session's scheduler so the component's reactive state can mark the
// session fiber dirty on mutation.
type ComponentFactory func(componentID string, sched *scheduler.Scheduler) (Component, bool)

// PatchSender receives encoded patch batches destined for one client
type PatchSender interface {
	SendPatches(patches []vdom.Patch) error
}

// Mount runs one server-driven component for one session. It owns the
// session's scheduler and the handler table that routes client events to
// the component's callbacks.
type Mount struct {
	sched  *scheduler.Scheduler
	sender PatchSender
	comp   Component
	fiber  *scheduler.Fiber

	mu       sync.RWMutex
	handlers map[uint32]func()
}

// ErrHandlerNotFound is returned when an event names a node with no
// registered handler, e.g. after the client raced a re-render.
var ErrHandlerNotFound = errors.New("no handler registered for node")

// ErrUnknownComponent is returned when a HELLO names a component the
// factory does not recognize.
var ErrUnknownComponent = errors.New("unknown component")

// NewMount mounts a component. The initial render is kept as the diff
// baseline without emitting patches: the client already holds the
// server-rendered page, so only subsequent state changes go on the wire.
func NewMount(componentID string, factory ComponentFactory, sender PatchSender) (*Mount, error) {
	m := &Mount{
		sched:    scheduler.NewScheduler(),
		sender:   sender,
		handlers: make(map[uint32]func()),
	}

	comp, ok := factory(componentID, m.sched)
	if !ok {
		m.sched.Stop()
		return nil, ErrUnknownComponent
	}
	m.comp = comp

	m.sched.SetPatchApplier(func(patches []vdom.Patch) {
		if len(patches) == 0 {
			return
		}
		// Send errors are connection-level; the session read loop will
		// notice the broken connection and tear the mount down.
		_ = m.sender.SendPatches(patches)
	})

	m.sched.SetDefaultErrorHandler(func(fiber *scheduler.Fiber, err any) bool {
		return true
	})

	m.fiber = m.sched.CreateFiber(m.render, nil)

	// Prime the baseline tree so the first toggle diffs against the
	// same markup the page was served with. Rendering through the
	// scheduler subscribes the fiber to the state it reads.
	m.fiber.SetVNode(m.sched.RenderFiber(m.fiber))

	m.sched.Start()
	return m, nil
}

// render invokes the component and refreshes the event handler table from
// the produced tree. Dependency tracking is the scheduler's business: it
// registers the fiber for the duration of the render.
func (m *Mount) render() *vdom.VNode {
	vnode := m.comp.Render()
	m.setHandlers(collectHandlers(vnode))
	return vnode
}

// HandleEvent routes a decoded client event to its registered handler
func (m *Mount) HandleEvent(evt *Event) error {
	m.mu.RLock()
	handler, ok := m.handlers[evt.NodeID]
	m.mu.RUnlock()

	if !ok {
		return ErrHandlerNotFound
	}

	handler()
	return nil
}

// HandlerCount returns the number of interactive nodes currently mounted
func (m *Mount) HandlerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers)
}

// Close stops the mount's scheduler
func (m *Mount) Close() {
	m.sched.Stop()
	m.sched.RemoveFiber(m.fiber)
}

func (m *Mount) setHandlers(handlers map[uint32]func()) {
	m.mu.Lock()
	m.handlers = handlers
	m.mu.Unlock()
}

// collectHandlers walks the tree in pre-order assigning hydration IDs to
// interactive nodes, matching the numbering the HTML renderer emits as
// data-hid attributes.
func collectHandlers(node *vdom.VNode) map[uint32]func() {
	handlers := make(map[uint32]func())
	var next uint32 = 1

	var walk func(n *vdom.VNode)
	walk = func(n *vdom.VNode) {
		if n == nil {
			return
		}

		if n.Kind == vdom.KindElement && n.HasFlag(vdom.FlagHasEvents) {
			id := next
			next++
			if h, ok := n.Props["onclick"].(func()); ok {
				handlers[id] = h
			}
		}

		for i := range n.Kids {
			walk(&n.Kids[i])
		}
	}
	walk(node)

	return handlers
}
