package live

// MessageType represents the type of live protocol frame
type MessageType uint8

const (
	// FramePatches carries server → client DOM mutations
	FramePatches MessageType = 0x00
	// FrameEvent carries client → server UI events
	FrameEvent MessageType = 0x01
	// FrameControl carries session control messages (HELLO, PING, PONG)
	FrameControl MessageType = 0x02
)

// EventType represents client-side event types
type EventType uint8

const (
	// EventClick is a plain click on an interactive node
	EventClick EventType = 0x01
	// EventToggle flips a collapsible card open or closed
	EventToggle EventType = 0x02
)

// Event represents a client-side event routed to a mounted component.
// NodeID is the hydration ID assigned to the interactive node during
// server-side rendering.
type Event struct {
	Type   EventType
	NodeID uint32
}
