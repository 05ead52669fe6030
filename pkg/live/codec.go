package live

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/senghongH/devdocs/pkg/renderer/html"
	"github.com/senghongH/devdocs/pkg/vdom"
)

// Encoder handles encoding of live protocol messages
type Encoder struct {
	w io.Writer
}

// NewEncoder creates a new encoder
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WriteUvarint writes an unsigned varint
func (e *Encoder) WriteUvarint(v uint64) error {
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(buf, v)
	_, err := e.w.Write(buf[:n])
	return err
}

// WriteString writes a length-prefixed string
func (e *Encoder) WriteString(s string) error {
	if err := e.WriteUvarint(uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, s)
	return err
}

// WriteBytes writes raw bytes
func (e *Encoder) WriteBytes(b []byte) error {
	_, err := e.w.Write(b)
	return err
}

// Decoder handles decoding of live protocol messages
type Decoder struct {
	r   io.Reader
	buf []byte
}

// NewDecoder creates a new decoder
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:   r,
		buf: make([]byte, 1024),
	}
}

// ReadUvarint reads an unsigned varint
func (d *Decoder) ReadUvarint() (uint64, error) {
	return binary.ReadUvarint(d)
}

// ReadByte implements io.ByteReader
func (d *Decoder) ReadByte() (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(d.r, b[:])
	return b[0], err
}

// ReadString reads a length-prefixed string
func (d *Decoder) ReadString() (string, error) {
	length, err := d.ReadUvarint()
	if err != nil {
		return "", err
	}

	if length > uint64(len(d.buf)) {
		d.buf = make([]byte, length)
	}

	n, err := io.ReadFull(d.r, d.buf[:length])
	if err != nil {
		return "", err
	}

	return string(d.buf[:n]), nil
}

// EncodeEvent encodes an event to binary format
func EncodeEvent(evt Event) []byte {
	var buf []byte

	buf = append(buf, byte(FrameEvent))
	buf = append(buf, byte(evt.Type))
	buf = appendUvarint(buf, uint64(evt.NodeID))

	return buf
}

// DecodeEvent decodes an event from binary format
func DecodeEvent(data []byte) (*Event, error) {
	if len(data) < 3 {
		return nil, errors.New("event data too short")
	}

	if data[0] != byte(FrameEvent) {
		return nil, errors.New("not an event frame")
	}

	evt := &Event{
		Type: EventType(data[1]),
	}

	nodeID, n := binary.Uvarint(data[2:])
	if n <= 0 {
		return nil, errors.New("failed to decode node ID")
	}
	evt.NodeID = uint32(nodeID)

	return evt, nil
}

// EncodePatches encodes a patch batch to binary format. Inserted subtrees
// travel pre-rendered as HTML so the client can splice them in with a
// single insertAdjacentHTML call.
func EncodePatches(patches []vdom.Patch) ([]byte, error) {
	var buf bytes.Buffer
	encoder := NewEncoder(&buf)

	encoder.WriteBytes([]byte{byte(FramePatches)})
	encoder.WriteUvarint(uint64(len(patches)))

	for _, patch := range patches {
		encoder.WriteBytes([]byte{byte(patch.Op)})

		switch patch.Op {
		case vdom.OpReplaceText, vdom.OpReplaceRaw:
			encoder.WriteUvarint(uint64(patch.NodeID))
			encoder.WriteString(patch.Value)

		case vdom.OpSetAttribute:
			encoder.WriteUvarint(uint64(patch.NodeID))
			encoder.WriteString(patch.Key)
			encoder.WriteString(patch.Value)

		case vdom.OpRemoveAttribute:
			encoder.WriteUvarint(uint64(patch.NodeID))
			encoder.WriteString(patch.Key)

		case vdom.OpRemoveNode:
			encoder.WriteUvarint(uint64(patch.NodeID))

		case vdom.OpInsertNode:
			encoder.WriteUvarint(uint64(patch.NodeID))
			encoder.WriteUvarint(uint64(patch.ParentID))
			encoder.WriteUvarint(uint64(patch.BeforeID))

			markup, err := html.RenderToString(patch.Node)
			if err != nil {
				return nil, fmt.Errorf("rendering inserted node: %w", err)
			}
			encoder.WriteString(markup)

		case vdom.OpUpdateEvents:
			encoder.WriteUvarint(uint64(patch.NodeID))
			tmp := make([]byte, 4)
			binary.LittleEndian.PutUint32(tmp, patch.EventBits)
			encoder.WriteBytes(tmp)

		case vdom.OpMoveNode:
			encoder.WriteUvarint(uint64(patch.NodeID))
			encoder.WriteUvarint(uint64(patch.ParentID))
			encoder.WriteUvarint(uint64(patch.BeforeID))

		default:
			return nil, fmt.Errorf("unknown patch op %d", patch.Op)
		}
	}

	return buf.Bytes(), nil
}

// WirePatch is a patch as decoded from the wire. Inserted nodes appear as
// rendered markup rather than a VNode tree.
type WirePatch struct {
	Op        vdom.PatchOp
	NodeID    uint32
	ParentID  uint32
	BeforeID  uint32
	Key       string
	Value     string
	Markup    string
	EventBits uint32
}

// DecodePatches decodes a patch frame
func DecodePatches(data []byte) ([]WirePatch, error) {
	if len(data) == 0 || data[0] != byte(FramePatches) {
		return nil, errors.New("not a patches frame")
	}

	decoder := NewDecoder(bytes.NewReader(data[1:]))

	count, err := decoder.ReadUvarint()
	if err != nil {
		return nil, fmt.Errorf("reading patch count: %w", err)
	}

	patches := make([]WirePatch, 0, count)
	for i := uint64(0); i < count; i++ {
		opByte, err := decoder.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("reading patch op: %w", err)
		}

		p := WirePatch{Op: vdom.PatchOp(opByte)}

		switch p.Op {
		case vdom.OpReplaceText, vdom.OpReplaceRaw:
			if p.NodeID, err = readNodeID(decoder); err != nil {
				return nil, err
			}
			if p.Value, err = decoder.ReadString(); err != nil {
				return nil, err
			}

		case vdom.OpSetAttribute:
			if p.NodeID, err = readNodeID(decoder); err != nil {
				return nil, err
			}
			if p.Key, err = decoder.ReadString(); err != nil {
				return nil, err
			}
			if p.Value, err = decoder.ReadString(); err != nil {
				return nil, err
			}

		case vdom.OpRemoveAttribute:
			if p.NodeID, err = readNodeID(decoder); err != nil {
				return nil, err
			}
			if p.Key, err = decoder.ReadString(); err != nil {
				return nil, err
			}

		case vdom.OpRemoveNode:
			if p.NodeID, err = readNodeID(decoder); err != nil {
				return nil, err
			}

		case vdom.OpInsertNode:
			if p.NodeID, err = readNodeID(decoder); err != nil {
				return nil, err
			}
			if p.ParentID, err = readNodeID(decoder); err != nil {
				return nil, err
			}
			if p.BeforeID, err = readNodeID(decoder); err != nil {
				return nil, err
			}
			if p.Markup, err = decoder.ReadString(); err != nil {
				return nil, err
			}

		case vdom.OpUpdateEvents:
			if p.NodeID, err = readNodeID(decoder); err != nil {
				return nil, err
			}
			var bits [4]byte
			for j := range bits {
				if bits[j], err = decoder.ReadByte(); err != nil {
					return nil, err
				}
			}
			p.EventBits = binary.LittleEndian.Uint32(bits[:])

		case vdom.OpMoveNode:
			if p.NodeID, err = readNodeID(decoder); err != nil {
				return nil, err
			}
			if p.ParentID, err = readNodeID(decoder); err != nil {
				return nil, err
			}
			if p.BeforeID, err = readNodeID(decoder); err != nil {
				return nil, err
			}

		default:
			return nil, fmt.Errorf("unknown patch op %d", p.Op)
		}

		patches = append(patches, p)
	}

	return patches, nil
}

func readNodeID(d *Decoder) (uint32, error) {
	v, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// appendUvarint appends a uvarint to a byte slice
func appendUvarint(buf []byte, v uint64) []byte {
	tmp := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(tmp, v)
	return append(buf, tmp[:n]...)
}
