package events

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/punchsim/punch/internal"
	"github.com/punchsim/punch/perror"
)

const RecordingVersion = 1

// Event is a single recorded moment of a bout, encodable for replay.
type Event interface {
	ID() byte
	Encode() []byte

	// Time is the simulation time of the event in milliseconds.
	Time() int64
}

const (
	_ = iota
	EventIDPunch
	EventIDFrame
)

func writeEventHeader(ev Event, buf *bytes.Buffer) {
	binary.Write(buf, binary.LittleEndian, uint64(ev.ID()))
	binary.Write(buf, binary.LittleEndian, uint64(ev.Time()))
}

func writeFloat32(buf *bytes.Buffer, f float32) {
	binary.Write(buf, binary.LittleEndian, math.Float32bits(f))
}

func readFloat32(buf *bytes.Buffer) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf.Next(4)))
}

// DecodeEvents decodes a raw stream of encoded events. The stream must
// already have had its checksum footer verified and stripped.
func DecodeEvents(dat []byte) ([]Event, error) {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	buf.Write(dat)
	defer internal.BufferPool.Put(buf)

	events := []Event{}
	for buf.Len() > 0 {
		ev, err := DecodeEvent(buf)
		if err != nil {
			return events, perror.New("error decoding event: %v", err)
		}

		events = append(events, ev)
	}

	return events, nil
}

// DecodeEvent decodes a single event from the buffer.
func DecodeEvent(buf *bytes.Buffer) (Event, error) {
	if buf.Len() < 16 {
		return nil, perror.New("truncated event header (%d bytes)", buf.Len())
	}

	id := byte(binary.LittleEndian.Uint64(buf.Next(8)))
	t := int64(binary.LittleEndian.Uint64(buf.Next(8)))

	switch id {
	case EventIDPunch:
		ev := PunchEvent{EvTime: t}
		if buf.Len() < 17 {
			return nil, perror.New("truncated PunchEvent body (%d bytes)", buf.Len())
		}
		ev.HitPoint[0] = readFloat32(buf)
		ev.HitPoint[1] = readFloat32(buf)
		ev.HitPoint[2] = readFloat32(buf)
		ev.Strength = readFloat32(buf)
		zone, _ := buf.ReadByte()
		ev.Zone = zone
		return ev, nil
	case EventIDFrame:
		ev := FrameEvent{EvTime: t}
		if buf.Len() < 4 {
			return nil, perror.New("truncated FrameEvent body (%d bytes)", buf.Len())
		}
		ev.Dt = readFloat32(buf)
		return ev, nil
	default:
		return nil, perror.New("unknown event: %d", id)
	}
}
