package events

import (
	"bytes"

	"github.com/punchsim/punch/internal"
)

// FrameEvent records one advanced simulation frame.
type FrameEvent struct {
	EvTime int64
	Dt     float32
}

func (FrameEvent) ID() byte {
	return EventIDFrame
}

func (ev FrameEvent) Time() int64 {
	return ev.EvTime
}

func (ev FrameEvent) Encode() []byte {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	writeEventHeader(ev, buf)
	writeFloat32(buf, ev.Dt)

	return append([]byte(nil), buf.Bytes()...)
}
