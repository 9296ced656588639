package events

import (
	"bytes"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/punchsim/punch/internal"
)

// PunchEvent records one punch landing on the opponent.
type PunchEvent struct {
	EvTime   int64
	HitPoint mgl32.Vec3
	Strength float32
	// Zone is the raw hitzone.Zone value the punch classified to.
	Zone byte
}

func (PunchEvent) ID() byte {
	return EventIDPunch
}

func (ev PunchEvent) Time() int64 {
	return ev.EvTime
}

func (ev PunchEvent) Encode() []byte {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	writeEventHeader(ev, buf)
	writeFloat32(buf, ev.HitPoint[0])
	writeFloat32(buf, ev.HitPoint[1])
	writeFloat32(buf, ev.HitPoint[2])
	writeFloat32(buf, ev.Strength)
	buf.WriteByte(ev.Zone)

	return append([]byte(nil), buf.Bytes()...)
}
