package events

import (
	"bytes"
	"encoding/binary"
	"io"
	"sync"

	"github.com/punchsim/punch/perror"
	"github.com/zeebo/xxh3"
)

// Recorder accumulates encoded events for a bout recording. It is safe to
// flush from a background worker while the frame loop keeps recording.
type Recorder struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends an event to the recording.
func (r *Recorder) Record(ev Event) {
	enc := ev.Encode()

	r.mu.Lock()
	r.buf.Write(enc)
	r.mu.Unlock()
}

// Len returns the current payload size in bytes.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Len()
}

// Bytes returns the recording with a version byte prepended and its xxh3-64
// checksum footer appended. The recorder keeps its contents.
func (r *Recorder) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return frameRecording(r.buf.Bytes())
}

// frameRecording wraps an encoded event stream into the on-disk recording
// format. The checksum covers the version byte and the events.
func frameRecording(events []byte) []byte {
	out := make([]byte, len(events)+9)
	out[0] = RecordingVersion
	copy(out[1:], events)
	binary.LittleEndian.PutUint64(out[len(events)+1:], xxh3.Hash(out[:len(events)+1]))
	return out
}

// Flush writes the checksummed recording to w and empties the recorder. The
// snapshot and the reset happen under one lock so events recorded during the
// write are kept for the next flush.
func (r *Recorder) Flush(w io.Writer) error {
	r.mu.Lock()
	out := frameRecording(r.buf.Bytes())
	r.buf.Reset()
	r.mu.Unlock()

	if _, err := w.Write(out); err != nil {
		return perror.New("error flushing recording: %v", err)
	}
	return nil
}

// Reset empties the recorder.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.buf.Reset()
	r.mu.Unlock()
}

// DecodeRecording verifies the checksum footer and version of a recording
// and decodes its events.
func DecodeRecording(dat []byte) ([]Event, error) {
	if len(dat) < 9 {
		return nil, perror.New("recording too short (%d bytes)", len(dat))
	}

	payload, footer := dat[:len(dat)-8], dat[len(dat)-8:]
	if sum := xxh3.Hash(payload); sum != binary.LittleEndian.Uint64(footer) {
		return nil, perror.New("recording checksum mismatch")
	}
	if payload[0] != RecordingVersion {
		return nil, perror.New("unsupported recording version: %d", payload[0])
	}

	return DecodeEvents(payload[1:])
}
