package punch

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/punchsim/punch/hitzone"
)

func TestSessionPunchFanOut(t *testing.T) {
	opts := DefaultOptions()
	opts.Record = true
	s := NewSession(nil, opts)

	zone := s.Punch(mgl32.Vec3{0, 0.04, 0.24}, 0.3)
	if zone != hitzone.ZoneNose {
		t.Fatalf("expected nose hit, got %s", zone)
	}

	if len(s.Impacts().Impacts()) != 1 {
		t.Fatalf("impact not recorded")
	}
	snap := s.Effects().Snapshot()
	if snap.NoseSquash == 0 {
		t.Fatalf("noseSquash not triggered by nose punch")
	}
	if s.Recorder().Len() == 0 {
		t.Fatalf("punch not recorded")
	}
}

func TestSessionFrameLoop(t *testing.T) {
	s := NewSession(nil, DefaultOptions())
	s.Punch(mgl32.Vec3{0, 0.04, 0.24}, 0.8)

	before := s.Impacts().Impacts()[0].Strength
	for i := 0; i < 10; i++ {
		s.Tick(1.0 / 60.0)
	}

	impacts := s.Impacts().Impacts()
	if len(impacts) == 1 && impacts[0].Strength >= before {
		t.Fatalf("impact strength did not decay")
	}

	// The solver must have deformed the struck region.
	moved := false
	for _, d := range s.Solver().DisplacementsArray() {
		if d != 0 {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatalf("punch produced no deformation")
	}
}

func TestSessionReset(t *testing.T) {
	opts := DefaultOptions()
	opts.Record = true
	s := NewSession(nil, opts)

	s.Punch(mgl32.Vec3{0, -0.2, 0.1}, 0.9)
	for i := 0; i < 5; i++ {
		s.Tick(1.0 / 60.0)
	}
	s.Reset()

	if len(s.Impacts().Impacts()) != 0 {
		t.Fatalf("impacts survived reset")
	}
	if s.Effects().ActiveCount() != 0 || s.Effects().JawDetached() {
		t.Fatalf("effects survived reset")
	}
	for _, d := range s.Solver().DisplacementsArray() {
		if d != 0 {
			t.Fatalf("solver not back at rest pose")
		}
	}
	if s.Recorder().Len() != 0 {
		t.Fatalf("recording survived reset")
	}
}

func TestSessionJawHaymaker(t *testing.T) {
	s := NewSession(nil, DefaultOptions())

	zone := s.Punch(mgl32.Vec3{0, -0.2, 0.1}, 0.9)
	if zone != hitzone.ZoneJaw {
		t.Fatalf("expected jaw hit, got %s", zone)
	}
	if !s.Effects().JawDetached() {
		t.Fatalf("haymaker on the jaw must detach it")
	}

	// 0.5s at the default progress rate puts the jaw back on.
	for i := 0; i < 40; i++ {
		s.Tick(1.0 / 60.0)
	}
	if s.Effects().JawDetached() {
		t.Fatalf("jaw never reattached")
	}
}
