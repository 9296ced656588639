package hitzone

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestClassifyTable(t *testing.T) {
	c := NewClassifier(DefaultScale())

	cases := []struct {
		name  string
		point mgl32.Vec3
		want  Zone
	}{
		{"forehead", mgl32.Vec3{0, 0.2, 0.2}, ZoneForehead},
		{"cranium back", mgl32.Vec3{0, 0.2, -0.2}, ZoneCranium},
		{"cranium top", mgl32.Vec3{0, 0.3, 0.05}, ZoneCranium},
		{"cranium side of forehead", mgl32.Vec3{0.3, 0.2, 0.2}, ZoneCranium},
		{"nose", mgl32.Vec3{0, 0.04, 0.24}, ZoneNose},
		{"left eye", mgl32.Vec3{-0.15, 0.05, 0.2}, ZoneLeftEye},
		{"right eye", mgl32.Vec3{0.15, 0.05, 0.2}, ZoneRightEye},
		{"left cheek", mgl32.Vec3{-0.29, 0.04, 0.12}, ZoneLeftCheek},
		{"right cheek", mgl32.Vec3{0.29, 0.04, 0.12}, ZoneRightCheek},
		{"left ear", mgl32.Vec3{-0.34, 0.04, 0}, ZoneLeftEar},
		{"right ear", mgl32.Vec3{0.34, 0.04, 0}, ZoneRightEar},
		{"jaw", mgl32.Vec3{0, -0.2, 0.1}, ZoneJaw},
		{"jaw behind", mgl32.Vec3{0.1, -0.2, -0.1}, ZoneJaw},
		{"far out of range", mgl32.Vec3{50, -50, 50}, ZoneJaw},
	}

	for _, tc := range cases {
		if got := c.Classify(tc.point); got != tc.want {
			t.Fatalf("%s: classify(%v) = %s, want %s", tc.name, tc.point, got, tc.want)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier(DefaultScale())
	p := mgl32.Vec3{0.12, 0.03, 0.2}

	first := c.Classify(p)
	for i := 0; i < 100; i++ {
		if got := c.Classify(p); got != first {
			t.Fatalf("classification not deterministic: %s vs %s", first, got)
		}
	}
}

func TestBandBoundaries(t *testing.T) {
	s := DefaultScale()
	c := NewClassifier(s)
	const eps = 1e-4

	// Either side of the upper band on the front midline.
	if got := c.Classify(mgl32.Vec3{0, s.UpperY + eps, 0.2}); got != ZoneForehead {
		t.Fatalf("just above upper band: %s", got)
	}
	if got := c.Classify(mgl32.Vec3{0, s.UpperY - eps, 0.2}); got != ZoneNose {
		t.Fatalf("just below upper band on midline: %s", got)
	}

	// Either side of the lower band.
	if got := c.Classify(mgl32.Vec3{0, s.LowerY + eps, 0.2}); got != ZoneNose {
		t.Fatalf("just above lower band: %s", got)
	}
	if got := c.Classify(mgl32.Vec3{0, s.LowerY - eps, 0.2}); got != ZoneJaw {
		t.Fatalf("just below lower band: %s", got)
	}

	// Either side of the nose band.
	if got := c.Classify(mgl32.Vec3{s.NoseHalfWidth - eps, 0, 0.2}); got != ZoneNose {
		t.Fatalf("inside nose band: %s", got)
	}
	if got := c.Classify(mgl32.Vec3{s.NoseHalfWidth + eps, 0, 0.2}); got != ZoneRightEye {
		t.Fatalf("outside nose band: %s", got)
	}

	// Either side of the ear extent on the non-frontal mid band.
	if got := c.Classify(mgl32.Vec3{-(s.EarExtent - eps), 0, 0}); got != ZoneLeftCheek {
		t.Fatalf("inside ear extent: %s", got)
	}
	if got := c.Classify(mgl32.Vec3{-(s.EarExtent + eps), 0, 0}); got != ZoneLeftEar {
		t.Fatalf("outside ear extent: %s", got)
	}
}

func TestZoneHelpers(t *testing.T) {
	if !ZoneLeftCheek.Cheek() || !ZoneRightCheek.Cheek() || ZoneNose.Cheek() {
		t.Fatalf("cheek helper wrong")
	}
	if !ZoneLeftEye.Eye() || !ZoneRightEye.Eye() || ZoneForehead.Eye() {
		t.Fatalf("eye helper wrong")
	}
}
