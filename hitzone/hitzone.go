package hitzone

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Zone is a coarse named region of the opponent's head, used to route impact
// effects and facial responses.
type Zone uint8

const (
	ZoneForehead Zone = iota
	ZoneCranium
	ZoneLeftEye
	ZoneRightEye
	ZoneNose
	ZoneLeftCheek
	ZoneRightCheek
	ZoneLeftEar
	ZoneRightEar
	ZoneJaw
)

func (z Zone) String() string {
	switch z {
	case ZoneForehead:
		return "forehead"
	case ZoneCranium:
		return "cranium"
	case ZoneLeftEye:
		return "leftEye"
	case ZoneRightEye:
		return "rightEye"
	case ZoneNose:
		return "nose"
	case ZoneLeftCheek:
		return "leftCheek"
	case ZoneRightCheek:
		return "rightCheek"
	case ZoneLeftEar:
		return "leftEar"
	case ZoneRightEar:
		return "rightEar"
	case ZoneJaw:
		return "jaw"
	default:
		return "unknown"
	}
}

// Cheek reports whether the zone is one of the two cheeks.
func (z Zone) Cheek() bool {
	return z == ZoneLeftCheek || z == ZoneRightCheek
}

// Eye reports whether the zone is one of the two eyes.
func (z Zone) Eye() bool {
	return z == ZoneLeftEye || z == ZoneRightEye
}

// Scale holds the coordinate bands that split the head into zones. The values
// must stay consistent with the visual geometry of the head so the returned
// label matches what the player actually struck.
type Scale struct {
	// UpperY and LowerY split the head into the cranium, face and jaw bands.
	UpperY float32
	LowerY float32
	// FrontZ is the depth beyond which a point counts as front-facing.
	FrontZ float32
	// NoseHalfWidth is the half-width of the central nose band.
	NoseHalfWidth float32
	// ForeheadHalfWidth is the half-width of the frontal forehead band.
	ForeheadHalfWidth float32
	// EarExtent is the |X| beyond which a non-frontal mid-band point is an ear.
	EarExtent float32
}

// DefaultScale returns the zone bands matching body.NewHead's lattice
// dimensions.
func DefaultScale() Scale {
	return Scale{
		UpperY:            0.15,
		LowerY:            -0.12,
		FrontZ:            0.14,
		NoseHalfWidth:     0.07,
		ForeheadHalfWidth: 0.22,
		EarExtent:         0.32,
	}
}

// Classifier maps local-space impact points to head zones. It is stateless
// beyond its scale and safe to copy.
type Classifier struct {
	scale Scale
}

// NewClassifier returns a classifier over the given scale.
func NewClassifier(scale Scale) Classifier {
	return Classifier{scale: scale}
}

// Classify maps a point in the head's local space (Y-up, Z toward the player)
// to a zone. All inputs resolve to a zone; out-of-range points fall into the
// nearest band. Left and right are from the opponent's own perspective, so
// the opponent's left is -X.
func (c Classifier) Classify(point mgl32.Vec3) Zone {
	x, y, z := point.X(), point.Y(), point.Z()

	if y > c.scale.UpperY {
		if z > c.scale.FrontZ && math32.Abs(x) < c.scale.ForeheadHalfWidth {
			return ZoneForehead
		}
		return ZoneCranium
	}

	if y >= c.scale.LowerY {
		if z > c.scale.FrontZ {
			if math32.Abs(x) < c.scale.NoseHalfWidth {
				return ZoneNose
			}
			if x < 0 {
				return ZoneLeftEye
			}
			return ZoneRightEye
		}

		if math32.Abs(x) > c.scale.EarExtent {
			if x < 0 {
				return ZoneLeftEar
			}
			return ZoneRightEar
		}
		if x < 0 {
			return ZoneLeftCheek
		}
		return ZoneRightCheek
	}

	return ZoneJaw
}
