package body

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/punchsim/punch/assert"
	"github.com/punchsim/punch/xpbd"
)

// Landmark names a notable vertex of the head lattice, letting collaborators
// map hit zones onto lattice regions.
type Landmark uint8

const (
	LandmarkForehead Landmark = iota
	LandmarkNoseTip
	LandmarkLeftCheek
	LandmarkRightCheek
	LandmarkJawTip
)

// Config holds the head lattice dimensions. The defaults are matched to
// hitzone.DefaultScale so zone labels line up with the lattice surface.
type Config struct {
	// Rings is the amount of horizontal particle rings stacked from jaw to
	// crown.
	Rings int
	// Segments is the amount of particles per ring.
	Segments int

	// RadiusX/RadiusZ are the head half-extents at its widest ring; BottomY
	// and TopY bound the lattice vertically.
	RadiusX float32
	RadiusZ float32
	BottomY float32
	TopY    float32

	// RingCompliance softens the surface-to-surface constraints;
	// SpokeCompliance firms up the surface-to-core spokes that pull the
	// lattice back into shape.
	RingCompliance  float32
	SpokeCompliance float32
}

// DefaultConfig returns the head lattice used by the game.
func DefaultConfig() Config {
	return Config{
		Rings:           5,
		Segments:        12,
		RadiusX:         0.34,
		RadiusZ:         0.24,
		BottomY:         -0.22,
		TopY:            0.30,
		RingCompliance:  0.001,
		SpokeCompliance: 0.0001,
	}
}

// Head is a soft-body head lattice: rings of movable surface particles around
// an anchored core column, held together by distance constraints.
type Head struct {
	Particles   []xpbd.Particle
	Constraints []xpbd.Constraint

	landmarks map[Landmark]int32
}

// NewHead builds the lattice for the given config.
func NewHead(conf Config) *Head {
	if conf.Rings <= 0 || conf.Segments <= 0 {
		conf = DefaultConfig()
	}
	assert.IsTrue(conf.Rings >= 2, "head lattice needs at least 2 rings, got %d", conf.Rings)
	assert.IsTrue(conf.Segments >= 3, "head lattice needs at least 3 segments per ring, got %d", conf.Segments)
	assert.IsTrue(conf.TopY > conf.BottomY, "inverted head extents: [%v, %v]", conf.BottomY, conf.TopY)

	h := &Head{landmarks: make(map[Landmark]int32)}

	yCenter := (conf.TopY + conf.BottomY) / 2
	yHalf := (conf.TopY - conf.BottomY) / 2

	// Core column: one anchored particle per ring. Spokes pull the surface
	// back toward these, which is what restores the head shape after a punch.
	coreIDs := make([]int32, conf.Rings)
	nextID := int32(0)
	for r := 0; r < conf.Rings; r++ {
		y := ringY(conf, r)
		coreIDs[r] = nextID
		h.Particles = append(h.Particles, xpbd.NewParticle(nextID, mgl32.Vec3{0, y, 0}, 0))
		nextID++
	}

	surfIDs := make([][]int32, conf.Rings)
	for r := 0; r < conf.Rings; r++ {
		y := ringY(conf, r)

		// Taper the ring toward the crown and the jaw.
		t := (y - yCenter) / (yHalf * 1.15)
		shape := math32.Sqrt(1 - t*t)
		rx, rz := conf.RadiusX*shape, conf.RadiusZ*shape

		surfIDs[r] = make([]int32, conf.Segments)
		for s := 0; s < conf.Segments; s++ {
			angle := 2 * math32.Pi * float32(s) / float32(conf.Segments)
			pos := mgl32.Vec3{rx * math32.Sin(angle), y, rz * math32.Cos(angle)}
			surfIDs[r][s] = nextID
			h.Particles = append(h.Particles, xpbd.NewParticle(nextID, pos, 1))
			nextID++
		}
	}

	for r := 0; r < conf.Rings; r++ {
		for s := 0; s < conf.Segments; s++ {
			id := surfIDs[r][s]
			pos := h.position(id)

			// Ring neighbour.
			next := surfIDs[r][(s+1)%conf.Segments]
			h.constrain(id, next, pos, h.position(next), conf.RingCompliance)

			// Spoke to the anchored core.
			h.constrain(id, coreIDs[r], pos, h.position(coreIDs[r]), conf.SpokeCompliance)

			if r+1 < conf.Rings {
				// Vertical and shear links to the ring above.
				up := surfIDs[r+1][s]
				h.constrain(id, up, pos, h.position(up), conf.RingCompliance)
				diag := surfIDs[r+1][(s+1)%conf.Segments]
				h.constrain(id, diag, pos, h.position(diag), conf.RingCompliance)
			}
		}
	}

	mid := conf.Rings / 2
	h.landmarks[LandmarkNoseTip] = surfIDs[mid][0]
	h.landmarks[LandmarkRightCheek] = surfIDs[mid][2]
	h.landmarks[LandmarkLeftCheek] = surfIDs[mid][conf.Segments-2]
	h.landmarks[LandmarkJawTip] = surfIDs[0][0]
	h.landmarks[LandmarkForehead] = surfIDs[conf.Rings-2][0]

	return h
}

func ringY(conf Config, r int) float32 {
	return conf.BottomY + (conf.TopY-conf.BottomY)*float32(r)/float32(conf.Rings-1)
}

func (h *Head) position(id int32) mgl32.Vec3 {
	return h.Particles[id].RestPosition
}

func (h *Head) constrain(p1, p2 int32, a, b mgl32.Vec3, compliance float32) {
	h.Constraints = append(h.Constraints, xpbd.DistanceConstraint{
		P1:         p1,
		P2:         p2,
		RestLength: b.Sub(a).Len(),
		Compliance: compliance,
	})
}

// Landmark returns the particle id of the given landmark.
func (h *Head) Landmark(l Landmark) (int32, bool) {
	id, ok := h.landmarks[l]
	return id, ok
}

// Register adds the lattice's particles and constraints to a solver.
func (h *Head) Register(s *xpbd.Solver) {
	s.AddParticles(h.Particles)
	s.AddConstraints(h.Constraints)
}
