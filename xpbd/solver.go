package xpbd

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

const lengthEpsilon = 1e-6

// Impact is a queued impulse-style kick: particles within Radius of Position
// receive Force scaled by a quadratic distance falloff and Intensity during
// the next Step call only.
type Impact struct {
	Position  mgl32.Vec3
	Force     mgl32.Vec3
	Radius    float32
	Intensity float32
}

// Config holds the solver tunables.
type Config struct {
	// Substeps is the amount of equal sub-intervals a frame delta is split
	// into. Constraints get a single pass per substep; convergence comes
	// from the substep repetition.
	Substeps int
	Gravity  mgl32.Vec3
	// GlobalDamping is applied to every movable particle's velocity once per
	// substep. Must be below 1.
	GlobalDamping float32
	// FloorY is the plane used by EnforceFloorCollision.
	FloorY float32
}

// DefaultConfig returns solver tunables stable at mobile frame rates.
func DefaultConfig() Config {
	return Config{
		Substeps:      6,
		Gravity:       mgl32.Vec3{0, -9.8, 0},
		GlobalDamping: 0.98,
		FloorY:        0,
	}
}

// Solver advances a particle/constraint system with substepped extended
// position-based dynamics. Its collections may only be mutated between
// frames; interleaving AddParticle or AddConstraint with an in-progress Step
// is a caller error.
type Solver struct {
	log  *logrus.Logger
	conf Config

	particles []Particle
	index     map[int32]int

	constraints []Constraint
	impacts     []Impact

	posBuf  []float32
	dispBuf []float32
}

// NewSolver returns a solver with the given config. A nil logger discards
// all output.
func NewSolver(log *logrus.Logger, conf Config) *Solver {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	if conf.Substeps <= 0 {
		conf.Substeps = DefaultConfig().Substeps
	}
	if conf.GlobalDamping <= 0 {
		conf.GlobalDamping = DefaultConfig().GlobalDamping
	}

	return &Solver{
		log:   log,
		conf:  conf,
		index: make(map[int32]int),
	}
}

// AddParticle registers a particle. Ids are not checked for duplicates; that
// is the caller's responsibility.
func (s *Solver) AddParticle(p Particle) {
	s.index[p.ID] = len(s.particles)
	s.particles = append(s.particles, p)
}

// AddParticles registers all given particles in order.
func (s *Solver) AddParticles(ps []Particle) {
	for _, p := range ps {
		s.AddParticle(p)
	}
}

// AddConstraint appends a constraint. Constraints are solved in insertion
// order each substep, so later constraints see the corrections of earlier
// ones.
func (s *Solver) AddConstraint(c Constraint) {
	s.constraints = append(s.constraints, c)
}

// AddConstraints appends all given constraints in order.
func (s *Solver) AddConstraints(cs []Constraint) {
	s.constraints = append(s.constraints, cs...)
}

// ApplyImpact queues an impact to be applied during the next Step call. The
// queue is discarded once that step completes.
func (s *Solver) ApplyImpact(imp Impact) {
	if imp.Radius <= 0 {
		return
	}
	s.impacts = append(s.impacts, imp)
}

// Step advances the system by dt, split into the configured substeps. The
// queued impacts are consumed by this call.
func (s *Solver) Step(dt float32) {
	if dt <= 0 {
		return
	}
	subDt := dt / float32(s.conf.Substeps)

	for i := 0; i < s.conf.Substeps; i++ {
		s.applyExternalForces(subDt)
		s.predictPositions(subDt)
		s.solveConstraints(subDt)
		s.updateVelocities(subDt)
	}

	s.impacts = s.impacts[:0]
}

func (s *Solver) applyExternalForces(subDt float32) {
	for i := range s.particles {
		p := &s.particles[i]
		if p.InvMass == 0 {
			continue
		}

		p.Velocity = p.Velocity.Add(s.conf.Gravity.Mul(subDt))

		for _, imp := range s.impacts {
			dist := p.Position.Sub(imp.Position).Len()
			if dist >= imp.Radius {
				continue
			}
			// Quadratic falloff, keeps the kick local to the struck region.
			falloff := 1 - dist/imp.Radius
			falloff *= falloff
			p.Velocity = p.Velocity.Add(imp.Force.Mul(falloff * imp.Intensity))
		}
	}
}

func (s *Solver) predictPositions(subDt float32) {
	for i := range s.particles {
		p := &s.particles[i]
		if p.InvMass == 0 {
			continue
		}
		p.PrevPosition = p.Position
		p.Position = p.Position.Add(p.Velocity.Mul(subDt))
	}
}

func (s *Solver) solveConstraints(subDt float32) {
	for _, c := range s.constraints {
		c.solve(s, subDt)
	}
}

// updateVelocities derives velocity from the positional correction, which is
// what keeps velocities consistent with the solved constraints.
func (s *Solver) updateVelocities(subDt float32) {
	for i := range s.particles {
		p := &s.particles[i]
		if p.InvMass == 0 {
			continue
		}
		p.Velocity = p.Position.Sub(p.PrevPosition).Mul(1 / subDt)
		p.Velocity = p.Velocity.Mul(s.conf.GlobalDamping)
	}
}

// EnforceFloorCollision clamps movable particles to the configured floor
// plane, inverting their fall with restitution loss and reducing horizontal
// speed by friction. Callers invoke this separately from Step so bodies
// without a floor concept are unaffected.
func (s *Solver) EnforceFloorCollision() {
	for i := range s.particles {
		p := &s.particles[i]
		if p.InvMass == 0 || p.Position.Y() >= s.conf.FloorY {
			continue
		}

		p.Position[1] = s.conf.FloorY
		p.Velocity[1] *= -0.5
		p.Velocity[0] *= 0.8
		p.Velocity[2] *= 0.8
	}
}

// Reset restores every particle to its rest pose with zero velocity and
// drops pending impacts. Constraints are unaffected.
func (s *Solver) Reset() {
	for i := range s.particles {
		p := &s.particles[i]
		p.Position = p.RestPosition
		p.PrevPosition = p.RestPosition
		p.Velocity = mgl32.Vec3{}
	}
	s.impacts = s.impacts[:0]
}

// Clear removes all particles, constraints and pending impacts.
func (s *Solver) Clear() {
	s.log.Debugf("solver cleared (%d particles, %d constraints)", len(s.particles), len(s.constraints))
	s.particles = s.particles[:0]
	s.constraints = s.constraints[:0]
	s.impacts = s.impacts[:0]
	s.index = make(map[int32]int)
}

// ParticleByID returns the current state of the particle with the given id.
func (s *Solver) ParticleByID(id int32) (Particle, bool) {
	i, ok := s.index[id]
	if !ok {
		return Particle{}, false
	}
	return s.particles[i], true
}

// ParticleCount returns the amount of registered particles.
func (s *Solver) ParticleCount() int {
	return len(s.particles)
}

// ConstraintCount returns the amount of registered constraints.
func (s *Solver) ConstraintCount() int {
	return len(s.constraints)
}

// PositionsArray returns the particle positions as a flat buffer of three
// scalars per particle in insertion order. The buffer is reused between
// calls and must not be retained.
func (s *Solver) PositionsArray() []float32 {
	s.posBuf = s.posBuf[:0]
	for i := range s.particles {
		p := &s.particles[i]
		s.posBuf = append(s.posBuf, p.Position.X(), p.Position.Y(), p.Position.Z())
	}
	return s.posBuf
}

// DisplacementsArray returns position minus rest position as a flat buffer
// of three scalars per particle in insertion order. The buffer is reused
// between calls and must not be retained.
func (s *Solver) DisplacementsArray() []float32 {
	s.dispBuf = s.dispBuf[:0]
	for i := range s.particles {
		d := s.particles[i].Position.Sub(s.particles[i].RestPosition)
		s.dispBuf = append(s.dispBuf, d.X(), d.Y(), d.Z())
	}
	return s.dispBuf
}
