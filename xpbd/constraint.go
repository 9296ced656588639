package xpbd

// Constraint is a positional relation between particles, corrected once per
// substep in insertion order. Distance is the only constraint kind the head
// needs; the interface leaves room for volume constraints later.
type Constraint interface {
	solve(s *Solver, subDt float32)
}

// DistanceConstraint keeps two particles at a rest length. Compliance is
// inverse stiffness: 0 is rigid, larger values let the constraint stretch for
// a softer, jellier response.
type DistanceConstraint struct {
	P1, P2     int32
	RestLength float32
	Compliance float32
}

func (c DistanceConstraint) solve(s *Solver, subDt float32) {
	i1, ok1 := s.index[c.P1]
	i2, ok2 := s.index[c.P2]
	if !ok1 || !ok2 {
		// A constraint referencing a missing particle resolves to a no-op
		// rather than interrupting the frame.
		return
	}

	p1, p2 := &s.particles[i1], &s.particles[i2]
	w := p1.InvMass + p2.InvMass
	if w == 0 {
		return
	}

	d := p2.Position.Sub(p1.Position)
	length := d.Len()
	if length < lengthEpsilon {
		return
	}
	dir := d.Mul(1 / length)

	// Core XPBD update. The compliance term scales with subDt^2 so stiffness
	// does not depend on the substep count.
	err := length - c.RestLength
	lambda := -err / (w + c.Compliance/(subDt*subDt))

	p1.Position = p1.Position.Sub(dir.Mul(lambda * p1.InvMass))
	p2.Position = p2.Position.Add(dir.Mul(lambda * p2.InvMass))
}
