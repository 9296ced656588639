package punch

import (
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/punchsim/punch/body"
	"github.com/punchsim/punch/effects"
	"github.com/punchsim/punch/events"
	"github.com/punchsim/punch/hitzone"
	"github.com/punchsim/punch/impact"
	"github.com/punchsim/punch/worker"
	"github.com/punchsim/punch/xpbd"
	"github.com/sirupsen/logrus"
)

// Options configures a bout session.
type Options struct {
	Scale   hitzone.Scale
	Impact  impact.Config
	Solver  xpbd.Config
	Effects effects.Config
	Head    body.Config

	// PunchRadius and PunchForce convert a punch into the solver impulse fed
	// to the head lattice.
	PunchRadius float32
	PunchForce  float32

	// Record enables bout recording for later replay.
	Record bool
}

// DefaultOptions returns the session options used by the game.
func DefaultOptions() Options {
	return Options{
		Scale:       hitzone.DefaultScale(),
		Impact:      impact.DefaultConfig(),
		Solver:      xpbd.DefaultConfig(),
		Effects:     effects.DefaultConfig(),
		Head:        body.DefaultConfig(),
		PunchRadius: 0.25,
		PunchForce:  6,
	}
}

// Session owns one opponent's simulation state for the duration of a scene:
// the hit zone classifier, the impact buffer, the cartoon effect orchestrator
// and the soft-body solver with its head lattice. It is created on scene
// entry, reset on scene change and dropped on scene exit; nothing here is
// ambient global state.
type Session struct {
	log  *logrus.Logger
	opts Options

	classifier hitzone.Classifier
	impacts    *impact.Manager
	effects    *effects.Orchestrator
	solver     *xpbd.Solver
	head       *body.Head

	recorder *events.Recorder
	clock    float32
}

// NewSession builds a session and registers the head lattice with the
// solver. A nil logger discards all output.
func NewSession(log *logrus.Logger, opts Options) *Session {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	s := &Session{
		log:        log,
		opts:       opts,
		classifier: hitzone.NewClassifier(opts.Scale),
		impacts:    impact.NewManager(log, opts.Impact),
		effects:    effects.NewOrchestrator(log, opts.Effects),
		solver:     xpbd.NewSolver(log, opts.Solver),
		head:       body.NewHead(opts.Head),
		recorder:   events.NewRecorder(),
	}
	s.head.Register(s.solver)

	return s
}

// Punch ingests one punch landing at a local-space point with the given
// strength, fanning it out to the impact buffer, the effect orchestrator and
// the solver. The classified zone is returned.
func (s *Session) Punch(point mgl32.Vec3, strength float32) hitzone.Zone {
	zone := s.classifier.Classify(point)

	s.impacts.Add(point, strength)
	s.effects.ProcessHit(zone, strength)

	// Push the struck region toward the head's core.
	dir := point.Mul(-1)
	if dir.Len() > 1e-6 {
		dir = dir.Normalize()
	}
	s.solver.ApplyImpact(xpbd.Impact{
		Position:  point,
		Force:     dir.Mul(s.opts.PunchForce),
		Radius:    s.opts.PunchRadius,
		Intensity: strength,
	})

	if s.opts.Record {
		s.recorder.Record(events.PunchEvent{
			EvTime:   s.timeMillis(),
			HitPoint: point,
			Strength: strength,
			Zone:     byte(zone),
		})
	}

	s.log.Debugf("punch landed on %s (strength=%.2f)", zone, strength)
	return zone
}

// Tick advances the whole session by one frame: impact decay, effect decay
// and state machines, then the solver step. Punch ingestion for the frame
// must happen before Tick.
func (s *Session) Tick(dt float32) {
	s.clock += dt

	s.impacts.Tick(dt)
	s.effects.Tick(dt)
	s.solver.Step(dt)

	if s.opts.Record {
		s.recorder.Record(events.FrameEvent{EvTime: s.timeMillis(), Dt: dt})
	}
}

func (s *Session) timeMillis() int64 {
	return int64(s.clock * 1000)
}

// Impacts returns the session's impact manager.
func (s *Session) Impacts() *impact.Manager {
	return s.impacts
}

// Effects returns the session's effect orchestrator.
func (s *Session) Effects() *effects.Orchestrator {
	return s.effects
}

// Solver returns the session's soft-body solver.
func (s *Session) Solver() *xpbd.Solver {
	return s.solver
}

// Head returns the opponent's head lattice.
func (s *Session) Head() *body.Head {
	return s.head
}

// Classifier returns the session's hit zone classifier.
func (s *Session) Classifier() hitzone.Classifier {
	return s.classifier
}

// Recorder returns the session's bout recorder.
func (s *Session) Recorder() *events.Recorder {
	return s.recorder
}

// SaveRecording flushes the bout recording to the given path off the frame
// loop.
func (s *Session) SaveRecording(path string) {
	worker.Submit(func() {
		f, err := os.Create(path)
		if err != nil {
			s.log.Errorf("error creating recording file: %v", err)
			return
		}
		defer f.Close()

		if err := s.recorder.Flush(f); err != nil {
			s.log.Errorf("error writing recording: %v", err)
		}
	})
}

// Reset restores the session for a new opponent: rest pose, empty impact
// buffer, idle effects and an empty recording.
func (s *Session) Reset() {
	s.impacts.Reset()
	s.effects.Reset()
	s.solver.Reset()
	s.recorder.Reset()
	s.clock = 0
}
