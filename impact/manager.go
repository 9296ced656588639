package impact

import (
	"io"

	"github.com/getsentry/sentry-go"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/punchsim/punch/game"
	"github.com/sirupsen/logrus"
)

// Event is a single recorded impact on the opponent. Strength is clamped to
// [0, 1] on creation and decays each tick until the event is evicted.
type Event struct {
	ID        int64
	HitPoint  mgl32.Vec3
	Strength  float32
	CreatedAt float32
}

// Listener receives every newly added impact exactly once, in insertion order.
type Listener func(ev Event)

// Config holds the tunables of the impact manager.
type Config struct {
	// Capacity bounds the amount of simultaneously tracked impacts. Adding
	// beyond it evicts the oldest impact first.
	Capacity int
	// DecayRate is the strength lost per second by every tracked impact.
	DecayRate float32
	// MinStrength is the floor at or below which an impact is removed.
	MinStrength float32
}

// DefaultConfig returns the impact manager tunables used by the game.
func DefaultConfig() Config {
	return Config{
		Capacity:    5,
		DecayRate:   2.0,
		MinStrength: 0.01,
	}
}

type subscriber struct {
	token uint64
	fn    Listener
}

// Manager tracks the bounded set of currently active impacts and notifies
// subscribers of new ones. It is owned and mutated by a single goroutine per
// frame; the slice returned by Impacts must be treated as immutable for the
// frame it was read in.
type Manager struct {
	log  *logrus.Logger
	conf Config

	events    []Event
	nextID    int64
	nextToken uint64
	subs      []subscriber

	// clock is the manager's own simulation time, advanced by Tick.
	clock float32
}

// NewManager returns an impact manager with the given config. A nil logger
// discards all output.
func NewManager(log *logrus.Logger, conf Config) *Manager {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	if conf.Capacity <= 0 {
		conf.Capacity = DefaultConfig().Capacity
	}

	return &Manager{
		log:    log,
		conf:   conf,
		events: make([]Event, 0, conf.Capacity),
	}
}

// Add records an impact at the given local-space point. Strength is clamped
// to [0, 1]. If the buffer is full the oldest impact is evicted first. All
// current subscribers are notified synchronously.
func (m *Manager) Add(point mgl32.Vec3, strength float32) {
	if len(m.events) >= m.conf.Capacity {
		m.log.Debugf("impact buffer full, evicting impact %d", m.events[0].ID)
		m.events = m.events[:copy(m.events, m.events[1:])]
	}

	ev := Event{
		ID:        m.nextID,
		HitPoint:  point,
		Strength:  game.Clamp01(strength),
		CreatedAt: m.clock,
	}
	m.nextID++
	m.events = append(m.events, ev)

	m.notify(ev)
}

// notify delivers ev to every subscriber in insertion order. A panicking
// subscriber must not stop delivery to the others or corrupt the manager, so
// each call is isolated.
func (m *Manager) notify(ev Event) {
	for _, sub := range m.subs {
		func() {
			defer func() {
				if v := recover(); v != nil {
					sentry.CurrentHub().Recover(v)
					m.log.Errorf("impact listener %d panicked: %v", sub.token, v)
				}
			}()
			sub.fn(ev)
		}()
	}
}

// Tick advances the manager's clock and decays every tracked impact, removing
// those that fall at or below the minimum strength.
func (m *Manager) Tick(dt float32) {
	m.clock += dt

	// Reverse order so removal does not skip elements.
	for i := len(m.events) - 1; i >= 0; i-- {
		m.events[i].Strength -= m.conf.DecayRate * dt
		if m.events[i].Strength <= m.conf.MinStrength {
			m.events = append(m.events[:i], m.events[i+1:]...)
		}
	}
}

// Impacts returns the tracked impacts, oldest first. The returned slice is a
// view into the manager's buffer and must not be mutated or retained across
// frames.
func (m *Manager) Impacts() []Event {
	return m.events
}

// Subscribe registers a listener for newly added impacts and returns a
// function that removes it again. Subscribers are independent of each other.
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	token := m.nextToken
	m.nextToken++
	m.subs = append(m.subs, subscriber{token: token, fn: fn})

	return func() {
		for i, sub := range m.subs {
			if sub.token == token {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

// Clock returns the manager's internal simulation time.
func (m *Manager) Clock() float32 {
	return m.clock
}

// Clear empties the impact buffer. Subscribers and the id counter are kept.
func (m *Manager) Clear() {
	m.events = m.events[:0]
}

// Reset empties the buffer, drops all subscribers and restarts the id counter
// and clock. Used on scene or opponent change.
func (m *Manager) Reset() {
	m.events = m.events[:0]
	m.subs = nil
	m.nextID = 0
	m.clock = 0
}
