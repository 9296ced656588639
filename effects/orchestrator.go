package effects

import (
	"io"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/punchsim/punch/game"
	"github.com/punchsim/punch/hitzone"
	"github.com/sirupsen/logrus"
)

// Config holds the orchestrator tunables.
type Config struct {
	// Channels holds the trigger policy per channel, indexed by Channel.
	Channels [channelCount]Params
	// DecayRate is the intensity lost per second by every active effect.
	DecayRate float32
	// MinIntensity is the floor at or below which an effect is removed.
	MinIntensity float32

	// ComboWindow is the maximum gap in seconds between hits that still
	// counts as a combo.
	ComboWindow float32
	ComboStep   float32
	ComboMax    float32

	// CheekBonus is the flat intensity bonus cheekWobble gets when the hit
	// landed directly on a cheek.
	CheekBonus float32

	// StarsThreshold is the cumulative damage above which starsSpin fires.
	StarsThreshold float32
	// DamageDecay is the cumulative damage lost per second.
	DamageDecay float32

	// JawProgressRate is the detach progress gained per second while the jaw
	// is off.
	JawProgressRate float32
}

// DefaultConfig returns the trigger policy used by the game.
func DefaultConfig() Config {
	c := Config{
		DecayRate:       0.8,
		MinIntensity:    0.01,
		ComboWindow:     0.5,
		ComboStep:       0.1,
		ComboMax:        0.3,
		CheekBonus:      0.3,
		StarsThreshold:  3,
		DamageDecay:     0.5,
		JawProgressRate: 2,
	}
	c.Channels[ChannelEyePop] = Params{Threshold: 0.3, Duration: 1.2, Priority: 3}
	c.Channels[ChannelCheekWobble] = Params{Threshold: 0.1, Duration: 0.8, Priority: 1}
	c.Channels[ChannelNoseSquash] = Params{Threshold: 0.2, Duration: 0.6, Priority: 2}
	c.Channels[ChannelJawDetach] = Params{Threshold: 0.7, Duration: 1.5, Priority: 5}
	c.Channels[ChannelHeadSquash] = Params{Threshold: 0.1, Duration: 0.5, Priority: 2}
	c.Channels[ChannelStarsSpin] = Params{Threshold: 0, Duration: 2.5, Priority: 6}
	return c
}

// Snapshot is the per-frame output read by the rendering collaborator. The
// four intensities are clamped to [0, 1].
type Snapshot struct {
	EyePop      float32
	CheekWobble float32
	NoseSquash  float32
	HeadSquash  float32

	SquashAxis        mgl32.Vec3
	JawDetached       bool
	JawDetachProgress float32
}

// Orchestrator turns classified hits into timed, decaying, combinable visual
// reactions. It is owned and mutated by a single goroutine per frame.
type Orchestrator struct {
	log  *logrus.Logger
	conf Config

	active *orderedmap.OrderedMap[Channel, *ActiveEffect]
	nextID int64

	// clock is the orchestrator's own simulation time, advanced by Tick.
	clock float32

	consecutiveHits  int
	lastHitTime      float32
	cumulativeDamage float32

	jawDetached bool
	jawProgress float32
	squashAxis  mgl32.Vec3
}

// NewOrchestrator returns an orchestrator with the given config. A nil
// logger discards all output.
func NewOrchestrator(log *logrus.Logger, conf Config) *Orchestrator {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	return &Orchestrator{
		log:         log,
		conf:        conf,
		active:      orderedmap.NewOrderedMap[Channel, *ActiveEffect](),
		lastHitTime: -1e9,
		squashAxis:  mgl32.Vec3{0, 1, 0},
	}
}

// Trigger fires a channel with its default duration.
func (o *Orchestrator) Trigger(ch Channel, intensity float32) {
	o.TriggerFor(ch, intensity, o.conf.Channels[ch].Duration)
}

// TriggerFor fires a channel with an explicit duration. If the channel is
// already live its intensity is boosted by half the new intensity and its
// start time refreshed without touching the duration; a fresh trigger
// instead gets a 1.5x kick.
func (o *Orchestrator) TriggerFor(ch Channel, intensity, duration float32) {
	if ef, ok := o.active.Get(ch); ok {
		ef.Intensity = game.Clamp01(ef.Intensity + intensity*0.5)
		ef.StartTime = o.clock
		o.log.Debugf("effect %s re-triggered (intensity=%.2f)", ch, ef.Intensity)
		return
	}

	ef := &ActiveEffect{
		ID:        o.nextID,
		Channel:   ch,
		Intensity: game.Clamp01(intensity * 1.5),
		StartTime: o.clock,
		Duration:  duration,
		Decay:     o.conf.DecayRate,
	}
	o.nextID++
	o.active.Set(ch, ef)
	o.log.Debugf("effect %s triggered (intensity=%.2f, duration=%.2f)", ch, ef.Intensity, ef.Duration)
}

// ProcessHit is the central dispatch: it applies combo tracking and the
// per-zone threshold rules, firing every channel whose rule passes. Rules
// are independent, one hit may fire several channels. Unknown zones simply
// fail every zone-specific rule.
func (o *Orchestrator) ProcessHit(zone hitzone.Zone, intensity float32) {
	if o.clock-o.lastHitTime <= o.conf.ComboWindow {
		o.consecutiveHits++
	} else {
		o.consecutiveHits = 1
	}
	o.lastHitTime = o.clock

	// An isolated hit carries no bonus; the counter only pays out once a
	// second hit lands inside the window.
	var comboBonus float32
	if o.consecutiveHits > 1 {
		comboBonus = float32(o.consecutiveHits) * o.conf.ComboStep
		if comboBonus > o.conf.ComboMax {
			comboBonus = o.conf.ComboMax
		}
	}
	effective := game.Clamp01(intensity + comboBonus)

	// Cumulative damage accumulates the raw intensity, not the combo boost.
	o.cumulativeDamage += intensity

	if (zone.Eye() || zone == hitzone.ZoneForehead) && effective >= o.conf.Channels[ChannelEyePop].Threshold {
		o.Trigger(ChannelEyePop, effective)
	}

	if effective >= o.conf.Channels[ChannelCheekWobble].Threshold {
		wobble := effective
		if zone.Cheek() {
			wobble += o.conf.CheekBonus
		}
		o.Trigger(ChannelCheekWobble, wobble)
	}

	if zone == hitzone.ZoneNose && effective >= o.conf.Channels[ChannelNoseSquash].Threshold {
		o.Trigger(ChannelNoseSquash, effective)
	}

	if effective >= o.conf.Channels[ChannelHeadSquash].Threshold {
		o.squashAxis = squashAxisFor(zone)
		o.Trigger(ChannelHeadSquash, effective)
	}

	if zone == hitzone.ZoneJaw && effective >= o.conf.Channels[ChannelJawDetach].Threshold {
		o.jawDetached = true
		o.jawProgress = 0
		o.Trigger(ChannelJawDetach, effective)
	}

	if o.cumulativeDamage > o.conf.StarsThreshold {
		o.Trigger(ChannelStarsSpin, 1)
	}
}

// squashAxisFor selects which local axis visually compresses for a hit on
// the given zone.
func squashAxisFor(zone hitzone.Zone) mgl32.Vec3 {
	switch zone {
	case hitzone.ZoneLeftCheek:
		return mgl32.Vec3{1, 0, 0}
	case hitzone.ZoneRightCheek:
		return mgl32.Vec3{-1, 0, 0}
	case hitzone.ZoneNose:
		return mgl32.Vec3{0, 0, 1}
	default:
		return mgl32.Vec3{0, 1, 0}
	}
}

// Tick advances the orchestrator's clock, decays every active effect, runs
// the jaw state machine and bleeds off cumulative damage.
func (o *Orchestrator) Tick(dt float32) {
	o.clock += dt

	var expired []Channel
	for el := o.active.Front(); el != nil; el = el.Next() {
		ef := el.Value
		ef.Intensity -= ef.Decay * dt
		if ef.Intensity <= o.conf.MinIntensity || o.clock-ef.StartTime >= ef.Duration {
			expired = append(expired, el.Key)
		}
	}
	for _, ch := range expired {
		o.active.Delete(ch)
	}

	if o.jawDetached {
		o.jawProgress += dt * o.conf.JawProgressRate
		if o.jawProgress >= 1 {
			// The free flight is over, snap the jaw back on.
			o.jawDetached = false
			o.jawProgress = 0
		}
	}

	o.cumulativeDamage -= o.conf.DamageDecay * dt
	if o.cumulativeDamage < 0 {
		o.cumulativeDamage = 0
	}
}

// Intensity returns the current display intensity of a channel, clamped to
// [0, 1], or 0 if the channel is not live.
func (o *Orchestrator) Intensity(ch Channel) float32 {
	ef, ok := o.active.Get(ch)
	if !ok {
		return 0
	}
	return game.Clamp01(ef.Intensity)
}

// Active returns a copy of the live effect on a channel, if any.
func (o *Orchestrator) Active(ch Channel) (ActiveEffect, bool) {
	ef, ok := o.active.Get(ch)
	if !ok {
		return ActiveEffect{}, false
	}
	return *ef, true
}

// ActiveCount returns the amount of live effects.
func (o *Orchestrator) ActiveCount() int {
	return o.active.Len()
}

// Snapshot returns the per-frame values read by the rendering collaborator.
func (o *Orchestrator) Snapshot() Snapshot {
	return Snapshot{
		EyePop:            o.Intensity(ChannelEyePop),
		CheekWobble:       o.Intensity(ChannelCheekWobble),
		NoseSquash:        o.Intensity(ChannelNoseSquash),
		HeadSquash:        o.Intensity(ChannelHeadSquash),
		SquashAxis:        o.squashAxis,
		JawDetached:       o.jawDetached,
		JawDetachProgress: o.jawProgress,
	}
}

// JawDetached reports whether the jaw is currently off.
func (o *Orchestrator) JawDetached() bool {
	return o.jawDetached
}

// JawDetachProgress returns the detach cycle progress in [0, 1].
func (o *Orchestrator) JawDetachProgress() float32 {
	return o.jawProgress
}

// CumulativeDamage returns the current decayed damage total.
func (o *Orchestrator) CumulativeDamage() float32 {
	return o.cumulativeDamage
}

// ConsecutiveHits returns the current combo counter.
func (o *Orchestrator) ConsecutiveHits() int {
	return o.consecutiveHits
}

// Clock returns the orchestrator's internal simulation time.
func (o *Orchestrator) Clock() float32 {
	return o.clock
}

// Reset restores the orchestrator to its initial state. Used on scene or
// opponent change.
func (o *Orchestrator) Reset() {
	o.active = orderedmap.NewOrderedMap[Channel, *ActiveEffect]()
	o.nextID = 0
	o.clock = 0
	o.consecutiveHits = 0
	o.lastHitTime = -1e9
	o.cumulativeDamage = 0
	o.jawDetached = false
	o.jawProgress = 0
	o.squashAxis = mgl32.Vec3{0, 1, 0}
}
