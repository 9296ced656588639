package settings

import (
	"os"

	"github.com/restartfu/gophig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/punchsim/punch/effects"
	"github.com/punchsim/punch/impact"
	"github.com/punchsim/punch/xpbd"
)

// Settings contains everything tunable about the simulation core.
type Settings struct {
	Impact struct {
		Capacity    int
		DecayRate   float32
		MinStrength float32
	}
	Solver struct {
		Substeps      int
		Gravity       [3]float32
		GlobalDamping float32
		FloorY        float32
	}
	Effects struct {
		DecayRate   float32
		ComboWindow float32
		Thresholds  struct {
			EyePop      float32
			CheekWobble float32
			NoseSquash  float32
			JawDetach   float32
			HeadSquash  float32
		}
	}
	Recording struct {
		Enabled bool
		Path    string
	}
}

// Default returns settings mirroring the library defaults.
func Default() Settings {
	var s Settings

	ic := impact.DefaultConfig()
	s.Impact.Capacity = ic.Capacity
	s.Impact.DecayRate = ic.DecayRate
	s.Impact.MinStrength = ic.MinStrength

	sc := xpbd.DefaultConfig()
	s.Solver.Substeps = sc.Substeps
	s.Solver.Gravity = [3]float32(sc.Gravity)
	s.Solver.GlobalDamping = sc.GlobalDamping
	s.Solver.FloorY = sc.FloorY

	ec := effects.DefaultConfig()
	s.Effects.DecayRate = ec.DecayRate
	s.Effects.ComboWindow = ec.ComboWindow
	s.Effects.Thresholds.EyePop = ec.Channels[effects.ChannelEyePop].Threshold
	s.Effects.Thresholds.CheekWobble = ec.Channels[effects.ChannelCheekWobble].Threshold
	s.Effects.Thresholds.NoseSquash = ec.Channels[effects.ChannelNoseSquash].Threshold
	s.Effects.Thresholds.JawDetach = ec.Channels[effects.ChannelJawDetach].Threshold
	s.Effects.Thresholds.HeadSquash = ec.Channels[effects.ChannelHeadSquash].Threshold

	s.Recording.Path = "bout.rec"
	return s
}

// Load reads settings from the given TOML file, writing the defaults out
// first when the file does not exist yet.
func Load(path string) (Settings, error) {
	s := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := gophig.SetConfComplex(path, gophig.TOMLMarshaler{}, s, 0644); err != nil {
			return s, err
		}
		return s, nil
	}

	if err := gophig.GetConfComplex(path, gophig.TOMLMarshaler{}, &s); err != nil {
		return s, err
	}
	return s, nil
}

// ImpactConfig converts the settings into an impact manager config.
func (s Settings) ImpactConfig() impact.Config {
	return impact.Config{
		Capacity:    s.Impact.Capacity,
		DecayRate:   s.Impact.DecayRate,
		MinStrength: s.Impact.MinStrength,
	}
}

// SolverConfig converts the settings into a solver config.
func (s Settings) SolverConfig() xpbd.Config {
	return xpbd.Config{
		Substeps:      s.Solver.Substeps,
		Gravity:       mgl32.Vec3(s.Solver.Gravity),
		GlobalDamping: s.Solver.GlobalDamping,
		FloorY:        s.Solver.FloorY,
	}
}

// EffectsConfig converts the settings into an orchestrator config.
func (s Settings) EffectsConfig() effects.Config {
	c := effects.DefaultConfig()
	c.DecayRate = s.Effects.DecayRate
	c.ComboWindow = s.Effects.ComboWindow
	c.Channels[effects.ChannelEyePop].Threshold = s.Effects.Thresholds.EyePop
	c.Channels[effects.ChannelCheekWobble].Threshold = s.Effects.Thresholds.CheekWobble
	c.Channels[effects.ChannelNoseSquash].Threshold = s.Effects.Thresholds.NoseSquash
	c.Channels[effects.ChannelJawDetach].Threshold = s.Effects.Thresholds.JawDetach
	c.Channels[effects.ChannelHeadSquash].Threshold = s.Effects.Thresholds.HeadSquash
	return c
}
