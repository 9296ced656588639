package effects

// Channel is one independently decaying cartoon-reaction slot. At most one
// active effect exists per channel at any time.
type Channel uint8

const (
	ChannelEyePop Channel = iota
	ChannelCheekWobble
	ChannelNoseSquash
	ChannelJawDetach
	ChannelHeadSquash
	ChannelStarsSpin

	channelCount
)

func (c Channel) String() string {
	switch c {
	case ChannelEyePop:
		return "eyePop"
	case ChannelCheekWobble:
		return "cheekWobble"
	case ChannelNoseSquash:
		return "noseSquash"
	case ChannelJawDetach:
		return "jawDetach"
	case ChannelHeadSquash:
		return "headSquash"
	case ChannelStarsSpin:
		return "starsSpin"
	default:
		return "unknown"
	}
}

// Params holds the per-channel trigger policy. Priority documents intended
// visual dominance only; every channel runs concurrently regardless of it.
type Params struct {
	Threshold float32
	Duration  float32
	Priority  int
}

// ActiveEffect is the single live instance of a channel. Re-triggering the
// channel boosts this instance instead of creating a second one.
type ActiveEffect struct {
	ID        int64
	Channel   Channel
	Intensity float32
	StartTime float32
	Duration  float32
	Decay     float32
}
