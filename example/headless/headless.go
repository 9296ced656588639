package main

import (
	"os"

	"github.com/chewxy/math32"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/punchsim/punch"
	"github.com/punchsim/punch/impact"
	"github.com/punchsim/punch/settings"
	"github.com/sirupsen/logrus"
)

// The following program runs a scripted bout against the soft-body opponent
// without any rendering attached, logging what a renderer would read each
// frame.
func main() {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}
	log.Level = logrus.DebugLevel

	conf, err := settings.Load("punch.toml")
	if err != nil {
		log.Fatalf("error reading config: %v", err)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
	}

	opts := punch.DefaultOptions()
	opts.Impact = conf.ImpactConfig()
	opts.Solver = conf.SolverConfig()
	opts.Effects = conf.EffectsConfig()
	opts.Record = conf.Recording.Enabled

	session := punch.NewSession(log, opts)
	unsubscribe := session.Impacts().Subscribe(func(ev impact.Event) {
		log.Infof("impact %d at %v (strength=%.2f)", ev.ID, ev.HitPoint, ev.Strength)
	})
	defer unsubscribe()

	// A short scripted bout: a jab on the nose, a cheek flurry, then a
	// haymaker on the jaw.
	script := []struct {
		frame    int
		point    mgl32.Vec3
		strength float32
	}{
		{frame: 30, point: mgl32.Vec3{0, 0.04, 0.24}, strength: 0.3},
		{frame: 90, point: mgl32.Vec3{-0.29, 0.04, 0.12}, strength: 0.2},
		{frame: 96, point: mgl32.Vec3{-0.29, 0.04, 0.12}, strength: 0.2},
		{frame: 102, point: mgl32.Vec3{-0.29, 0.04, 0.12}, strength: 0.2},
		{frame: 160, point: mgl32.Vec3{0, -0.2, 0.1}, strength: 0.9},
	}

	const dt = float32(1.0 / 60.0)
	for frame := 0; frame < 300; frame++ {
		for _, hit := range script {
			if hit.frame == frame {
				zone := session.Punch(hit.point, hit.strength)
				log.Infof("frame %d: punch on %s", frame, zone)
			}
		}

		session.Tick(dt)

		if frame%30 == 0 {
			snap := session.Effects().Snapshot()
			log.Infof("frame %d: eyePop=%.2f cheekWobble=%.2f noseSquash=%.2f headSquash=%.2f jaw=%v/%.2f maxDisp=%.3f",
				frame, snap.EyePop, snap.CheekWobble, snap.NoseSquash, snap.HeadSquash,
				snap.JawDetached, snap.JawDetachProgress, maxDisplacement(session))
		}
	}

	if conf.Recording.Enabled {
		session.SaveRecording(conf.Recording.Path)
	}
}

func maxDisplacement(session *punch.Session) float32 {
	disp := session.Solver().DisplacementsArray()
	max := float32(0)
	for i := 0; i < len(disp); i += 3 {
		d := math32.Sqrt(disp[i]*disp[i] + disp[i+1]*disp[i+1] + disp[i+2]*disp[i+2])
		if d > max {
			max = d
		}
	}
	return max
}
