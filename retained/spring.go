package retained

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// SpringConfig configures a spring animation.
// Zero values mean "use default".
type SpringConfig struct {
	AngularFrequency float64 // Stiffness in rad/s (default 12)
	DampingRatio     float64 // <1 under-damped, 1 critical, >1 over-damped (default 0.8)
	Velocity         float64 // Initial velocity in units per second

	// OvershootClamping ends the animation at the target the moment the value
	// reaches it, so it never bounces past.
	OvershootClamping bool

	RestDisplacementThreshold float64 // Distance from target considered at rest (default 0.001)
	RestSpeedThreshold        float64 // Speed considered at rest (default 0.001)
}

// DefaultSpringConfig returns the spring used for gallery settles.
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{
		AngularFrequency:          12,
		DampingRatio:              0.8,
		OvershootClamping:         true,
		RestDisplacementThreshold: 0.001,
		RestSpeedThreshold:        0.001,
	}
}

func (c SpringConfig) withDefaults() SpringConfig {
	def := DefaultSpringConfig()
	if c.AngularFrequency <= 0 {
		c.AngularFrequency = def.AngularFrequency
	}
	if c.DampingRatio <= 0 {
		c.DampingRatio = def.DampingRatio
	}
	if c.RestDisplacementThreshold <= 0 {
		c.RestDisplacementThreshold = def.RestDisplacementThreshold
	}
	if c.RestSpeedThreshold <= 0 {
		c.RestSpeedThreshold = def.RestSpeedThreshold
	}
	return c
}

// Spring animates the base value toward `to` with a damped spring.
// The spring is integrated with harmonica using the real frame delta, so
// irregular frame times do not change the curve.
func (b *AnimationBuilder) Spring(to float64, cfg SpringConfig) *Animation {
	cfg = cfg.withDefaults()
	from := b.value.Base()
	pos, vel := from, cfg.Velocity

	return b.start(func(anim *Animation) stepFunc {
		return func(now time.Time, dt time.Duration) bool {
			if cfg.OvershootClamping && from == to {
				b.value.setFromAnimation(anim, to)
				return true
			}
			if dt <= 0 {
				return false
			}

			spring := harmonica.NewSpring(dt.Seconds(), cfg.AngularFrequency, cfg.DampingRatio)
			pos, vel = spring.Update(pos, vel, to)

			if cfg.OvershootClamping && overshot(from, to, pos) {
				b.value.setFromAnimation(anim, to)
				return true
			}
			if math.Abs(to-pos) <= cfg.RestDisplacementThreshold && math.Abs(vel) <= cfg.RestSpeedThreshold {
				b.value.setFromAnimation(anim, to)
				return true
			}

			b.value.setFromAnimation(anim, pos)
			return false
		}
	})
}

// overshot reports whether pos has reached or passed `to` coming from `from`.
func overshot(from, to, pos float64) bool {
	if from < to {
		return pos >= to
	}
	return pos <= to
}
