package engine

import (
	"math/rand/v2"
	"time"
)

// Roller draws combat damage.
type Roller interface {
	// Roll returns an integer in [min, max].
	Roll(min, max int) int
}

type randRoller struct {
	r *rand.Rand
}

// NewRoller returns a uniform Roller seeded with seed. A zero seed picks one
// from the clock.
func NewRoller(seed int64) Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randRoller{r: rand.New(rand.NewPCG(uint64(seed), 0x6d616e73696f6e))}
}

func (r *randRoller) Roll(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.r.IntN(max-min+1)
}

func (e *Engine) roll(d damageRange) int {
	return e.roller.Roll(d.min, d.max)
}
