package joshmachine

import (
	"math/rand"
	"sync"
	"time"
)

// Random is the machine's shared RNG (spec §4.6, §5): deterministic when
// constructed with a seed, wall-clock seeded otherwise, and safe to share
// across machines evaluating independent handlers on separate threads — a
// shared stream is preferred over per-machine streams so every organism in
// a simulation draws from one sequential sequence.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom builds a deterministic Random seeded by seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomFromClock builds a Random seeded from the wall clock, for runs
// that don't request determinism.
func NewRandomFromClock() *Random {
	return &Random{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Uniform draws a float64 uniformly from [low, high).
func (r *Random) Uniform(low, high float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return low + r.rng.Float64()*(high-low)
}

// Normal draws a float64 from a normal distribution with the given mean and
// standard deviation.
func (r *Random) Normal(mean, std float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return mean + r.rng.NormFloat64()*std
}

// Intn draws a uniform integer in [0, n).
func (r *Random) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Do runs fn with exclusive access to the underlying *rand.Rand, for
// collaborators (like joshvalue.Distribution.Sample) whose signature expects
// a bare *rand.Rand rather than Random's own draw methods.
func (r *Random) Do(fn func(*rand.Rand)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.rng)
}
