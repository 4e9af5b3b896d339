package engine

// DiceState is the seeded random source. The stream is a pure function of
// (Seed, Cursor), so it serializes inside GameState and two instances given
// the same seed and call sequence produce identical output. That property
// underwrites replays, persistence round-trips and deterministic demos.
//
// The generator is SplitMix64: each output mixes seed+cursor through a fixed
// avalanche, so restoring a saved cursor resumes the stream exactly.
type DiceState struct {
	Seed   int64  `json:"seed"`
	Cursor uint64 `json:"cursor"`
}

// NewDiceState returns a dice stream positioned at the start of the sequence
// for the given seed.
func NewDiceState(seed int64) DiceState {
	return DiceState{Seed: seed}
}

func (d *DiceState) next() uint64 {
	d.Cursor++
	x := uint64(d.Seed) + d.Cursor*0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

// IntN returns a value in [min, max] inclusive. min must not exceed max.
func (d *DiceState) IntN(min, max int) int {
	if min > max {
		panic("engine: IntN min > max")
	}
	return min + int(d.next()%uint64(max-min+1))
}

// RollDie rolls one six-sided die.
func (d *DiceState) RollDie() int {
	return d.IntN(1, 6)
}

// Roll2d6 rolls two dice and returns them separately so callers can detect
// doubles.
func (d *DiceState) Roll2d6() (int, int) {
	return d.RollDie(), d.RollDie()
}

// Shuffle performs a Fisher-Yates shuffle over n elements using the seeded
// stream.
func (d *DiceState) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := d.IntN(0, i)
		swap(i, j)
	}
}
