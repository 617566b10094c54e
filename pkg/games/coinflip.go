package games

import "math/rand"

// CoinSide is the outcome of a coin flip
type CoinSide string

const (
	Heads CoinSide = "heads"
	Tails CoinSide = "tails"
)

// Flip returns heads or tails with equal probability from the given source
func Flip(rng *rand.Rand) CoinSide {
	if rng.Intn(2) == 0 {
		return Heads
	}
	return Tails
}
