package games

import "math/rand"

// slot symbols in payout order; the jackpot symbols carry their own multipliers
var slotSymbols = []string{"🍒", "🍋", "🍊", "🍇", "🍉", "⭐", "💎", "7️⃣"}

const (
	symbolSeven   = "7️⃣"
	symbolDiamond = "💎"
)

// SlotResult is the outcome of one spin
type SlotResult struct {
	Reels      [3]string
	Multiplier int64 // 0 means the bet is lost
}

// Win reports whether the spin pays out
func (r SlotResult) Win() bool {
	return r.Multiplier > 0
}

// Payout returns the gross winnings for the bet (0 on a loss)
func (r SlotResult) Payout(bet int64) int64 {
	return bet * r.Multiplier
}

// Spin draws three reels from the given source and scores them. Triples pay
// 10× for sevens, 7× for diamonds and 5× otherwise; any pair pays 2×.
func Spin(rng *rand.Rand) SlotResult {
	var result SlotResult
	for i := range result.Reels {
		result.Reels[i] = slotSymbols[rng.Intn(len(slotSymbols))]
	}
	result.Multiplier = score(result.Reels)
	return result
}

func score(reels [3]string) int64 {
	a, b, c := reels[0], reels[1], reels[2]

	if a == b && b == c {
		switch a {
		case symbolSeven:
			return 10
		case symbolDiamond:
			return 7
		default:
			return 5
		}
	}

	if a == b || b == c || a == c {
		return 2
	}

	return 0
}
