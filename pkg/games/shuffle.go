package games

import "math/rand"

// ShuffleAnswers mixes the correct answer in with the wrong ones and returns
// the shuffled options plus the index of the correct one
func ShuffleAnswers(rng *rand.Rand, correct string, wrong []string) ([]string, int) {
	options := make([]string, 0, len(wrong)+1)
	options = append(options, correct)
	options = append(options, wrong...)

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	for i, opt := range options {
		if opt == correct {
			return options, i
		}
	}
	return options, 0
}
