package solver

import "math/rand"

// firstRanks draws the promoted scan rank for every load of one trial. With
// probability cfg.FirstPickBias a load's first candidate is drawn from its
// TopK nearest neighbors instead of always rank 0. Leaving a nearest
// neighbor unclaimed early keeps it cheaply reachable for a later route,
// which is where most of the cost spread between trials comes from.
func firstRanks(n int, cfg Config, rng *rand.Rand) []int {
	ranks := make([]int, n)
	k := cfg.TopK
	if limit := n - 1; k > limit {
		k = limit
	}
	if k < 2 {
		return ranks
	}
	for i := range ranks {
		if rng.Float64() < cfg.FirstPickBias {
			ranks[i] = rng.Intn(k)
		}
	}
	return ranks
}
