package solver

import (
	"sort"

	"github.com/openfreight/loadplan/core/model"
)

// Neighbor pairs a candidate follow-on load with the deadhead distance from
// the preceding load's dropoff to the candidate's pickup.
type Neighbor struct {
	Load int // dense load index
	Dist float64
}

// NeighborMap ranks, for every load, all other loads by the directed
// dropoff-to-pickup distance. Rank 0 is the cheapest follow-on. The map is
// built once per problem and read concurrently by all search trials.
type NeighborMap struct {
	seqs [][]Neighbor
}

// BuildNeighborMap computes the full directed distance relation. Ties are
// broken by load ID so the ordering is stable across runs.
func BuildNeighborMap(p *model.Problem) *NeighborMap {
	n := p.Len()
	seqs := make([][]Neighbor, n)
	for i := 0; i < n; i++ {
		from := p.Load(i)
		seq := make([]Neighbor, 0, n-1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			seq = append(seq, Neighbor{Load: j, Dist: from.Dropoff.Distance(p.Load(j).Pickup)})
		}
		sort.Slice(seq, func(a, b int) bool {
			if seq[a].Dist != seq[b].Dist {
				return seq[a].Dist < seq[b].Dist
			}
			return p.Load(seq[a].Load).ID < p.Load(seq[b].Load).ID
		})
		seqs[i] = seq
	}
	return &NeighborMap{seqs: seqs}
}

// Len returns the number of loads covered by the map.
func (m *NeighborMap) Len() int { return len(m.seqs) }

// Neighbors returns load i's candidates, nearest first. Callers must not
// modify the slice.
func (m *NeighborMap) Neighbors(i int) []Neighbor { return m.seqs[i] }
