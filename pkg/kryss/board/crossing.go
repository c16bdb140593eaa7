package board

import (
	"sort"

	"github.com/kryssord/kryss/pkg/kryss"
)

// Crossing records that Slot crosses the owning slot. Offset is the position
// of the shared cell in the owning slot, OtherOffset its position in Slot.
type Crossing struct {
	Slot        int
	Offset      int
	OtherOffset int
}

// crossingIndex maps a slot index to every slot crossing it, in index order.
// It is built once and never changes.
type crossingIndex [][]Crossing

func newCrossingIndex(slots []Slot) (crossingIndex, error) {
	index := make(crossingIndex, len(slots))
	for a := range slots {
		for b := range slots {
			if a == b {
				continue
			}
			ga, gb := slots[a].Geometry, slots[b].Geometry

			if a < b && ga.IsConflicting(gb) {
				return nil, &kryss.ConflictError{A: slots[a].String(), B: slots[b].String()}
			}

			if ga.IsCrossing(gb) {
				ai, bi := ga.CrossingOffsets(gb)
				index[a] = append(index[a], Crossing{Slot: b, Offset: ai, OtherOffset: bi})
			}
		}
	}
	return index, nil
}

// byOffset returns a copy of the crossings of a sorted by offset.
func (c crossingIndex) byOffset(a int) []Crossing {
	crossings := append([]Crossing(nil), c[a]...)
	sort.SliceStable(crossings, func(i, j int) bool {
		return crossings[i].Offset < crossings[j].Offset
	})
	return crossings
}
