package schedule

import "fmt"

// AllocatePostTypes designates queue and beyond posts for every full block
// of a successful schedule. It relabels Slot.Kind in place and fills
// s.Queue and s.Beyond; writer/editor pairs are never changed, so the
// schedule's validity is unaffected. Remainder blocks are skipped.
//
// When NumWrites exceeds NumQueue+NumBeyond, the selection guarantees that
// every author keeps at least one regular post among their written slots.
// Selection is randomized and bounded by MaxIter; a budget overrun returns
// ErrAllocation.
//
// Re-running the allocator reshuffles the designations from scratch; the
// (writer, editor) pairs are untouched either way.
func (g *Generator) AllocatePostTypes(s *Schedule) error {
	p := g.params

	// Reset any previous designation so the operation is self-contained.
	s.Queue = make([][]Slot, len(s.Blocks))
	s.Beyond = make([][]Slot, len(s.Blocks))

	for bi := range s.Blocks {
		for si := range s.Blocks[bi].Slots {
			s.Blocks[bi].Slots[si].Kind = KindRegular
		}
	}

	if p.NumQueue == 0 && p.NumBeyond == 0 {
		return nil
	}

	// Selections already accepted for earlier blocks; used to keep every
	// writer at least one regular post across the whole schedule.
	designated := make(map[Author]int, len(g.authors))
	budget := &iterBudget{max: p.MaxIter}

	for bi := range s.Blocks {
		if !s.Blocks[bi].Full {
			continue
		}

		queueIdx, beyondIdx, err := g.pickPostTypes(s.Blocks[bi].Slots, designated, budget)
		if err != nil {
			return fmt.Errorf("%w: block %d", err, bi)
		}

		for _, si := range queueIdx {
			s.Blocks[bi].Slots[si].Kind = KindQueue
			s.Queue[bi] = append(s.Queue[bi], s.Blocks[bi].Slots[si])
			designated[s.Blocks[bi].Slots[si].Writer]++
		}

		for _, si := range beyondIdx {
			s.Blocks[bi].Slots[si].Kind = KindBeyond
			s.Beyond[bi] = append(s.Beyond[bi], s.Blocks[bi].Slots[si])
			designated[s.Blocks[bi].Slots[si].Writer]++
		}
	}

	return nil
}

// pickPostTypes draws NumQueue then NumBeyond distinct slot indices for
// one full block, retrying until the regular-post guarantee holds or the
// budget runs out.
func (g *Generator) pickPostTypes(slots []Slot, designated map[Author]int, budget *iterBudget) ([]int, []int, error) {
	p := g.params
	guarded := p.NumWrites > p.NumQueue+p.NumBeyond

	for {
		if !budget.spend() {
			return nil, nil, ErrAllocation
		}

		picked := g.rng.Perm(len(slots))
		queueIdx := picked[:p.NumQueue]
		beyondIdx := picked[p.NumQueue : p.NumQueue+p.NumBeyond]

		if !guarded || g.regularGuaranteeHolds(slots, queueIdx, beyondIdx, designated) {
			return queueIdx, beyondIdx, nil
		}
	}
}

// regularGuaranteeHolds checks that accepting this selection still leaves
// every affected writer at least one regular post: their schedule-wide
// queue+beyond count must stay below NumWrites.
func (g *Generator) regularGuaranteeHolds(slots []Slot, queueIdx, beyondIdx []int, designated map[Author]int) bool {
	tentative := make(map[Author]int, len(queueIdx)+len(beyondIdx))
	for _, si := range queueIdx {
		tentative[slots[si].Writer]++
	}

	for _, si := range beyondIdx {
		tentative[slots[si].Writer]++
	}

	for a, n := range tentative {
		if designated[a]+n > g.params.NumWrites-1 {
			return false
		}
	}

	return true
}
