package schedule

// iterBudget is the per-attempt iteration allowance shared by every block
// build within that attempt.
type iterBudget struct {
	used int
	max  int
}

// spend consumes one iteration, reporting false once the budget is gone.
func (b *iterBudget) spend() bool {
	b.used++

	return b.used <= b.max
}

// blockBuilder assembles one block by repeatedly invoking the selector.
// Each successful draw is committed to the shared quota tracker
// immediately; on a dead end the whole block's commits are undone and the
// block restarts from empty. Running out of budget is the only failure.
type blockBuilder struct {
	sel    *selector
	quota  *quotaTracker
	budget *iterBudget

	rebuilds int // dead-end restarts, for diagnostics only
}

// build fills a block of the given target length. Returns false when the
// iteration budget is exhausted, with all of the block's commits rolled
// back.
func (bb *blockBuilder) build(blockIdx, length int) ([]Slot, bool) {
	mark := bb.quota.mark()
	blk := newPartialBlock(length)

	for len(blk.slots) < length {
		if !bb.budget.spend() {
			bb.quota.rollbackTo(mark)

			return nil, false
		}

		slot, ok := bb.sel.propose(blk, blockIdx)
		if !ok {
			// Dead end: scrap the partial block and start it over.
			bb.quota.rollbackTo(mark)
			blk = newPartialBlock(length)
			bb.rebuilds++

			continue
		}

		bb.quota.commit(slot, blockIdx)
		blk.add(slot)
	}

	return blk.slots, true
}
