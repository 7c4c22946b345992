package schedule

// attemptState is the orchestrator's position within one attempt.
type attemptState int

const (
	stateBuilding attemptState = iota
	stateSucceeded
	stateFailedAttempt
)

// attemptResult carries one finished attempt back to the trial loop.
type attemptResult struct {
	blocks     []Block
	state      attemptState
	iterations int
	rebuilds   int
	reason     string
}

// Generate runs the two-level retry search: block-by-block construction
// inside an attempt (micro-retry via the block builder's iteration
// budget), and whole-attempt restarts up to MaxTrials (macro-retry).
// It returns ErrExhausted when every trial fails.
//
// All slots in the returned schedule are KindRegular; run
// [Generator.AllocatePostTypes] afterwards to designate queue/beyond
// posts.
func (g *Generator) Generate() (*Schedule, error) {
	sizes := g.params.blockSizes(len(g.authors))
	quota := newQuotaTracker(g.authors, g.params.NumWrites)

	for trial := 1; trial <= g.params.MaxTrials; trial++ {
		res := g.attempt(sizes, quota)

		g.emit(ProgressEvent{
			Trial:      trial,
			Trials:     g.params.MaxTrials,
			Iterations: res.iterations,
			Rebuilds:   res.rebuilds,
			Blocks:     len(res.blocks),
			Failed:     res.state != stateSucceeded,
			Reason:     res.reason,
		})

		if res.state == stateSucceeded {
			return &Schedule{
				Blocks: res.blocks,
				Queue:  make([][]Slot, len(res.blocks)),
				Beyond: make([][]Slot, len(res.blocks)),
			}, nil
		}

		// Discard the attempt wholesale and start over.
		quota.reset()
	}

	return nil, ErrExhausted
}

// attempt drives one full construction pass over all blocks. The quota
// tracker must be freshly reset; on failure the caller resets it again.
func (g *Generator) attempt(sizes []int, quota *quotaTracker) attemptResult {
	budget := &iterBudget{max: g.params.MaxIter}
	builder := &blockBuilder{
		sel: &selector{
			authors:           g.authors,
			quota:             quota,
			rng:               g.rng,
			dualRole:          g.dualRole,
			noCrossRoleRepeat: g.params.NoCrossRoleRepeat,
		},
		quota:  quota,
		budget: budget,
	}

	blocks := make([]Block, 0, len(sizes))
	state := stateBuilding
	reason := ""

	for i := 0; state == stateBuilding; i++ {
		slots, ok := builder.build(i, sizes[i])
		if !ok {
			state = stateFailedAttempt
			reason = "iteration budget exhausted"

			break
		}

		blocks = append(blocks, Block{Slots: slots, Full: sizes[i] == g.params.BlockSize()})

		switch {
		case i+1 == len(sizes):
			// All blocks built; the final invariant is exact quota.
			if quota.satisfied() {
				state = stateSucceeded
			} else {
				state = stateFailedAttempt
				reason = "quota not met"
			}
		case !quota.feasible(len(sizes)-i-1, sizes[i+1]):
			// Prune early instead of running the budget to exhaustion.
			state = stateFailedAttempt
			reason = "remaining quota infeasible"
		}
	}

	return attemptResult{
		blocks:     blocks,
		state:      state,
		iterations: budget.used,
		rebuilds:   builder.rebuilds,
		reason:     reason,
	}
}
