package schedule

import "errors"

// Sentinel errors returned by the engine.
//
// Callers should use [errors.Is] to check error types:
//
//	if errors.Is(err, schedule.ErrExhausted) {
//	    // retry with a larger trial budget, or loosen the parameters
//	}
var (
	// ErrInvalidParams indicates a parameter combination that makes success
	// structurally impossible (empty pool, non-positive quotas, a pool too
	// small to fill one block, or NumWrites < NumQueue+NumBeyond, which
	// would force some author to write only queue/beyond posts).
	//
	// Detected by [New] before any search runs.
	ErrInvalidParams = errors.New("schedule: invalid parameters")

	// ErrExhausted indicates all MaxTrials attempts were used without
	// finding a valid schedule.
	//
	// Recovery: raise MaxTrials/MaxIter, shrink the block size, or grow
	// the author pool.
	ErrExhausted = errors.New("schedule: trials exhausted")

	// ErrAllocation indicates the post-type allocator could not pick
	// queue/beyond slots within its iteration budget.
	//
	// Recovery: lower NumQueue and/or NumBeyond, or raise NumWrites.
	ErrAllocation = errors.New("schedule: post-type allocation exhausted")

	// ErrInvalidSchedule is returned by [Validate] for a block sequence
	// that breaks a quota or adjacency rule.
	ErrInvalidSchedule = errors.New("schedule: invalid schedule")
)
