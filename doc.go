// Package schedule generates rotating writer/editor duty rosters.
//
// A schedule divides time into blocks. Each block holds a number of slots,
// and each slot pairs one writer with one editor. Every author in the pool
// must write exactly NumWrites times and edit exactly NumWrites times over
// the whole schedule, may hold a given role at most once per block, and may
// never hold the same role in two consecutive blocks.
//
// The engine is a randomized trial-and-error search, not an exact solver.
// It builds one block at a time by drawing candidate pairs at random,
// abandons a block when it dead-ends, and abandons a whole attempt when the
// iteration budget runs out or the remaining quota becomes infeasible.
// Budgets are explicit (Params.MaxTrials, Params.MaxIter) and the search is
// reproducible under WithSeed.
//
// Typical usage:
//
//	gen, err := schedule.New(authors, schedule.DefaultParams())
//	if err != nil { ... }
//	sched, err := gen.Generate()
//	if err != nil { ... }
//	err = gen.AllocatePostTypes(sched)
package schedule
