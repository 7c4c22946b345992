package schedule

import (
	"math/rand"
	"time"
)

// Generator owns one search configuration: the author pool, the
// parameters, and the random source. It is not safe for concurrent use;
// the search is synchronous and single-threaded.
type Generator struct {
	authors  []Author
	params   Params
	rng      *rand.Rand
	progress func(ProgressEvent)
	warnings []string

	// dualRole is set only by SecretSanta; see selector.dualRole.
	dualRole bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the search deterministic: the same seed, author order and
// parameters always produce the same schedule. Without it the generator is
// entropy-seeded.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand supplies an explicit random source, for callers that thread one
// through several components.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithProgress registers a callback invoked once per finished attempt.
// Failed attempts are routine, expected backtracking, so they are reported
// here rather than as errors.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(g *Generator) {
		g.progress = fn
	}
}

// ProgressEvent describes one finished attempt.
type ProgressEvent struct {
	Trial      int // 1-based attempt number
	Trials     int // total attempt budget (MaxTrials)
	Iterations int // iteration budget consumed by this attempt
	Rebuilds   int // block dead-end restarts within this attempt
	Blocks     int // blocks completed before the attempt ended
	Failed     bool
	Reason     string // empty on success
}

// New validates the parameters against the author pool and returns a
// ready-to-run Generator. The author order is preserved: it is the
// tie-breaking order for candidate draws, so a fixed seed plus a fixed
// pool order gives reproducible schedules.
func New(authors []Author, params Params, opts ...Option) (*Generator, error) {
	return newGenerator(authors, params, false, opts...)
}

func newGenerator(authors []Author, params Params, dualRole bool, opts ...Option) (*Generator, error) {
	if err := params.validate(len(authors), dualRole); err != nil {
		return nil, err
	}

	g := &Generator{
		authors:  append([]Author(nil), authors...),
		params:   params,
		dualRole: dualRole,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Advisory only: small pools still work (the 8-author two-write case
	// is fine) but burn many more trials.
	if len(authors) <= 4*params.BlockSize() && len(authors)*params.NumWrites > params.BlockSize() {
		g.warnings = append(g.warnings,
			"author pool is at most 4x the block size; expect many trials or raise MaxTrials")
	}

	return g, nil
}

// Authors returns the pool in its stable draw order.
func (g *Generator) Authors() []Author {
	return append([]Author(nil), g.authors...)
}

// Params returns the generator's parameters.
func (g *Generator) Params() Params { return g.params }

// Warnings returns advisory notes collected during construction, such as a
// pool that is feasible but small enough to slow the search badly.
func (g *Generator) Warnings() []string {
	return append([]string(nil), g.warnings...)
}

func (g *Generator) emit(ev ProgressEvent) {
	if g.progress != nil {
		g.progress(ev)
	}
}
