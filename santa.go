package schedule

// SecretSanta runs the engine in its degenerate one-round mode: every
// author gives exactly once and receives exactly once within a single
// block, with no self-pairing. The result is a derangement of the pool,
// returned as slots whose Writer is the giver and Editor the recipient.
//
// Budgets come from DefaultParams and can be overridden through opts by
// supplying a seed; for custom budgets use SecretSantaParams.
func SecretSanta(authors []Author, opts ...Option) ([]Slot, error) {
	p := DefaultParams()

	return SecretSantaParams(authors, p.MaxTrials, p.MaxIter, opts...)
}

// SecretSantaParams is SecretSanta with explicit retry budgets.
func SecretSantaParams(authors []Author, maxTrials, maxIter int, opts ...Option) ([]Slot, error) {
	p := Params{
		NumWrites:  1,
		NumRegular: max(len(authors), 1),
		MaxTrials:  maxTrials,
		MaxIter:    maxIter,
	}

	// Dual-role mode: within the single block every author appears both
	// as giver and as recipient, which the regular engine forbids.
	g, err := newGenerator(authors, p, true, opts...)
	if err != nil {
		return nil, err
	}

	s, err := g.Generate()
	if err != nil {
		return nil, err
	}

	return s.Blocks[0].Slots, nil
}
