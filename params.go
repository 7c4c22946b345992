package schedule

import "fmt"

// Params control the shape of the schedule and the search budgets.
//
// NumWrites is the exact number of times each author must write (and,
// symmetrically, edit). NumRegular, NumQueue and NumBeyond set the makeup
// of a full block; the standard block length is their sum.
//
// MaxIter bounds the work inside a single attempt and MaxTrials bounds the
// number of attempts. Both must be tunable downward for tests: a
// pathological combination can otherwise search for a very long time.
type Params struct {
	NumWrites  int
	NumRegular int
	NumQueue   int
	NumBeyond  int

	MaxTrials int
	MaxIter   int

	// NoCrossRoleRepeat additionally forbids an author from editing in the
	// block immediately after one they wrote in, and vice versa. Off by
	// default: enabling it is known to blow up generation times.
	NoCrossRoleRepeat bool
}

// DefaultParams returns the stock parameters: three writes and edits per
// author, seven-slot blocks (five regular, one queue, one beyond), and
// generous search budgets.
func DefaultParams() Params {
	return Params{
		NumWrites:  3,
		NumRegular: 5,
		NumQueue:   1,
		NumBeyond:  1,
		MaxTrials:  1000,
		MaxIter:    200000,
	}
}

// BlockSize returns the standard (full) block length.
func (p Params) BlockSize() int {
	return p.NumRegular + p.NumQueue + p.NumBeyond
}

// validate rejects parameter combinations that cannot produce a valid
// schedule, so the caller learns about them before burning the trial
// budget. dualRole relaxes the pool-size floor for secret-santa mode,
// where one author may hold both roles within the single block.
func (p Params) validate(numAuthors int, dualRole bool) error {
	switch {
	case numAuthors == 0:
		return fmt.Errorf("%w: author pool is empty", ErrInvalidParams)
	case p.NumWrites < 1:
		return fmt.Errorf("%w: NumWrites must be at least 1, got %d", ErrInvalidParams, p.NumWrites)
	case p.NumRegular < 1:
		return fmt.Errorf("%w: NumRegular must be at least 1, got %d", ErrInvalidParams, p.NumRegular)
	case p.NumQueue < 0 || p.NumBeyond < 0:
		return fmt.Errorf("%w: NumQueue and NumBeyond must be non-negative", ErrInvalidParams)
	case p.MaxTrials < 1:
		return fmt.Errorf("%w: MaxTrials must be at least 1, got %d", ErrInvalidParams, p.MaxTrials)
	case p.MaxIter < 1:
		return fmt.Errorf("%w: MaxIter must be at least 1, got %d", ErrInvalidParams, p.MaxIter)
	case p.NumWrites < p.NumQueue+p.NumBeyond:
		// Some author would end up writing only queue/beyond posts.
		return fmt.Errorf("%w: NumWrites (%d) is less than NumQueue+NumBeyond (%d)",
			ErrInvalidParams, p.NumWrites, p.NumQueue+p.NumBeyond)
	}

	// When the entire quota fits inside a single block, every author must
	// write and edit within that one block, which the same-block role
	// restriction forbids. No amount of searching can satisfy such a pool.
	if !dualRole && numAuthors*p.NumWrites < p.BlockSize() {
		return fmt.Errorf("%w: %d authors with %d writes fill only %d slots of a %d-slot block; every author would need both roles in the same block",
			ErrInvalidParams, numAuthors, p.NumWrites, numAuthors*p.NumWrites, p.BlockSize())
	}

	// A full block needs enough authors to fill it. With dual roles
	// forbidden the writer and editor sets must be disjoint, so a block of
	// length L needs 2L distinct authors; with dual roles allowed it needs
	// L authors plus one spare pairing (writer != editor needs at least 2).
	if numAuthors*p.NumWrites >= p.BlockSize() {
		minPool := 2 * p.BlockSize()
		if dualRole {
			minPool = max(p.BlockSize(), 2)
		}

		if numAuthors < minPool {
			return fmt.Errorf("%w: %d authors cannot fill a block of %d slots (need at least %d)",
				ErrInvalidParams, numAuthors, p.BlockSize(), minPool)
		}
	}

	return nil
}

// blockSizes returns the target length of every block in order: full blocks
// at the standard length, then one trailing remainder block holding
// whatever quota is left.
func (p Params) blockSizes(numAuthors int) []int {
	numPosts := numAuthors * p.NumWrites
	size := p.BlockSize()

	sizes := make([]int, 0, numPosts/size+1)
	for remaining := numPosts; remaining > 0; remaining -= size {
		sizes = append(sizes, min(size, remaining))
	}

	return sizes
}
