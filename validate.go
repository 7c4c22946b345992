package schedule

import "fmt"

// Validate re-checks a block sequence against the quota and adjacency
// rules: no self-edits, at most one slot per role per author per block, no
// same-role assignments in consecutive blocks, and exactly numWrites
// writes and edits per author. It is an independent double-check of what
// the orchestrator already guarantees, usable by callers and tests.
func Validate(authors []Author, blocks []Block, numWrites int) error {
	writes := make(map[Author]int, len(authors))
	edits := make(map[Author]int, len(authors))

	for _, a := range authors {
		writes[a] = 0
		edits[a] = 0
	}

	prevWriters := map[Author]bool{}
	prevEditors := map[Author]bool{}

	for bi, b := range blocks {
		curWriters := map[Author]bool{}
		curEditors := map[Author]bool{}

		for _, slot := range b.Slots {
			if slot.Writer == slot.Editor {
				return fmt.Errorf("%w: block %d: %s writes and edits the same post",
					ErrInvalidSchedule, bi, slot.Writer)
			}

			if curWriters[slot.Writer] {
				return fmt.Errorf("%w: block %d: %s writes twice", ErrInvalidSchedule, bi, slot.Writer)
			}

			if curEditors[slot.Editor] {
				return fmt.Errorf("%w: block %d: %s edits twice", ErrInvalidSchedule, bi, slot.Editor)
			}

			if prevWriters[slot.Writer] {
				return fmt.Errorf("%w: block %d: back-to-back write by %s", ErrInvalidSchedule, bi, slot.Writer)
			}

			if prevEditors[slot.Editor] {
				return fmt.Errorf("%w: block %d: back-to-back edit by %s", ErrInvalidSchedule, bi, slot.Editor)
			}

			if _, known := writes[slot.Writer]; !known {
				return fmt.Errorf("%w: block %d: unknown writer %s", ErrInvalidSchedule, bi, slot.Writer)
			}

			if _, known := edits[slot.Editor]; !known {
				return fmt.Errorf("%w: block %d: unknown editor %s", ErrInvalidSchedule, bi, slot.Editor)
			}

			writes[slot.Writer]++
			edits[slot.Editor]++
			curWriters[slot.Writer] = true
			curEditors[slot.Editor] = true
		}

		prevWriters = curWriters
		prevEditors = curEditors
	}

	for _, a := range authors {
		if writes[a] != numWrites {
			return fmt.Errorf("%w: %s writes %d times, want %d", ErrInvalidSchedule, a, writes[a], numWrites)
		}

		if edits[a] != numWrites {
			return fmt.Errorf("%w: %s edits %d times, want %d", ErrInvalidSchedule, a, edits[a], numWrites)
		}
	}

	return nil
}
