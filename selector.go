package schedule

import "math/rand"

// partialBlock tracks which authors already hold a role in the block under
// construction.
type partialBlock struct {
	slots   []Slot
	writers map[Author]bool
	editors map[Author]bool
}

func newPartialBlock(length int) *partialBlock {
	return &partialBlock{
		slots:   make([]Slot, 0, length),
		writers: make(map[Author]bool, length),
		editors: make(map[Author]bool, length),
	}
}

func (b *partialBlock) add(s Slot) {
	b.slots = append(b.slots, s)
	b.writers[s.Writer] = true
	b.editors[s.Editor] = true
}

// selector proposes a single writer/editor pair satisfying the local
// constraints. It is the innermost randomized choice primitive: one draw
// per role, no backtracking. A failed draw is reported upward for the
// block builder to retry fresh.
type selector struct {
	authors []Author // stable order, so a fixed seed gives a fixed draw sequence
	quota   *quotaTracker
	rng     *rand.Rand

	// dualRole permits one author to write and edit within the same block
	// (distinct slots). Off for regular schedules, on for secret santa.
	dualRole bool

	// noCrossRoleRepeat extends the adjacency rule across roles: a writer
	// in block i may not edit in block i+1, and vice versa.
	noCrossRoleRepeat bool

	scratch []Author // candidate buffer reused across draws
}

// propose draws a writer then an editor uniformly at random from the
// authors that can still take the role in this block. Returns false if
// either candidate set is empty.
func (s *selector) propose(blk *partialBlock, blockIdx int) (Slot, bool) {
	writer, ok := s.draw(func(a Author) bool { return s.writerOK(a, blk, blockIdx) })
	if !ok {
		return Slot{}, false
	}

	editor, ok := s.draw(func(a Author) bool { return a != writer && s.editorOK(a, blk, blockIdx) })
	if !ok {
		return Slot{}, false
	}

	return Slot{Writer: writer, Editor: editor, Kind: KindRegular}, true
}

func (s *selector) writerOK(a Author, blk *partialBlock, blockIdx int) bool {
	if !s.quota.canWrite(a, blockIdx) || blk.writers[a] {
		return false
	}

	if !s.dualRole && blk.editors[a] {
		return false
	}

	if s.noCrossRoleRepeat && adjacent(s.quota.lastEdited(a), blockIdx) {
		return false
	}

	return true
}

func (s *selector) editorOK(a Author, blk *partialBlock, blockIdx int) bool {
	if !s.quota.canEdit(a, blockIdx) || blk.editors[a] {
		return false
	}

	if !s.dualRole && blk.writers[a] {
		return false
	}

	if s.noCrossRoleRepeat && adjacent(s.quota.lastWrote(a), blockIdx) {
		return false
	}

	return true
}

// draw picks uniformly from the authors passing the filter.
func (s *selector) draw(ok func(Author) bool) (Author, bool) {
	s.scratch = s.scratch[:0]
	for _, a := range s.authors {
		if ok(a) {
			s.scratch = append(s.scratch, a)
		}
	}

	if len(s.scratch) == 0 {
		return "", false
	}

	return s.scratch[s.rng.Intn(len(s.scratch))], true
}
