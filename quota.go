package schedule

// noBlock is the adjacency sentinel for "never assigned".
const noBlock = -1

// adjacent reports whether last is the block immediately before blockIdx.
// noBlock is never adjacent: an author with no history is unrestricted,
// including in block 0 where blockIdx-1 equals the sentinel.
func adjacent(last, blockIdx int) bool {
	return last != noBlock && last == blockIdx-1
}

// authorQuota holds one author's running totals and adjacency history.
type authorQuota struct {
	writes    int
	edits     int
	lastWrite int // block index of most recent write, noBlock if none
	lastEdit  int // block index of most recent edit, noBlock if none
}

// quotaTracker is the shared per-attempt quota state. It is a pure state
// container: no randomness, no search logic. Commits are journaled so the
// block builder can undo a partially built block wholesale.
type quotaTracker struct {
	target  int // writes (and edits) each author must reach
	authors []Author
	counts  map[Author]*authorQuota
	journal []journalEntry
}

// journalEntry records what a single commit changed, so rollbackTo can
// restore the exact prior adjacency history.
type journalEntry struct {
	slot           Slot
	prevWriterLast int
	prevEditorLast int
}

func newQuotaTracker(authors []Author, target int) *quotaTracker {
	q := &quotaTracker{
		target:  target,
		authors: authors,
		counts:  make(map[Author]*authorQuota, len(authors)),
	}
	q.reset()

	return q
}

// reset clears all counters and history for a fresh attempt.
func (q *quotaTracker) reset() {
	for _, a := range q.authors {
		q.counts[a] = &authorQuota{lastWrite: noBlock, lastEdit: noBlock}
	}

	q.journal = q.journal[:0]
}

// canWrite reports whether the author still needs writes and did not write
// in the immediately preceding block.
func (q *quotaTracker) canWrite(a Author, blockIdx int) bool {
	c := q.counts[a]

	return c.writes < q.target && !adjacent(c.lastWrite, blockIdx)
}

// canEdit reports whether the author still needs edits and did not edit in
// the immediately preceding block.
func (q *quotaTracker) canEdit(a Author, blockIdx int) bool {
	c := q.counts[a]

	return c.edits < q.target && !adjacent(c.lastEdit, blockIdx)
}

// lastWrote returns the block index of the author's most recent write.
func (q *quotaTracker) lastWrote(a Author) int { return q.counts[a].lastWrite }

// lastEdited returns the block index of the author's most recent edit.
func (q *quotaTracker) lastEdited(a Author) int { return q.counts[a].lastEdit }

// commit records a slot assignment in block blockIdx. It never fails;
// feasibility is the caller's concern.
func (q *quotaTracker) commit(s Slot, blockIdx int) {
	w, e := q.counts[s.Writer], q.counts[s.Editor]

	q.journal = append(q.journal, journalEntry{
		slot:           s,
		prevWriterLast: w.lastWrite,
		prevEditorLast: e.lastEdit,
	})

	w.writes++
	w.lastWrite = blockIdx
	e.edits++
	e.lastEdit = blockIdx
}

// mark returns a journal position for a later rollbackTo.
func (q *quotaTracker) mark() int { return len(q.journal) }

// rollbackTo undoes every commit made since mark, newest first.
func (q *quotaTracker) rollbackTo(mark int) {
	for i := len(q.journal) - 1; i >= mark; i-- {
		entry := q.journal[i]
		w, e := q.counts[entry.slot.Writer], q.counts[entry.slot.Editor]

		w.writes--
		w.lastWrite = entry.prevWriterLast
		e.edits--
		e.lastEdit = entry.prevEditorLast
	}

	q.journal = q.journal[:mark]
}

// feasible reports whether the remaining quota can still fit in the
// unbuilt blocks: no author may need a role more times than there are
// blocks left (each role is held at most once per block), and enough
// distinct authors must still need each role to fill the next block.
func (q *quotaTracker) feasible(blocksLeft, nextLen int) bool {
	writersLeft, editorsLeft := 0, 0
	for _, c := range q.counts {
		if q.target-c.writes > blocksLeft || q.target-c.edits > blocksLeft {
			return false
		}

		if c.writes < q.target {
			writersLeft++
		}

		if c.edits < q.target {
			editorsLeft++
		}
	}

	return writersLeft >= nextLen && editorsLeft >= nextLen
}

// satisfied reports whether every author has hit the target exactly.
func (q *quotaTracker) satisfied() bool {
	for _, c := range q.counts {
		if c.writes != q.target || c.edits != q.target {
			return false
		}
	}

	return true
}
