package schedule

import (
	"math/rand"
	"testing"
)

func newTestBuilder(authors []Author, target int, maxIter int, seed int64) (*blockBuilder, *quotaTracker) {
	q := newQuotaTracker(authors, target)
	bb := &blockBuilder{
		sel: &selector{
			authors: authors,
			quota:   q,
			rng:     rand.New(rand.NewSource(seed)),
		},
		quota:  q,
		budget: &iterBudget{max: maxIter},
	}

	return bb, q
}

func TestBlockBuilderFillsTargetLength(t *testing.T) {
	t.Parallel()

	authors := []Author{"AB", "CD", "EF", "GH", "IJ", "KL", "MN", "OP"}
	bb, quota := newTestBuilder(authors, 1, 10000, 42)

	slots, ok := bb.build(0, 4)
	if !ok {
		t.Fatal("build failed within a generous budget")
	}

	if len(slots) != 4 {
		t.Fatalf("built %d slots, want 4", len(slots))
	}

	seen := map[Author]bool{}
	for _, s := range slots {
		if s.Writer == s.Editor {
			t.Fatalf("self-pairing in block: %v", s)
		}

		if seen[s.Writer] || seen[s.Editor] {
			t.Fatalf("author holds two roles in one block: %v", s)
		}

		seen[s.Writer] = true
		seen[s.Editor] = true
	}

	// Each success was committed to the shared tracker.
	if got := len(quota.journal); got != 4 {
		t.Errorf("journal length = %d, want 4", got)
	}

	for _, s := range slots {
		if quota.counts[s.Writer].writes != 1 || quota.counts[s.Editor].edits != 1 {
			t.Errorf("commit missing for slot %v", s)
		}
	}
}

func TestBlockBuilderRollsBackOnBudgetExhaustion(t *testing.T) {
	t.Parallel()

	// Four authors cannot fill a block of three disjoint pairs, so the
	// builder has to burn its whole budget and give up.
	authors := []Author{"AB", "CD", "EF", "GH"}
	bb, quota := newTestBuilder(authors, 1, 200, 42)

	if _, ok := bb.build(0, 3); ok {
		t.Fatal("build should be impossible with four authors and three slots")
	}

	if got := len(quota.journal); got != 0 {
		t.Errorf("commits not rolled back: journal length = %d", got)
	}

	for _, a := range authors {
		if c := quota.counts[a]; c.writes != 0 || c.edits != 0 {
			t.Errorf("counts not rolled back for %s", a)
		}
	}

	if bb.budget.used <= 200 {
		t.Errorf("budget not consumed: used = %d", bb.budget.used)
	}
}

func TestBlockBuilderRemainderBlockShorterThanStandard(t *testing.T) {
	t.Parallel()

	authors := []Author{"AB", "CD", "EF", "GH", "IJ", "KL"}
	bb, _ := newTestBuilder(authors, 1, 10000, 9)

	slots, ok := bb.build(0, 2)
	if !ok {
		t.Fatal("build failed within a generous budget")
	}

	if len(slots) != 2 {
		t.Fatalf("remainder block length = %d, want 2", len(slots))
	}
}
