package authorlist_test

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	schedule "github.com/Mythcell/ab-schedule"
	"github.com/Mythcell/ab-schedule/internal/authorlist"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []schedule.Author
		wantErr bool
	}{
		{
			name:    "plain initials",
			content: "AB\nCD\nEF\n",
			want:    []schedule.Author{"AB", "CD", "EF"},
		},
		{
			name:    "comments and blanks skipped",
			content: "# roster pool\n\nAB\n\n  CD  \n# trailing\nEF",
			want:    []schedule.Author{"AB", "CD", "EF"},
		},
		{
			name:    "empty file",
			content: "\n# only a comment\n",
			wantErr: true,
		},
		{
			name:    "duplicate author",
			content: "AB\nCD\nAB\n",
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := authorlist.Parse(testCase.content)
			if testCase.wantErr {
				if err == nil {
					t.Fatal("Parse() succeeded, want error")
				}

				return
			}

			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}

			if diff := cmp.Diff(testCase.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "authors.txt")
	authors := []schedule.Author{"AB", "CD", "EF", "GH"}

	if err := authorlist.Save(path, authors); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := authorlist.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if diff := cmp.Diff(authors, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := authorlist.Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("Load() succeeded on missing file")
	}
}

func TestRandomGeneratesUniqueInitials(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))

	authors, err := authorlist.Random(40, 2, rng)
	if err != nil {
		t.Fatalf("Random() error: %v", err)
	}

	if len(authors) != 40 {
		t.Fatalf("got %d authors, want 40", len(authors))
	}

	seen := map[schedule.Author]bool{}
	for _, a := range authors {
		if len(a) != 2 {
			t.Errorf("initial %q has length %d, want 2", a, len(a))
		}

		if a[0] == a[1] {
			t.Errorf("initial %q repeats a letter", a)
		}

		if seen[a] {
			t.Errorf("duplicate initial %q", a)
		}

		seen[a] = true
	}
}

func TestRandomRejectsImpossibleRequests(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))

	if _, err := authorlist.Random(0, 2, rng); err == nil {
		t.Error("n=0 should be rejected")
	}

	if _, err := authorlist.Random(27, 1, rng); err == nil {
		t.Error("27 single letters cannot be unique")
	}

	if _, err := authorlist.Random(1, 30, rng); err == nil {
		t.Error("initials longer than the alphabet should be rejected")
	}
}
