package roster_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	schedule "github.com/Mythcell/ab-schedule"
	"github.com/Mythcell/ab-schedule/internal/roster"
)

// testSchedule builds one full seven-slot block (1 queue, 1 beyond, 5
// regular) and one two-slot remainder block.
func testSchedule() *schedule.Schedule {
	full := schedule.Block{Full: true}

	pairs := [][2]schedule.Author{
		{"AB", "CD"}, {"EF", "GH"}, {"IJ", "KL"}, {"MN", "OP"},
		{"QR", "ST"}, {"UV", "WX"}, {"YZ", "BA"},
	}
	for i, p := range pairs {
		kind := schedule.KindRegular
		if i == 0 {
			kind = schedule.KindQueue
		} else if i == 1 {
			kind = schedule.KindBeyond
		}

		full.Slots = append(full.Slots, schedule.Slot{Writer: p[0], Editor: p[1], Kind: kind})
	}

	remainder := schedule.Block{
		Slots: []schedule.Slot{
			{Writer: "CD", Editor: "AB"},
			{Writer: "GH", Editor: "EF"},
		},
	}

	return &schedule.Schedule{
		Blocks: []schedule.Block{full, remainder},
		Queue:  [][]schedule.Slot{{full.Slots[0]}, nil},
		Beyond: [][]schedule.Slot{{full.Slots[1]}, nil},
	}
}

func TestAssignPlacesKindsOnTheirDays(t *testing.T) {
	t.Parallel()

	rows, err := roster.Assign(testSchedule(), roster.DefaultOptions(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Assign() error: %v", err)
	}

	// Every slot gets exactly one row.
	if len(rows) != 9 {
		t.Fatalf("got %d rows, want 9", len(rows))
	}

	days := map[string]bool{}
	for _, d := range roster.Days {
		days[d] = true
	}

	for _, r := range rows {
		if !days[r.Day] {
			t.Errorf("row has unknown day %q", r.Day)
		}

		switch r.Kind {
		case schedule.KindQueue:
			if r.Day != "Sunday" {
				t.Errorf("queue post on %s, want Sunday", r.Day)
			}
		case schedule.KindBeyond:
			if r.Day != "Friday" {
				t.Errorf("beyond post on %s, want Friday", r.Day)
			}
		case schedule.KindRegular:
			// Regular posts may land anywhere in the cycle.
		}
	}

	// Blocks are numbered from 1 in roster output.
	if rows[0].Block != 1 {
		t.Errorf("first row block = %d, want 1", rows[0].Block)
	}

	if rows[len(rows)-1].Block != 2 {
		t.Errorf("last row block = %d, want 2", rows[len(rows)-1].Block)
	}
}

func TestAssignPreservesPairs(t *testing.T) {
	t.Parallel()

	s := testSchedule()

	rows, err := roster.Assign(s, roster.DefaultOptions(), rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("Assign() error: %v", err)
	}

	want := map[[2]schedule.Author]int{}
	for _, b := range s.Blocks {
		for _, slot := range b.Slots {
			want[[2]schedule.Author{slot.Writer, slot.Editor}]++
		}
	}

	got := map[[2]schedule.Author]int{}
	for _, r := range rows {
		got[[2]schedule.Author{r.Writer, r.Editor}]++
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pairs changed by day assignment (-want +got):\n%s", diff)
	}
}

func TestAssignCustomDaysAndUnknownDay(t *testing.T) {
	t.Parallel()

	s := testSchedule()

	rows, err := roster.Assign(s, roster.Options{FirstDay: "Monday", BeyondDay: "Wednesday"}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Assign() error: %v", err)
	}

	for _, r := range rows {
		if r.Kind == schedule.KindQueue && r.Day != "Monday" {
			t.Errorf("queue post on %s, want Monday", r.Day)
		}

		if r.Kind == schedule.KindBeyond && r.Day != "Wednesday" {
			t.Errorf("beyond post on %s, want Wednesday", r.Day)
		}
	}

	if _, err := roster.Assign(s, roster.Options{FirstDay: "Someday", BeyondDay: "Friday"}, rand.New(rand.NewSource(1))); err == nil {
		t.Error("unknown first day should be rejected")
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "schedule.csv")

	rows := []roster.Row{
		{Block: 1, Day: "Sunday", Writer: "AB", Editor: "CD", Kind: schedule.KindQueue},
		{Block: 1, Day: "Monday", Writer: "EF", Editor: "GH", Kind: schedule.KindRegular},
		{Block: 1, Day: "Friday", Writer: "IJ", Editor: "KL", Kind: schedule.KindBeyond},
	}

	if err := roster.WriteCSV(path, rows); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	want := strings.Join([]string{
		"1,Sunday,AB,CD,queue",
		"1,Monday,EF,GH,",
		"1,Friday,IJ,KL,beyond",
		"",
	}, "\n")

	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestExportBlocks(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "blocks.csv")

	if err := roster.ExportBlocks(path, testSchedule()); err != nil {
		t.Fatalf("ExportBlocks() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if lines[0] != "#block,writer,editor" {
		t.Errorf("header = %q", lines[0])
	}

	if len(lines) != 1+9 {
		t.Errorf("got %d lines, want 10", len(lines))
	}

	if lines[1] != "0,AB,CD" {
		t.Errorf("first data line = %q, want 0,AB,CD", lines[1])
	}
}
