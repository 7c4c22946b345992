// Package roster turns a finished schedule into a day-ordered roster and
// serializes it. Day assignment is presentation only: block adjacency in
// the engine is defined by block index, never by day-within-block.
package roster

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/natefinch/atomic"

	schedule "github.com/Mythcell/ab-schedule"
)

// Days of the week in roster order.
var Days = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var errUnknownDay = errors.New("roster: unknown day")

// Options control the day layout. Queue posts are stacked on the first
// day of each block; beyond posts are stacked on the beyond day.
type Options struct {
	FirstDay  string
	BeyondDay string
}

// DefaultOptions starts each block on Sunday with beyond posts on Friday.
func DefaultOptions() Options {
	return Options{FirstDay: "Sunday", BeyondDay: "Friday"}
}

// Row is one roster line: a slot placed on a concrete day of its block.
// Block is 1-based in the output format.
type Row struct {
	Block  int
	Day    string
	Writer schedule.Author
	Editor schedule.Author
	Kind   schedule.Kind
}

func dayIndex(name string) (int, error) {
	for i, d := range Days {
		if strings.EqualFold(d, name) {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %s", errUnknownDay, name)
}

// Assign lays every block's slots out over the day cycle: queue posts on
// the first day, beyond posts dumped together on the beyond day, and
// regular posts drawn in random order over the remaining days. Blocks
// longer than a week wrap and stack.
func Assign(s *schedule.Schedule, opts Options, rng *rand.Rand) ([]Row, error) {
	firstDay, err := dayIndex(opts.FirstDay)
	if err != nil {
		return nil, err
	}

	beyondDay, err := dayIndex(opts.BeyondDay)
	if err != nil {
		return nil, err
	}

	var rows []Row

	for bi, b := range s.Blocks {
		rows = append(rows, assignBlock(bi, b, firstDay, beyondDay, rng)...)
	}

	return rows, nil
}

func assignBlock(bi int, b schedule.Block, firstDay, beyondDay int, rng *rand.Rand) []Row {
	var regular, queue, beyond []schedule.Slot

	for _, slot := range b.Slots {
		switch slot.Kind {
		case schedule.KindQueue:
			queue = append(queue, slot)
		case schedule.KindBeyond:
			beyond = append(beyond, slot)
		case schedule.KindRegular:
			regular = append(regular, slot)
		}
	}

	rows := make([]Row, 0, len(b.Slots))
	day := firstDay

	if len(queue) > 0 {
		for _, slot := range queue {
			rows = append(rows, Row{Block: bi + 1, Day: Days[day], Writer: slot.Writer, Editor: slot.Editor, Kind: slot.Kind})
		}

		day = (day + 1) % len(Days)
	}

	// Regular posts in random order, one per day, dumping the beyond
	// posts when their day comes around.
	pool := append([]schedule.Slot(nil), regular...)
	for len(pool) > 0 {
		if day == beyondDay && len(beyond) > 0 {
			for _, slot := range beyond {
				rows = append(rows, Row{Block: bi + 1, Day: Days[day], Writer: slot.Writer, Editor: slot.Editor, Kind: slot.Kind})
			}

			beyond = nil
			day = (day + 1) % len(Days)

			continue
		}

		pick := rng.Intn(len(pool))
		slot := pool[pick]
		pool = append(pool[:pick], pool[pick+1:]...)

		rows = append(rows, Row{Block: bi + 1, Day: Days[day], Writer: slot.Writer, Editor: slot.Editor, Kind: slot.Kind})
		day = (day + 1) % len(Days)
	}

	// A short block can run out of regular posts before the beyond day
	// comes around; place the leftovers on the beyond day anyway rather
	// than dropping them.
	for _, slot := range beyond {
		rows = append(rows, Row{Block: bi + 1, Day: Days[beyondDay], Writer: slot.Writer, Editor: slot.Editor, Kind: slot.Kind})
	}

	return rows
}

// WriteCSV writes rows atomically in the roster format:
// block,day,writer,editor,post_type. Regular rows leave post_type empty.
func WriteCSV(path string, rows []Row) error {
	var b strings.Builder

	for _, r := range rows {
		fmt.Fprintf(&b, "%d,%s,%s,%s,%s\n", r.Block, r.Day, r.Writer, r.Editor, r.Kind)
	}

	if err := atomic.WriteFile(path, strings.NewReader(b.String())); err != nil {
		return fmt.Errorf("roster: write %s: %w", path, err)
	}

	return nil
}

// ExportBlocks writes the bare block,writer,editor listing for manual
// inspection. Block indices are 0-based here, matching the block order in
// the schedule rather than the roster numbering.
func ExportBlocks(path string, s *schedule.Schedule) error {
	var b strings.Builder

	b.WriteString("#block,writer,editor\n")

	for bi, blk := range s.Blocks {
		for _, slot := range blk.Slots {
			fmt.Fprintf(&b, "%d,%s,%s\n", bi, slot.Writer, slot.Editor)
		}
	}

	if err := atomic.WriteFile(path, strings.NewReader(b.String())); err != nil {
		return fmt.Errorf("roster: write %s: %w", path, err)
	}

	return nil
}
