// Package authorlist loads and saves author pools for the scheduler.
//
// The on-disk format is one author initial per line. Blank lines and lines
// starting with '#' are skipped, so pool files can carry comments.
package authorlist

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	schedule "github.com/Mythcell/ab-schedule"
)

var (
	errEmptyFile       = errors.New("authorlist: no authors in file")
	errDuplicateAuthor = errors.New("authorlist: duplicate author")
	errBadRandomArgs   = errors.New("authorlist: invalid random pool arguments")
)

// Load reads an author pool file. Order is preserved: it is the engine's
// tie-breaking order, so a stable file gives reproducible seeded runs.
func Load(path string) ([]schedule.Author, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("authorlist: read %s: %w", path, err)
	}

	authors, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}

	return authors, nil
}

// Parse extracts authors from the file format. Duplicates are an error:
// the quota model assumes each author appears once in the pool.
func Parse(content string) ([]schedule.Author, error) {
	var authors []schedule.Author

	seen := map[schedule.Author]bool{}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		a := schedule.Author(line)
		if seen[a] {
			return nil, fmt.Errorf("%w: %s", errDuplicateAuthor, a)
		}

		seen[a] = true
		authors = append(authors, a)
	}

	if len(authors) == 0 {
		return nil, errEmptyFile
	}

	return authors, nil
}

// Save writes the pool atomically, one author per line.
func Save(path string, authors []schedule.Author) error {
	var b strings.Builder
	for _, a := range authors {
		b.WriteString(string(a))
		b.WriteByte('\n')
	}

	if err := atomic.WriteFile(path, strings.NewReader(b.String())); err != nil {
		return fmt.Errorf("authorlist: write %s: %w", path, err)
	}

	return nil
}

// Random generates n unique random initials of the given length, for
// trying out schedule parameters without a real author list.
func Random(n, length int, rng *rand.Rand) ([]schedule.Author, error) {
	const alphabet = 26

	if n < 1 || length < 1 || length > alphabet {
		return nil, errBadRandomArgs
	}

	// With initials drawn without letter repetition there are
	// 26*25*...*(26-length+1) possible values; refuse requests that could
	// never terminate.
	possible := 1
	for i := 0; i < length; i++ {
		possible *= alphabet - i
		if possible >= n {
			break
		}
	}

	if possible < n {
		return nil, fmt.Errorf("%w: %d initials of length %d cannot be unique", errBadRandomArgs, n, length)
	}

	seen := map[schedule.Author]bool{}
	authors := make([]schedule.Author, 0, n)

	for len(authors) < n {
		perm := rng.Perm(alphabet)

		letters := make([]byte, length)
		for i := 0; i < length; i++ {
			letters[i] = byte('A' + perm[i])
		}

		a := schedule.Author(letters)
		if !seen[a] {
			seen[a] = true
			authors = append(authors, a)
		}
	}

	return authors, nil
}
