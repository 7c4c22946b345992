package cli

import (
	"io"

	flag "github.com/spf13/pflag"

	schedule "github.com/Mythcell/ab-schedule"
	"github.com/Mythcell/ab-schedule/internal/authorlist"
	"github.com/Mythcell/ab-schedule/internal/termcolor"
)

func cmdSanta(out io.Writer, errOut io.Writer, cfg Config, workDir string, args []string) int {
	if hasHelpFlag(args) {
		fprintln(out, "Usage: abs santa [options]")
		fprintln(out, "")
		fprintln(out, "Pair every author with a distinct recipient (a derangement),")
		fprintln(out, "printing one 'giver -> recipient' line per author.")
		fprintln(out, "")
		fprintln(out, "Options:")
		fprintln(out, "  -a, --authors     Author list file")
		fprintln(out, "  --seed N          Seed for reproducible pairing")
		fprintln(out, "  --trials N        Max attempts")
		fprintln(out, "  --max-iter N      Max iterations per attempt")

		return 0
	}

	flagSet := flag.NewFlagSet("santa", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	authorFile := flagSet.StringP("authors", "a", cfg.AuthorFile, "Author list file")
	seed := flagSet.Int64("seed", 0, "Seed for reproducible pairing")
	trials := flagSet.Int("trials", cfg.MaxTrials, "Max attempts")
	maxIter := flagSet.Int("max-iter", cfg.MaxIter, "Max iterations per attempt")

	if err := flagSet.Parse(args); err != nil {
		termcolor.Error(errOut, "%v", err)

		return 1
	}

	authors, err := authorlist.Load(resolvePath(workDir, *authorFile))
	if err != nil {
		termcolor.Error(errOut, "%v", err)

		return 1
	}

	var opts []schedule.Option
	if flagSet.Changed("seed") {
		opts = append(opts, schedule.WithSeed(*seed))
	}

	pairs, err := schedule.SecretSantaParams(authors, *trials, *maxIter, opts...)
	if err != nil {
		termcolor.Error(errOut, "%v", err)

		return 1
	}

	for _, p := range pairs {
		fprintln(out, string(p.Writer), "->", string(p.Editor))
	}

	return 0
}
