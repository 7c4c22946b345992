package cli

import (
	"io"
	"math/rand"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/Mythcell/ab-schedule/internal/authorlist"
	"github.com/Mythcell/ab-schedule/internal/termcolor"
)

func cmdAuthors(out io.Writer, errOut io.Writer, cfg Config, workDir string, args []string) int {
	if hasHelpFlag(args) {
		fprintln(out, "Usage: abs authors [options]")
		fprintln(out, "")
		fprintln(out, "List the configured author pool, or generate a random one.")
		fprintln(out, "")
		fprintln(out, "Options:")
		fprintln(out, "  -a, --authors     Author list file")
		fprintln(out, "  --random N        Generate N random author initials instead")
		fprintln(out, "  --initials L      Initials length for --random [default: 2]")
		fprintln(out, "  --seed N          Seed for reproducible --random output")
		fprintln(out, "  --save            Write the generated pool to the author file")

		return 0
	}

	flagSet := flag.NewFlagSet("authors", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	authorFile := flagSet.StringP("authors", "a", cfg.AuthorFile, "Author list file")
	random := flagSet.Int("random", 0, "Generate N random author initials")
	initials := flagSet.Int("initials", 2, "Initials length for --random")
	seed := flagSet.Int64("seed", 0, "Seed for reproducible --random output")
	save := flagSet.Bool("save", false, "Write the generated pool to the author file")

	if err := flagSet.Parse(args); err != nil {
		termcolor.Error(errOut, "%v", err)

		return 1
	}

	path := resolvePath(workDir, *authorFile)

	if !flagSet.Changed("random") {
		if *save {
			termcolor.Error(errOut, "%v", "--save only applies with --random")

			return 1
		}

		authors, err := authorlist.Load(path)
		if err != nil {
			termcolor.Error(errOut, "%v", err)

			return 1
		}

		for _, a := range authors {
			fprintln(out, string(a))
		}

		return 0
	}

	if *random < 1 {
		termcolor.Error(errOut, "%v", errRandomCountNeeded)

		return 1
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if flagSet.Changed("seed") {
		rng = rand.New(rand.NewSource(*seed))
	}

	authors, err := authorlist.Random(*random, *initials, rng)
	if err != nil {
		termcolor.Error(errOut, "%v", err)

		return 1
	}

	for _, a := range authors {
		fprintln(out, string(a))
	}

	if *save {
		if err := authorlist.Save(path, authors); err != nil {
			termcolor.Error(errOut, "%v", err)

			return 1
		}

		termcolor.Success(out, "authors written to %s", path)
	}

	return 0
}
