package cli

import (
	"errors"
	"io"
	"math/rand"
	"time"

	flag "github.com/spf13/pflag"

	schedule "github.com/Mythcell/ab-schedule"
	"github.com/Mythcell/ab-schedule/internal/authorlist"
	"github.com/Mythcell/ab-schedule/internal/roster"
	"github.com/Mythcell/ab-schedule/internal/termcolor"
)

// generateOptions holds parsed generate/export command options.
type generateOptions struct {
	authorFile string
	outPath    string
	blocksPath string
	params     schedule.Params
	seed       int64
	hasSeed    bool
	firstDay   string
	beyondDay  string
	noCSV      bool
	verbose    bool
}

func addEngineFlags(flagSet *flag.FlagSet, cfg Config) (*generateOptions, func()) {
	opts := &generateOptions{}

	authorFile := flagSet.StringP("authors", "a", cfg.AuthorFile, "Author list file")
	writes := flagSet.Int("writes", cfg.NumWrites, "Writes (and edits) per author")
	regular := flagSet.Int("regular", cfg.NumRegular, "Regular posts per block")
	queue := flagSet.Int("queue", cfg.NumQueue, "Queue posts per block")
	beyond := flagSet.Int("beyond", cfg.NumBeyond, "Beyond posts per block")
	trials := flagSet.Int("trials", cfg.MaxTrials, "Max schedule attempts")
	maxIter := flagSet.Int("max-iter", cfg.MaxIter, "Max iterations per attempt")
	seed := flagSet.Int64("seed", 0, "Seed the search for reproducible output")
	forbidCross := flagSet.Bool("forbid-cross-role", false, "Also forbid write->edit across adjacent blocks")
	verbose := flagSet.BoolP("verbose", "v", false, "Report each trial to stderr")

	finish := func() {
		opts.authorFile = *authorFile
		opts.params = schedule.Params{
			NumWrites:         *writes,
			NumRegular:        *regular,
			NumQueue:          *queue,
			NumBeyond:         *beyond,
			MaxTrials:         *trials,
			MaxIter:           *maxIter,
			NoCrossRoleRepeat: *forbidCross,
		}
		opts.seed = *seed
		opts.hasSeed = flagSet.Changed("seed")
		opts.verbose = *verbose
	}

	return opts, finish
}

func cmdGenerate(out io.Writer, errOut io.Writer, cfg Config, workDir string, args []string) int {
	if hasHelpFlag(args) {
		fprintln(out, "Usage: abs generate [options]")
		fprintln(out, "")
		fprintln(out, "Generate a schedule and write the day-ordered roster CSV.")
		fprintln(out, "Run 'abs --help' for the option list.")

		return 0
	}

	flagSet := flag.NewFlagSet("generate", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard) // We handle errors ourselves

	opts, finish := addEngineFlags(flagSet, cfg)
	outPath := flagSet.StringP("out", "o", cfg.OutputFile, "Roster CSV path")
	blocksPath := flagSet.String("export-blocks", "", "Also write a bare block,writer,editor CSV")
	firstDay := flagSet.String("first-day", cfg.FirstDay, "First day of each block")
	beyondDay := flagSet.String("beyond-day", cfg.BeyondDay, "Day for beyond posts")
	noCSV := flagSet.Bool("no-csv", false, "Skip the roster CSV, print a summary only")

	if err := flagSet.Parse(args); err != nil {
		termcolor.Error(errOut, "%v", err)

		return 1
	}

	finish()
	opts.outPath = *outPath
	opts.blocksPath = *blocksPath
	opts.firstDay = *firstDay
	opts.beyondDay = *beyondDay
	opts.noCSV = *noCSV

	gen, sched, code := runEngine(errOut, workDir, opts)
	if code != 0 {
		return code
	}

	if err := gen.AllocatePostTypes(sched); err != nil {
		termcolor.Error(errOut, "%v", err)
		fprintln(errOut, "Try lowering --queue and/or --beyond, or raising --writes.")

		return 1
	}

	if !opts.noCSV {
		rows, err := roster.Assign(sched, roster.Options{FirstDay: opts.firstDay, BeyondDay: opts.beyondDay}, rosterRand(opts))
		if err != nil {
			termcolor.Error(errOut, "%v", err)

			return 1
		}

		path := resolvePath(workDir, opts.outPath)
		if err := roster.WriteCSV(path, rows); err != nil {
			termcolor.Error(errOut, "%v", err)

			return 1
		}

		termcolor.Success(out, "schedule written to %s", path)
	}

	if opts.blocksPath != "" {
		path := resolvePath(workDir, opts.blocksPath)
		if err := roster.ExportBlocks(path, sched); err != nil {
			termcolor.Error(errOut, "%v", err)

			return 1
		}

		termcolor.Success(out, "blocks written to %s", path)
	}

	printSummary(out, gen, sched)

	return 0
}

func cmdExport(out io.Writer, errOut io.Writer, cfg Config, workDir string, args []string) int {
	if hasHelpFlag(args) {
		fprintln(out, "Usage: abs export [options]")
		fprintln(out, "")
		fprintln(out, "Generate a schedule and write only the bare blocks CSV.")

		return 0
	}

	flagSet := flag.NewFlagSet("export", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	opts, finish := addEngineFlags(flagSet, cfg)
	outPath := flagSet.StringP("out", "o", "blocks.csv", "Blocks CSV path")

	if err := flagSet.Parse(args); err != nil {
		termcolor.Error(errOut, "%v", err)

		return 1
	}

	finish()

	gen, sched, code := runEngine(errOut, workDir, opts)
	if code != 0 {
		return code
	}

	path := resolvePath(workDir, *outPath)
	if err := roster.ExportBlocks(path, sched); err != nil {
		termcolor.Error(errOut, "%v", err)

		return 1
	}

	termcolor.Success(out, "blocks written to %s", path)
	printSummary(out, gen, sched)

	return 0
}

// runEngine loads the author pool, builds the generator and runs the
// search. Returns a non-zero exit code on failure.
func runEngine(errOut io.Writer, workDir string, opts *generateOptions) (*schedule.Generator, *schedule.Schedule, int) {
	authors, err := authorlist.Load(resolvePath(workDir, opts.authorFile))
	if err != nil {
		termcolor.Error(errOut, "%v", err)

		return nil, nil, 1
	}

	genOpts := []schedule.Option{}
	if opts.hasSeed {
		genOpts = append(genOpts, schedule.WithSeed(opts.seed))
	}

	if opts.verbose {
		genOpts = append(genOpts, schedule.WithProgress(func(ev schedule.ProgressEvent) {
			if ev.Failed {
				fprintln(errOut, "trial", ev.Trial, "of", ev.Trials, "failed:", ev.Reason,
					"(iterations:", ev.Iterations, "rebuilds:", ev.Rebuilds, ")")
			} else {
				fprintln(errOut, "trial", ev.Trial, "of", ev.Trials, "succeeded after", ev.Iterations, "iterations")
			}
		}))
	}

	gen, err := schedule.New(authors, opts.params, genOpts...)
	if err != nil {
		termcolor.Error(errOut, "%v", err)

		return nil, nil, 1
	}

	for _, w := range gen.Warnings() {
		termcolor.Warn(errOut, "%s", w)
	}

	sched, err := gen.Generate()
	if err != nil {
		termcolor.Error(errOut, "%v", err)

		if errors.Is(err, schedule.ErrExhausted) {
			fprintln(errOut, "Exhausted all trials. Try again, raise --trials/--max-iter,")
			fprintln(errOut, "or loosen the parameters (smaller blocks, more authors).")
		}

		return nil, nil, 1
	}

	return gen, sched, 0
}

// rosterRand derives the day-assignment random source. Seeded runs keep
// the roster deterministic too; the offset keeps the stream distinct from
// the engine's.
func rosterRand(opts *generateOptions) *rand.Rand {
	if opts.hasSeed {
		return rand.New(rand.NewSource(opts.seed + 1))
	}

	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func printSummary(out io.Writer, gen *schedule.Generator, sched *schedule.Schedule) {
	full := 0
	for _, b := range sched.Blocks {
		if b.Full {
			full++
		}
	}

	fprintln(out, len(gen.Authors()), "authors,", len(sched.Blocks), "blocks",
		"(", full, "full ),", sched.NumSlots(), "slots")
}
