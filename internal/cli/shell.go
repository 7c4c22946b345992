package cli

import (
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"

	schedule "github.com/Mythcell/ab-schedule"
	"github.com/Mythcell/ab-schedule/internal/authorlist"
	"github.com/Mythcell/ab-schedule/internal/roster"
	"github.com/Mythcell/ab-schedule/internal/termcolor"
)

// shellCommands is the completion vocabulary.
var shellCommands = []string{
	"help", "authors", "add", "rm", "random", "set", "show",
	"gen", "santa", "save", "write", "export", "quit", "exit",
}

// shell is the interactive session state.
type shell struct {
	out     io.Writer
	errOut  io.Writer
	workDir string
	cfg     Config

	authors []schedule.Author
	params  schedule.Params
	sched   *schedule.Schedule
	gen     *schedule.Generator
	liner   *liner.State
}

func cmdShell(_ io.Reader, out io.Writer, errOut io.Writer, cfg Config, workDir string, args []string) int {
	if hasHelpFlag(args) || len(args) > 0 {
		fprintln(out, "Usage: abs shell")
		fprintln(out, "")
		fprintln(out, "Interactive session for editing the author pool, tuning")
		fprintln(out, "parameters and generating schedules. Type 'help' inside.")

		return 0
	}

	sh := &shell{
		out:     out,
		errOut:  errOut,
		workDir: workDir,
		cfg:     cfg,
		params:  cfg.Params(),
	}

	// A missing author file is fine here: the pool can be built in-shell.
	if authors, err := authorlist.Load(resolvePath(workDir, cfg.AuthorFile)); err == nil {
		sh.authors = authors
	}

	if err := sh.run(); err != nil {
		termcolor.Error(errOut, "%v", err)

		return 1
	}

	return 0
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".abs_history")
}

func (sh *shell) run() error {
	sh.liner = liner.NewLiner()
	defer sh.liner.Close()

	sh.liner.SetCtrlCAborts(true)
	sh.liner.SetCompleter(func(line string) []string {
		var matches []string

		for _, c := range shellCommands {
			if strings.HasPrefix(c, strings.ToLower(line)) {
				matches = append(matches, c)
			}
		}

		return matches
	})

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = sh.liner.ReadHistory(f)
		f.Close()
	}

	fprintln(sh.out, "abs -", len(sh.authors), "authors loaded. Type 'help' for commands.")

	for {
		line, err := sh.liner.Prompt("abs> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				sh.saveHistory()

				return nil
			}

			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		sh.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		if cmd == "quit" || cmd == "exit" || cmd == "q" {
			sh.saveHistory()

			return nil
		}

		sh.dispatch(cmd, args)
	}
}

func (sh *shell) saveHistory() {
	path := historyFile()
	if path == "" {
		return
	}

	if f, err := os.Create(path); err == nil {
		_, _ = sh.liner.WriteHistory(f)
		f.Close()
	}
}

func (sh *shell) dispatch(cmd string, args []string) {
	switch cmd {
	case "help", "?":
		sh.printHelp()
	case "authors", "ls":
		sh.cmdAuthors()
	case "add":
		sh.cmdAdd(args)
	case "rm":
		sh.cmdRm(args)
	case "random":
		sh.cmdRandom(args)
	case "set":
		sh.cmdSet(args)
	case "show":
		sh.cmdShow()
	case "gen", "generate":
		sh.cmdGen(args)
	case "santa":
		sh.cmdSanta(args)
	case "save":
		sh.cmdSave(args)
	case "write":
		sh.cmdWrite(args)
	case "export":
		sh.cmdExport(args)
	default:
		fprintln(sh.errOut, "unknown command:", cmd, "(type 'help' for commands)")
	}
}

func (sh *shell) printHelp() {
	fprintln(sh.out, `Commands:
  authors                List the author pool
  add <initials>...      Add authors to the pool
  rm <initials>...       Remove authors from the pool
  random <n> [len]       Replace the pool with n random initials
  set <param> <n>        Set writes|regular|queue|beyond|trials|iters
  show                   Show current parameters
  gen [seed]             Generate a schedule (and allocate post types)
  santa [seed]           One-round secret-santa pairing
  save [file]            Save the author pool
  write [file]           Write the roster CSV for the last schedule
  export [file]          Write the bare blocks CSV for the last schedule
  quit                   Leave the shell`)
}

func (sh *shell) cmdAuthors() {
	if len(sh.authors) == 0 {
		fprintln(sh.out, "(no authors)")

		return
	}

	for _, a := range sh.authors {
		fprintln(sh.out, string(a))
	}
}

func (sh *shell) cmdAdd(args []string) {
	for _, arg := range args {
		a := schedule.Author(arg)

		dup := false

		for _, existing := range sh.authors {
			if existing == a {
				dup = true

				break
			}
		}

		if dup {
			fprintln(sh.errOut, "already in pool:", arg)

			continue
		}

		sh.authors = append(sh.authors, a)
	}

	fprintln(sh.out, len(sh.authors), "authors")
}

func (sh *shell) cmdRm(args []string) {
	for _, arg := range args {
		a := schedule.Author(arg)
		kept := sh.authors[:0]
		found := false

		for _, existing := range sh.authors {
			if existing == a {
				found = true

				continue
			}

			kept = append(kept, existing)
		}

		sh.authors = kept
		if !found {
			fprintln(sh.errOut, "not in pool:", arg)
		}
	}

	fprintln(sh.out, len(sh.authors), "authors")
}

func (sh *shell) cmdRandom(args []string) {
	if len(args) < 1 {
		fprintln(sh.errOut, "usage: random <n> [len]")

		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		fprintln(sh.errOut, "not a number:", args[0])

		return
	}

	length := 2

	if len(args) > 1 {
		length, err = strconv.Atoi(args[1])
		if err != nil {
			fprintln(sh.errOut, "not a number:", args[1])

			return
		}
	}

	authors, err := authorlist.Random(n, length, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		fprintln(sh.errOut, "error:", err)

		return
	}

	sh.authors = authors
	fprintln(sh.out, len(sh.authors), "random authors")
}

func (sh *shell) cmdSet(args []string) {
	if len(args) != 2 {
		fprintln(sh.errOut, "usage: set <param> <n>")

		return
	}

	n, err := strconv.Atoi(args[1])
	if err != nil {
		fprintln(sh.errOut, "not a number:", args[1])

		return
	}

	switch strings.ToLower(args[0]) {
	case "writes":
		sh.params.NumWrites = n
	case "regular":
		sh.params.NumRegular = n
	case "queue":
		sh.params.NumQueue = n
	case "beyond":
		sh.params.NumBeyond = n
	case "trials":
		sh.params.MaxTrials = n
	case "iters":
		sh.params.MaxIter = n
	default:
		fprintln(sh.errOut, "unknown parameter:", args[0])

		return
	}

	sh.cmdShow()
}

func (sh *shell) cmdShow() {
	fprintln(sh.out, "writes:", sh.params.NumWrites,
		"regular:", sh.params.NumRegular,
		"queue:", sh.params.NumQueue,
		"beyond:", sh.params.NumBeyond,
		"trials:", sh.params.MaxTrials,
		"iters:", sh.params.MaxIter)
}

// parseSeed reads an optional positional seed argument.
func parseSeed(args []string) ([]schedule.Option, bool) {
	if len(args) == 0 {
		return nil, true
	}

	seed, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return nil, false
	}

	return []schedule.Option{schedule.WithSeed(seed)}, true
}

func (sh *shell) cmdGen(args []string) {
	opts, ok := parseSeed(args)
	if !ok {
		fprintln(sh.errOut, "not a seed:", args[0])

		return
	}

	gen, err := schedule.New(sh.authors, sh.params, opts...)
	if err != nil {
		fprintln(sh.errOut, "error:", err)

		return
	}

	for _, w := range gen.Warnings() {
		termcolor.Warn(sh.errOut, "%s", w)
	}

	sched, err := gen.Generate()
	if err != nil {
		fprintln(sh.errOut, "error:", err)

		return
	}

	if err := gen.AllocatePostTypes(sched); err != nil {
		fprintln(sh.errOut, "error:", err)

		return
	}

	sh.gen = gen
	sh.sched = sched

	printSummary(sh.out, gen, sched)

	for bi, b := range sched.Blocks {
		fprintln(sh.out, "block", bi, ":")

		for _, slot := range b.Slots {
			label := slot.Kind.String()
			if label != "" {
				label = " [" + label + "]"
			}

			fprintln(sh.out, " ", string(slot.Writer), "->", string(slot.Editor)+label)
		}
	}
}

func (sh *shell) cmdSanta(args []string) {
	opts, ok := parseSeed(args)
	if !ok {
		fprintln(sh.errOut, "not a seed:", args[0])

		return
	}

	pairs, err := schedule.SecretSantaParams(sh.authors, sh.params.MaxTrials, sh.params.MaxIter, opts...)
	if err != nil {
		fprintln(sh.errOut, "error:", err)

		return
	}

	for _, p := range pairs {
		fprintln(sh.out, string(p.Writer), "->", string(p.Editor))
	}
}

func (sh *shell) cmdSave(args []string) {
	path := sh.cfg.AuthorFile
	if len(args) > 0 {
		path = args[0]
	}

	path = resolvePath(sh.workDir, path)

	if err := authorlist.Save(path, sh.authors); err != nil {
		fprintln(sh.errOut, "error:", err)

		return
	}

	termcolor.Success(sh.out, "authors written to %s", path)
}

func (sh *shell) cmdWrite(args []string) {
	if sh.sched == nil {
		fprintln(sh.errOut, "no schedule yet; run 'gen' first")

		return
	}

	path := sh.cfg.OutputFile
	if len(args) > 0 {
		path = args[0]
	}

	path = resolvePath(sh.workDir, path)

	rows, err := roster.Assign(sh.sched,
		roster.Options{FirstDay: sh.cfg.FirstDay, BeyondDay: sh.cfg.BeyondDay},
		rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		fprintln(sh.errOut, "error:", err)

		return
	}

	if err := roster.WriteCSV(path, rows); err != nil {
		fprintln(sh.errOut, "error:", err)

		return
	}

	termcolor.Success(sh.out, "schedule written to %s", path)
}

func (sh *shell) cmdExport(args []string) {
	if sh.sched == nil {
		fprintln(sh.errOut, "no schedule yet; run 'gen' first")

		return
	}

	path := "blocks.csv"
	if len(args) > 0 {
		path = args[0]
	}

	path = resolvePath(sh.workDir, path)

	if err := roster.ExportBlocks(path, sh.sched); err != nil {
		fprintln(sh.errOut, "error:", err)

		return
	}

	termcolor.Success(sh.out, "blocks written to %s", path)
}
