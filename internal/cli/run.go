// Package cli implements the abs command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	minArgs  = 2
	helpFlag = "--help"
)

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	workDir := flags.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			fprintln(errOut, "error: cannot get working directory:", err)

			return 1
		}
	}

	cfg, sources, err := LoadConfig(workDir, flags.configPath, env)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	if len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	cmd := flags.remaining[0]
	rest := flags.remaining[1:]

	if cmd == "-h" || cmd == helpFlag {
		printUsage(out)

		return 0
	}

	switch cmd {
	case "generate", "gen":
		return cmdGenerate(out, errOut, cfg, workDir, rest)
	case "export":
		return cmdExport(out, errOut, cfg, workDir, rest)
	case "santa":
		return cmdSanta(out, errOut, cfg, workDir, rest)
	case "authors":
		return cmdAuthors(out, errOut, cfg, workDir, rest)
	case "shell":
		return cmdShell(in, out, errOut, cfg, workDir, rest)
	case "print-config":
		return cmdPrintConfig(out, cfg, sources)
	default:
		fprintln(errOut, "error: unknown command:", cmd)
		printUsage(errOut)

		return 1
	}
}

// globalFlags holds options that apply before command dispatch.
type globalFlags struct {
	workDir    string
	configPath string
	remaining  []string
}

// parseGlobalFlags peels -C/--cwd and -c/--config off the front of the
// argument list, leaving the command and its own flags untouched.
func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	i := 0
	for i < len(args) {
		switch args[i] {
		case "-C", "--cwd":
			if i+1 >= len(args) {
				return globalFlags{}, fmt.Errorf("flag requires an argument: %s", args[i])
			}

			flags.workDir = args[i+1]
			i += 2
		case "-c", "--config":
			if i+1 >= len(args) {
				return globalFlags{}, fmt.Errorf("flag requires an argument: %s", args[i])
			}

			flags.configPath = args[i+1]
			i += 2
		default:
			flags.remaining = args[i:]

			return flags, nil
		}
	}

	return flags, nil
}

// resolvePath makes a possibly-relative path absolute against workDir.
func resolvePath(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == helpFlag {
			return true
		}
	}

	return false
}

func printUsage(writer io.Writer) {
	fprintln(writer, `abs - randomized writer/editor schedule generator

Usage: abs [options] <command> [args]

Options:
  -C, --cwd <dir>    Run as if started in <dir>
  -c, --config       Use specified config file

Commands:
  generate               Generate a schedule and write the roster CSV
    -a, --authors          Author list file [default: from config]
    -o, --out              Roster CSV path [default: schedule.csv]
    --writes N             Writes (and edits) per author
    --regular N            Regular posts per block
    --queue N              Queue posts per block
    --beyond N             Beyond posts per block
    --trials N             Max schedule attempts
    --max-iter N           Max iterations per attempt
    --seed N               Seed the search for reproducible output
    --first-day DAY        First day of each block [default: Sunday]
    --beyond-day DAY       Day for beyond posts [default: Friday]
    --forbid-cross-role    Also forbid write->edit across adjacent blocks
    --export-blocks FILE   Also write a bare block,writer,editor CSV
    --no-csv               Skip the roster CSV, print a summary only
    -v, --verbose          Report each trial to stderr
  export                 Generate and write only the bare blocks CSV
  santa                  Secret-santa mode: print a one-round derangement
  authors                List the author pool
    --random N             Generate N random author initials instead
    --initials L           Initials length for --random [default: 2]
    --save                 Write the generated pool to the author file
  shell                  Interactive session (authors, params, generate)
  print-config           Show resolved configuration and sources

Run 'abs <command> --help' for details on a command.`)
}
