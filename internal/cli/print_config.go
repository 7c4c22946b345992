package cli

import "io"

func cmdPrintConfig(out io.Writer, cfg Config, sources ConfigSources) int {
	fprintln(out, "# Resolved configuration")

	if sources.Global != "" {
		fprintln(out, "#   global:", sources.Global)
	}

	if sources.Project != "" {
		fprintln(out, "#   project:", sources.Project)
	}

	if sources.Global == "" && sources.Project == "" {
		fprintln(out, "#   (using defaults only)")
	}

	fprintln(out, "author_file:", cfg.AuthorFile)
	fprintln(out, "num_writes:", cfg.NumWrites)
	fprintln(out, "num_regular:", cfg.NumRegular)
	fprintln(out, "num_queue:", cfg.NumQueue)
	fprintln(out, "num_beyond:", cfg.NumBeyond)
	fprintln(out, "max_trials:", cfg.MaxTrials)
	fprintln(out, "max_iter:", cfg.MaxIter)
	fprintln(out, "first_day:", cfg.FirstDay)
	fprintln(out, "beyond_day:", cfg.BeyondDay)
	fprintln(out, "output_file:", cfg.OutputFile)

	return 0
}
