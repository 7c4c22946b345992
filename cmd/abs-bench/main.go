// Package main provides abs-bench, a benchmark tool for the schedule
// search. It sweeps author pool sizes and seeds, runs the generator
// in-process and reports how long the search takes and how much of its
// trial and iteration budget it burns.
package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	schedule "github.com/Mythcell/ab-schedule"
	"github.com/Mythcell/ab-schedule/internal/authorlist"
)

type config struct {
	pools   []int
	runs    int
	seed    int64
	writes  int
	regular int
	queue   int
	beyond  int
	out     string
}

// result aggregates one pool size across all runs.
type result struct {
	pool     int
	runs     int
	failed   int
	meanMs   float64
	minMs    float64
	maxMs    float64
	meanTry  float64
	meanIter float64
}

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:]))
}

func run(out, errOut io.Writer, args []string) int {
	cfg := config{}

	flags := flag.NewFlagSet("abs-bench", flag.ContinueOnError)
	flags.SetOutput(errOut)

	poolsStr := flags.String("pools", "16,24,40", "comma-separated author pool sizes")
	flags.IntVar(&cfg.runs, "runs", 25, "runs per pool size, each with its own seed")
	flags.Int64Var(&cfg.seed, "seed", 1, "base seed; run i uses seed+i")
	flags.IntVar(&cfg.writes, "writes", 3, "writing turns per author")
	flags.IntVar(&cfg.regular, "regular", 5, "regular posts per full block")
	flags.IntVar(&cfg.queue, "queue", 1, "queue posts per full block")
	flags.IntVar(&cfg.beyond, "beyond", 1, "beyond posts per full block")
	flags.StringVar(&cfg.out, "out", "", "optional CSV report path")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	pools, err := parsePools(*poolsStr)
	if err != nil {
		fmt.Fprintf(errOut, "abs-bench: %v\n", err)
		return 2
	}
	cfg.pools = pools

	results := make([]result, 0, len(cfg.pools))
	for _, pool := range cfg.pools {
		res, err := benchPool(cfg, pool)
		if err != nil {
			fmt.Fprintf(errOut, "abs-bench: pool %d: %v\n", pool, err)
			return 1
		}
		results = append(results, res)
	}

	printReport(out, cfg, results)

	if cfg.out != "" {
		if err := writeCSV(cfg.out, results); err != nil {
			fmt.Fprintf(errOut, "abs-bench: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "\nreport written to %s\n", cfg.out)
	}

	return 0
}

func parsePools(s string) ([]int, error) {
	var pools []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 2 {
			return nil, fmt.Errorf("bad pool size %q", part)
		}
		pools = append(pools, n)
	}
	if len(pools) == 0 {
		return nil, fmt.Errorf("no pool sizes given")
	}
	return pools, nil
}

// benchPool runs cfg.runs searches against a synthetic pool of the given
// size, one seed per run. Exhausted runs count as failures but do not
// abort the sweep; invalid parameters do, since every run would fail the
// same way.
func benchPool(cfg config, pool int) (result, error) {
	authors, err := authorlist.Random(pool, 6, rand.New(rand.NewSource(cfg.seed)))
	if err != nil {
		return result{}, err
	}

	params := schedule.Params{
		NumWrites:  cfg.writes,
		NumRegular: cfg.regular,
		NumQueue:   cfg.queue,
		NumBeyond:  cfg.beyond,
		MaxTrials:  schedule.DefaultParams().MaxTrials,
		MaxIter:    schedule.DefaultParams().MaxIter,
	}

	res := result{pool: pool, runs: cfg.runs, minMs: -1}

	var totalMs, totalTry, totalIter float64
	for i := 0; i < cfg.runs; i++ {
		var trials, iters int
		gen, err := schedule.New(authors, params,
			schedule.WithSeed(cfg.seed+int64(i)),
			schedule.WithProgress(func(ev schedule.ProgressEvent) {
				trials = ev.Trial
				iters += ev.Iterations
			}))
		if err != nil {
			return result{}, err
		}

		start := time.Now()
		_, err = gen.Generate()
		ms := float64(time.Since(start).Microseconds()) / 1000

		if err != nil {
			res.failed++
			continue
		}

		totalMs += ms
		totalTry += float64(trials)
		totalIter += float64(iters)
		if res.minMs < 0 || ms < res.minMs {
			res.minMs = ms
		}
		if ms > res.maxMs {
			res.maxMs = ms
		}
	}

	if ok := cfg.runs - res.failed; ok > 0 {
		res.meanMs = totalMs / float64(ok)
		res.meanTry = totalTry / float64(ok)
		res.meanIter = totalIter / float64(ok)
	}
	if res.minMs < 0 {
		res.minMs = 0
	}

	return res, nil
}

func printReport(out io.Writer, cfg config, results []result) {
	fmt.Fprintf(out, "schedule search benchmark: %d runs per pool, writes=%d block=%d\n\n",
		cfg.runs, cfg.writes, cfg.regular+cfg.queue+cfg.beyond)
	fmt.Fprintf(out, "%8s %8s %10s %10s %10s %10s %12s\n",
		"pool", "failed", "mean ms", "min ms", "max ms", "trials", "iterations")
	for _, r := range results {
		fmt.Fprintf(out, "%8d %8d %10.2f %10.2f %10.2f %10.1f %12.0f\n",
			r.pool, r.failed, r.meanMs, r.minMs, r.maxMs, r.meanTry, r.meanIter)
	}
}

func writeCSV(path string, results []result) error {
	var buf bytes.Buffer
	buf.WriteString("pool,runs,failed,mean_ms,min_ms,max_ms,mean_trials,mean_iterations\n")
	for _, r := range results {
		fmt.Fprintf(&buf, "%d,%d,%d,%.3f,%.3f,%.3f,%.1f,%.0f\n",
			r.pool, r.runs, r.failed, r.meanMs, r.minMs, r.maxMs, r.meanTry, r.meanIter)
	}
	return atomic.WriteFile(path, &buf)
}
