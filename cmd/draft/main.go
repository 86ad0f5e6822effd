// Command draft runs the full pipeline once, writes the curve chart and
// prints the remaining players ordered by draft value for one pick.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/draft-value/internal/app"
	"github.com/riskibarqy/draft-value/internal/config"
	"github.com/riskibarqy/draft-value/internal/observability"
	"github.com/riskibarqy/draft-value/internal/platform/logging"
	"github.com/riskibarqy/draft-value/internal/usecase"
)

type options struct {
	pick       int
	remaining  string
	leagueSize int
	dataDir    string
	chartPath  string
	position   string
	ppg        float64
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "draft:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, cfg config.Config) (options, error) {
	fs := flag.NewFlagSet("draft", flag.ContinueOnError)
	opts := options{}
	fs.IntVar(&opts.pick, "pick", 0, "overall draft position to rank for (required, >= 1)")
	fs.StringVar(&opts.remaining, "remaining", "", "file with one remaining player name per line, - for stdin")
	fs.IntVar(&opts.leagueSize, "league", cfg.LeagueSize, "number of teams in the league")
	fs.StringVar(&opts.dataDir, "data", cfg.DataDir, "directory holding the saved source pages")
	fs.StringVar(&opts.chartPath, "chart", cfg.ChartOutputPath, "chart output path, empty to skip")
	fs.StringVar(&opts.position, "position", "", "also print the optimal draft position for -ppg at this position")
	fs.Float64Var(&opts.ppg, "ppg", 0, "target projected PPG for -position")
	fs.BoolVar(&opts.verbose, "verbose", cfg.Verbose, "log parser and merge diagnostics")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if opts.pick < 1 {
		return options{}, errors.New("-pick must be >= 1")
	}
	if opts.leagueSize < 1 {
		return options{}, errors.New("-league must be >= 1")
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts, err := parseFlags(args, cfg)
	if err != nil {
		return err
	}

	cfg.LeagueSize = opts.leagueSize
	cfg.DataDir = opts.dataDir
	cfg.ChartOutputPath = strings.TrimSpace(opts.chartPath)
	cfg.SourceFetchMode = config.FetchModeFile
	if opts.verbose {
		cfg.LogLevel = logging.LevelDebug
	}
	if cfg.PyroscopeAppName == "" || cfg.PyroscopeAppName == cfg.ServiceName {
		cfg.PyroscopeAppName = "draft-value-cli"
	}

	logger := logging.NewConsole(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = stopProfiler() }()

	names, err := readNames(opts.remaining, stdin)
	if err != nil {
		return err
	}

	rt, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	result, err := rt.RunPipeline(ctx)
	if err != nil {
		return err
	}
	if result.ChartPath != "" {
		fmt.Fprintf(stdout, "chart written to %s\n", result.ChartPath)
	}

	if len(names) > 0 {
		ranked, err := rt.Draft.Rank(ctx, usecase.RankInput{DraftPosition: opts.pick, Remaining: names})
		if err != nil {
			return err
		}
		if err := printRanking(stdout, opts.pick, ranked); err != nil {
			return err
		}
	}

	if opts.position != "" {
		x, ok, err := rt.Draft.OptimalPosition(ctx, opts.position, opts.ppg, nil)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintf(stdout, "optimal draft position for %s at %.2f PPG: %.1f\n", strings.ToUpper(opts.position), opts.ppg, x)
		} else {
			fmt.Fprintf(stdout, "no draft position for %s reaches %.2f PPG\n", strings.ToUpper(opts.position), opts.ppg)
		}
	}
	return nil
}

// readNames returns one name per non-empty line. An empty path means no
// ranking is requested.
func readNames(path string, stdin io.Reader) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open remaining players file %s", path)
		}
		defer f.Close()
		r = f
	}

	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read remaining players")
	}
	return names, nil
}

func printRanking(w io.Writer, pick int, ranked usecase.RankResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Pick %d\n", pick)
	fmt.Fprintln(tw, "#\tPLAYER\tPOS\tTEAM\tVALUE")
	for i, item := range ranked.Ranked {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\n", i+1, item.Player.Name, item.Player.Position, item.Player.Team, item.Value)
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "write ranking")
	}
	if len(ranked.Unresolved) > 0 {
		fmt.Fprintf(w, "unresolved: %s\n", strings.Join(ranked.Unresolved, ", "))
	}
	return nil
}
