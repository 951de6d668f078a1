package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"TradeFolder/internal/collector"
	"TradeFolder/internal/model"
)

// App carries the process streams and optional overrides used to build commands.
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Provider replaces the configured market-data provider when set.
	Provider collector.Provider

	configPath string
	ticker     string
	date       string
	outDir     string
	noProgress bool
	stdin      *bufio.Reader
}

// New creates an App bound to the given streams.
func New(in io.Reader, out, errOut io.Writer) *App {
	return &App{In: in, Out: out, Err: errOut}
}

// Command builds the root command with its subcommands.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "tradefolder",
		Short: "Export multi-interval price history for a ticker into a browsable folder",
		Long: `tradefolder fetches 1min, 5min, 15min, daily and weekly bars for a ticker
from a start date and writes {TICKER}_{DD-MM-YYYY}/ with one JSON data file and one
chart page per interval. Missing --ticker or --date values are prompted for.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runExport,
	}
	root.SetIn(a.In)
	root.SetOut(a.Out)
	root.SetErr(a.Err)

	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", defaultConfig, "path to the YAML config file")
	pf.StringVarP(&a.ticker, "ticker", "t", "", "ticker symbol, e.g. AAPL")
	pf.StringVarP(&a.date, "date", "d", "", "start date as dd/mm/yyyy")
	pf.StringVarP(&a.outDir, "out", "o", "", "directory the trade folder is created in")
	root.Flags().BoolVar(&a.noProgress, "no-progress", false, "disable the progress bar")

	root.AddCommand(a.scheduleCommand(), a.historyCommand())
	return root
}

func (a *App) runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	req, err := a.request(cmd)
	if err != nil {
		return err
	}

	c, err := a.build(cfg, a.outDir)
	if err != nil {
		return err
	}
	defer c.close()

	if !a.noProgress {
		bar := newProgressBar(cmd.ErrOrStderr(), len(c.collector.Intervals))
		c.collector.OnOutcome = func(o model.Outcome) {
			bar.Describe(o.Interval.Name)
			_ = bar.Add(1)
		}
		defer bar.Finish()
	}

	rep, err := c.runner.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, o := range rep.Outcomes {
		switch o.Status {
		case model.StatusEmpty:
			fmt.Fprintf(out, "  %s: no data available\n", o.Interval.Name)
		case model.StatusFailed:
			fmt.Fprintf(out, "  %s: fetch failed: %v\n", o.Interval.Name, o.Err)
		}
	}
	fmt.Fprintf(out, "Trade folder for %s on %s has been created successfully.\n", req.Ticker, req.DateLabel)
	return nil
}

// request builds the export request from flags, prompting for anything missing.
func (a *App) request(cmd *cobra.Command) (model.Request, error) {
	ticker, date := a.ticker, a.date
	var err error
	if ticker == "" {
		if ticker, err = a.prompt(cmd, "Enter ticker symbol (e.g., AAPL): "); err != nil {
			return model.Request{}, err
		}
	}
	if date == "" {
		if date, err = a.prompt(cmd, "Enter date (dd/mm/yyyy): "); err != nil {
			return model.Request{}, err
		}
	}
	return model.NewRequest(ticker, date)
}

func (a *App) prompt(cmd *cobra.Command, label string) (string, error) {
	if a.stdin == nil {
		a.stdin = bufio.NewReader(cmd.InOrStdin())
	}
	fmt.Fprint(cmd.OutOrStdout(), label)
	line, err := a.stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("fetching"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
