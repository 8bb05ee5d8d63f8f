package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aissist/aissist/internal/aggregate"
	"github.com/aissist/aissist/internal/logger"
	"github.com/aissist/aissist/internal/timeframe"
	"github.com/spf13/cobra"
)

var (
	proposeTimeframeFlag string
	proposeTagFlag       string
	proposeFormatFlag    string
	proposeContextFlag   bool
	proposeLookbackFlag  = aggregate.DefaultLookbackDays
)

var proposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Gather goals, history and reflections for planning",
	Long: `Gathers every goal file plus the history and reflections of the --timeframe
(or of the last --lookback days) and prints what was found. --tag keeps only
files mentioning #tag; --context also gathers files under context/<topic>/.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.propose(proposeTimeframeFlag, proposeTagFlag, proposeLookbackFlag, proposeContextFlag, proposeFormatFlag)
	},
}

func (a *app) propose(timeframeInput, tag string, lookback int, withContext bool, formatStr string) error {
	if lookback <= 0 {
		return fmt.Errorf("lookback must be a positive number of days: %d", lookback)
	}

	var format OutputFormat
	if formatStr != "" {
		var err error
		if format, err = parseFormat(formatStr); err != nil {
			return err
		}
		if format != FormatJSON {
			return fmt.Errorf("unsupported format: %s (supported: json)", formatStr)
		}
	}

	r := aggregate.LookbackRange(a.now(), lookback)
	if timeframeInput != "" {
		var err error
		if r, err = timeframe.ParseAt(timeframeInput, a.now()); err != nil {
			return err
		}
	}

	opts := aggregate.Options{
		Range:          r,
		Tag:            strings.TrimPrefix(strings.TrimSpace(tag), "#"),
		IncludeContext: withContext,
	}

	var data aggregate.Data
	var err error
	a.withSpinner("Gathering data...", func() {
		data, err = a.loader.Load(a.root, opts)
	})
	if err != nil {
		return fmt.Errorf("failed to gather data: %w", err)
	}
	logger.Info("data gathered", "range", r.Label, "tag", opts.Tag, "summary", data.Summary())

	if format == FormatJSON {
		return json.NewEncoder(a.out).Encode(struct {
			Label   string `json:"label"`
			Start   string `json:"start"`
			End     string `json:"end"`
			Tag     string `json:"tag,omitempty"`
			Summary string `json:"summary"`
			aggregate.Data
		}{r.Label, r.Start.Format(timeLayout), r.End.Format(timeLayout), opts.Tag, data.Summary(), data})
	}

	if !data.HasData() {
		if opts.Tag != "" {
			a.info("No data found for %s tagged #%s", r.Label, opts.Tag)
		} else {
			a.info("No data found for %s", r.Label)
		}
		return nil
	}

	title := fmt.Sprintf("Data for %s", r.Label)
	if opts.Tag != "" {
		title += " tagged #" + opts.Tag
	}
	a.header(title + ":")
	fmt.Fprintln(a.out, data.Summary())

	a.printFiles("Goals", data.Goals)
	a.printFiles("History", data.History)
	a.printFiles("Reflections", data.Reflections)
	a.printFiles("Context", data.Context)
	return nil
}

func (a *app) printFiles(title string, files []aggregate.File) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, headerStyle.Render(title))
	for _, f := range files {
		label := f.Date
		if f.Name != "" {
			label = f.Name
		}
		fmt.Fprintf(a.out, "  %s  %s\n", label, dimStyle.Render(f.Path))
	}
}

func init() {
	proposeCmd.Flags().StringVarP(&proposeTimeframeFlag, "timeframe", "t", "", "gather history and reflections for a timeframe")
	proposeCmd.Flags().IntVar(&proposeLookbackFlag, "lookback", aggregate.DefaultLookbackDays, "days of history to gather when no timeframe is given")
	proposeCmd.Flags().StringVar(&proposeTagFlag, "tag", "", "only gather files mentioning #tag")
	proposeCmd.Flags().BoolVarP(&proposeContextFlag, "context", "c", false, "also gather context files")
	proposeCmd.Flags().StringVarP(&proposeFormatFlag, "format", "f", "", "output format: json")
	proposeCmd.MarkFlagsMutuallyExclusive("timeframe", "lookback")
}
