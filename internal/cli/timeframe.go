package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aissist/aissist/internal/timeframe"
	"github.com/spf13/cobra"
)

var timeframeJSONFlag bool

var timeframeCmd = &cobra.Command{
	Use:   "timeframe [expression]",
	Short: "Resolve a timeframe expression to a date range",
	Long: `Resolves expressions such as "today", "this week", "next quarter",
"2026 Q1", "march 2026", "next 10 days" or "2026-03-01". No expression means today.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.showTimeframe(strings.Join(args, " "), timeframeJSONFlag)
	},
}

func (a *app) showTimeframe(input string, asJSON bool) error {
	r, err := timeframe.ParseAt(input, a.now())
	if err != nil {
		return err
	}

	if asJSON {
		return json.NewEncoder(a.out).Encode(struct {
			Label string `json:"label"`
			Start string `json:"start"`
			End   string `json:"end"`
		}{r.Label, r.Start.Format(timeLayout), r.End.Format(timeLayout)})
	}

	fmt.Fprintln(a.out, headerStyle.Render(r.Label))
	fmt.Fprintf(a.out, "  start: %s\n", r.Start.Format(timeLayout))
	fmt.Fprintf(a.out, "  end:   %s\n", r.End.Format(timeLayout))
	return nil
}

const timeLayout = "2006-01-02 15:04:05"

func init() {
	timeframeCmd.Flags().BoolVar(&timeframeJSONFlag, "json", false, "print the range as JSON")
}
