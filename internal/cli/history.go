package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/aissist/aissist/internal/entries"
	"github.com/aissist/aissist/internal/logger"
	"github.com/aissist/aissist/internal/timeframe"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// pickGoal is the --goal value used when the flag is given without a codename
const pickGoal = "?"

var (
	historyGoalFlag   string
	historyDateFlag   string
	historySinceFlag  string
	historyFormatFlag string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Log and show what you worked on",
}

var historyLogCmd = &cobra.Command{
	Use:   "log [text | -]",
	Short: "Log a history entry to today's history file",
	Long: `Appends a timestamped history entry. --goal=<codename> links it to a goal;
--goal on its own offers a list of goals to pick from.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(cmd, args)
		if err != nil {
			return err
		}
		if text == "" {
			if !current.interactive {
				return fmt.Errorf("history text is required")
			}
			form := huh.NewForm(huh.NewGroup(
				huh.NewText().
					Title("What did you do?").
					Value(&text).
					Validate(func(s string) error {
						if err := requiredText("history text")(s); err != nil {
							return err
						}
						return entries.CheckHistoryText(s)
					}),
			))
			if err := runForm(form); err != nil {
				return err
			}
		}

		var linked *string
		if cmd.Flags().Changed("goal") {
			if linked, err = current.resolveGoalLink(historyGoalFlag); err != nil {
				return err
			}
		}

		if _, err := current.logHistory(text, linked); err != nil {
			return err
		}

		if linked != nil {
			current.success("History logged and linked to goal: %s", codeStyle.Render(*linked))
		} else {
			current.success("History logged: %q", truncate(text, 60))
		}
		return nil
	},
}

func (a *app) logHistory(text string, linkedGoal *string) (entries.HistoryEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return entries.HistoryEntry{}, fmt.Errorf("history text is required")
	}
	if err := entries.CheckHistoryText(text); err != nil {
		return entries.HistoryEntry{}, fmt.Errorf("invalid history text: %w", err)
	}

	now := a.now()
	entry := entries.HistoryEntry{
		Entry:      entries.Entry{Time: now.Format("15:04"), Text: text},
		LinkedGoal: linkedGoal,
	}

	path := a.path(entries.CollectionHistory, timeframe.FormatDate(now))
	if err := a.store.Append(path, entries.FormatHistory(entry)); err != nil {
		return entries.HistoryEntry{}, fmt.Errorf("failed to log history: %w", err)
	}

	logger.Info("history logged", "path", path, "goal", deref(linkedGoal))
	return entry, nil
}

// resolveGoalLink validates a codename against the known goals, or lets the
// user pick one when value is pickGoal. Returns nil for no link.
func (a *app) resolveGoalLink(value string) (*string, error) {
	goals, err := a.store.ActiveGoals(a.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	if value != pickGoal {
		for _, g := range goals {
			if g.Codename == value {
				return &g.Codename, nil
			}
		}
		return nil, fmt.Errorf("goal not found: %s", value)
	}

	if len(goals) == 0 {
		a.info("No active goals found")
		return nil, nil
	}
	if !a.interactive {
		return nil, fmt.Errorf("--goal needs a codename when not running interactively (--goal=<codename>)")
	}

	options := []huh.Option[string]{huh.NewOption("None - don't link to a goal", "")}
	for _, g := range goals {
		options = append(options, huh.NewOption(fmt.Sprintf("%s | %s", g.Codename, truncate(g.Text, 60)), g.Codename))
	}

	var selected string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Link to which goal?").
			Options(options...).
			Value(&selected),
	))
	if err := runForm(form); err != nil {
		return nil, err
	}
	if selected == "" {
		return nil, nil
	}
	return &selected, nil
}

var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show history entries",
	Long: `Shows today's history, the history of --date, or every day in the --since
timeframe (e.g. "this week", "next 7 days", "2026 Q1").`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historySinceFlag != "" {
			return current.showHistoryRange(historySinceFlag, historyFormatFlag)
		}
		return current.showHistoryDay(historyDateFlag, historyFormatFlag)
	},
}

func (a *app) showHistoryDay(date, formatStr string) error {
	if date == "" {
		date = timeframe.FormatDate(a.now())
	} else if err := validateDate(date); err != nil {
		return err
	}

	if formatStr != "" {
		return a.showHistoryRows([]string{date}, formatStr)
	}

	content, ok, err := a.store.Read(a.path(entries.CollectionHistory, date))
	if err != nil {
		return fmt.Errorf("failed to show history: %w", err)
	}
	if !ok || strings.TrimSpace(content) == "" {
		a.info("No history found for %s", date)
		return nil
	}

	a.header(fmt.Sprintf("History for %s:", date))
	fmt.Fprintln(a.out, strings.TrimRight(content, "\n"))
	return nil
}

func (a *app) showHistoryRange(since, formatStr string) error {
	r, err := timeframe.ParseAt(since, a.now())
	if err != nil {
		return err
	}

	dates, err := a.store.Dates(a.root, entries.CollectionHistory)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	dates = datesInRange(dates, r)

	if formatStr != "" {
		return a.showHistoryRows(dates, formatStr)
	}

	if len(dates) == 0 {
		a.info("No history found for %s", r.Label)
		return nil
	}

	a.header(fmt.Sprintf("History for %s:", r.Label))
	for _, date := range dates {
		items, err := a.store.HistoryEntries(a.path(entries.CollectionHistory, date))
		if err != nil {
			return fmt.Errorf("failed to read history for %s: %w", date, err)
		}
		fmt.Fprintln(a.out, headerStyle.Render(date))
		for _, h := range items {
			line := fmt.Sprintf("  %s  %s", dimStyle.Render(h.Time), truncate(h.Text, 80))
			if h.LinkedGoal != nil {
				line += "  " + codeStyle.Render("["+*h.LinkedGoal+"]")
			}
			fmt.Fprintln(a.out, line)
		}
	}
	return nil
}

func (a *app) showHistoryRows(dates []string, formatStr string) error {
	format, err := parseFormat(formatStr)
	if err != nil {
		return err
	}

	rows := []historyRow{}
	for _, date := range dates {
		items, err := a.store.HistoryEntries(a.path(entries.CollectionHistory, date))
		if err != nil {
			return fmt.Errorf("failed to read history for %s: %w", date, err)
		}
		for _, h := range items {
			rows = append(rows, historyRow{Date: date, HistoryEntry: h})
		}
	}
	return formatHistory(a.out, format, rows)
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date format: %s. Use YYYY-MM-DD format", date)
	}
	return nil
}

// datesInRange keeps the YYYY-MM-DD dates whose day overlaps r and returns
// them oldest first.
func datesInRange(dates []string, r timeframe.Range) []string {
	var kept []string
	for i := len(dates) - 1; i >= 0; i-- {
		if r.ContainsDate(dates[i]) {
			kept = append(kept, dates[i])
		}
	}
	return kept
}

// GetHistoryCommand returns the history command with its subcommands
func GetHistoryCommand() *cobra.Command {
	return historyCmd
}

func init() {
	historyLogCmd.Flags().StringVarP(&historyGoalFlag, "goal", "g", "", "link to a goal by codename (omit the value to pick one)")
	historyLogCmd.Flags().Lookup("goal").NoOptDefVal = pickGoal

	historyShowCmd.Flags().StringVarP(&historyDateFlag, "date", "d", "", "show history for a date (YYYY-MM-DD)")
	historyShowCmd.Flags().StringVarP(&historySinceFlag, "since", "s", "", "show history for a timeframe")
	historyShowCmd.Flags().StringVarP(&historyFormatFlag, "format", "f", "", "output format: json, tsv, csv")
	historyShowCmd.MarkFlagsMutuallyExclusive("date", "since")

	historyCmd.AddCommand(historyLogCmd)
	historyCmd.AddCommand(historyShowCmd)
}
