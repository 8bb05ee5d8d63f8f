package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/aissist/aissist/internal/codename"
	"github.com/aissist/aissist/internal/entries"
	"github.com/aissist/aissist/internal/logger"
	"github.com/aissist/aissist/internal/timeframe"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	goalDeadlineFlag    string
	goalDescriptionFlag string
	goalFormatFlag      string
	goalClearFlag       bool
)

// goalCmd represents the goal command
var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals",
	Long:  "Add goals with a generated codename, list them and edit their descriptions.",
}

var goalAddCmd = &cobra.Command{
	Use:   "add [text | -]",
	Short: "Add a goal to today's goals file",
	Long: `Adds a goal under a generated codename. The deadline accepts any timeframe
(e.g. "tomorrow", "next week", "2026 Q1", "2026-03-01"); the end of the
timeframe becomes the deadline date. Use "skip" for no deadline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(cmd, args)
		if err != nil {
			return err
		}

		deadline := goalDeadlineFlag
		description := goalDescriptionFlag
		deadlineSet := cmd.Flags().Changed("deadline")

		if text == "" {
			if !current.interactive {
				return fmt.Errorf("goal text is required")
			}
			if text, description, deadline, err = promptGoal(current.cfg.Goal.DeadlineDefault, deadlineSet, deadline); err != nil {
				return err
			}
		} else if !deadlineSet && current.interactive {
			if deadline, err = promptDeadline(current.cfg.Goal.DeadlineDefault); err != nil {
				return err
			}
		}

		goal, err := current.addGoal(text, deadline, description)
		if err != nil {
			return err
		}

		current.success("Goal added with codename: %s", codeStyle.Render(goal.Codename))
		if goal.Description != nil {
			current.info("Description added")
		}
		if goal.Deadline != nil {
			current.info("Deadline: %s", *goal.Deadline)
		}
		return nil
	},
}

func promptGoal(deadlineDefault string, deadlineSet bool, deadline string) (string, string, string, error) {
	var text, description string
	if !deadlineSet {
		deadline = deadlineDefault
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Enter your goal").
			Value(&text).
			Validate(requiredText("goal text")),
		huh.NewText().
			Title("Description (optional)").
			Value(&description),
	}
	if !deadlineSet {
		fields = append(fields, huh.NewInput().
			Title("Deadline (timeframe, or skip)").
			Value(&deadline).
			Validate(validDeadline))
	}

	if err := runForm(huh.NewForm(huh.NewGroup(fields...))); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(text), description, deadline, nil
}

func promptDeadline(deadlineDefault string) (string, error) {
	deadline := deadlineDefault
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("Enter deadline (default: %s)", deadlineDefault)).
			Value(&deadline).
			Validate(validDeadline),
	))
	if err := runForm(form); err != nil {
		return "", err
	}
	return deadline, nil
}

func validDeadline(s string) error {
	_, err := resolveDeadline(s, current.now())
	return err
}

// addGoal appends a goal to today's goals file under a codename that is
// unique within that file.
func (a *app) addGoal(text, deadlineInput, description string) (entries.GoalEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return entries.GoalEntry{}, fmt.Errorf("goal text is required")
	}
	if err := entries.CheckGoalText(text); err != nil {
		return entries.GoalEntry{}, fmt.Errorf("invalid goal text: %w", err)
	}

	now := a.now()
	deadline, err := resolveDeadline(deadlineInput, now)
	if err != nil {
		return entries.GoalEntry{}, err
	}

	path := a.path(entries.CollectionGoals, timeframe.FormatDate(now))
	existing, err := a.store.ExistingCodenames(path)
	if err != nil {
		return entries.GoalEntry{}, fmt.Errorf("failed to read existing goals: %w", err)
	}

	var name string
	a.withSpinner("Generating unique codename...", func() {
		name = codename.Generate(text, existing)
	})

	goal := entries.GoalEntry{
		Entry:    entries.Entry{Time: now.Format("15:04"), Text: text},
		Codename: name,
		Deadline: deadline,
	}
	if strings.TrimSpace(description) != "" {
		goal.Description = &description
	}

	if err := a.store.Append(path, entries.FormatGoal(goal)); err != nil {
		return entries.GoalEntry{}, fmt.Errorf("failed to add goal: %w", err)
	}

	logger.Info("goal added", "codename", name, "path", path)
	return goal, nil
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.listGoals(goalFormatFlag)
	},
}

func (a *app) listGoals(formatStr string) error {
	goals, err := a.store.ActiveGoals(a.root)
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}

	if formatStr != "" {
		format, err := parseFormat(formatStr)
		if err != nil {
			return err
		}
		return formatGoals(a.out, format, goals)
	}

	if len(goals) == 0 {
		a.info("No goals found")
		return nil
	}

	a.header(fmt.Sprintf("Goals (%d)", len(goals)))
	for _, g := range goals {
		line := fmt.Sprintf("%s  %s", codeStyle.Render(g.Codename), truncate(g.Text, 60))
		if g.Deadline != nil {
			line += dimStyle.Render(fmt.Sprintf("  (deadline: %s)", *g.Deadline))
		}
		fmt.Fprintln(a.out, line)
		if g.Description != nil {
			for _, l := range strings.Split(*g.Description, "\n") {
				fmt.Fprintf(a.out, "    %s\n", dimStyle.Render(l))
			}
		}
	}
	return nil
}

var goalDescribeCmd = &cobra.Command{
	Use:   "describe <codename> [description | -]",
	Short: "Set or replace a goal's description",
	Long:  "Sets the description of a goal. Use --clear to remove it.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		goal, err := current.findGoal(name)
		if err != nil {
			return err
		}

		var description string
		switch {
		case goalClearFlag:
			description = ""
		case len(args) == 2:
			if description, err = readText(cmd, args[1:]); err != nil {
				return err
			}
		case current.interactive:
			description = deref(goal.Description)
			form := huh.NewForm(huh.NewGroup(
				huh.NewText().
					Title(fmt.Sprintf("Description for %s", name)).
					Value(&description),
			))
			if err := runForm(form); err != nil {
				return err
			}
		default:
			return fmt.Errorf("description is required (or use --clear)")
		}

		if err := current.describeGoal(goal, description); err != nil {
			return err
		}

		if strings.TrimSpace(description) == "" {
			current.success("Description removed from %s", codeStyle.Render(name))
		} else {
			current.success("Description updated for %s", codeStyle.Render(name))
		}
		return nil
	},
}

// findGoal returns the most recent goal with codename
func (a *app) findGoal(name string) (entries.ActiveGoal, error) {
	goals, err := a.store.ActiveGoals(a.root)
	if err != nil {
		return entries.ActiveGoal{}, fmt.Errorf("failed to list goals: %w", err)
	}
	for _, g := range goals {
		if g.Codename == name {
			return g, nil
		}
	}
	return entries.ActiveGoal{}, fmt.Errorf("goal not found: %s", name)
}

func (a *app) describeGoal(goal entries.ActiveGoal, description string) error {
	path := a.path(entries.CollectionGoals, goal.Date)
	updated, err := a.store.UpdateGoalDescription(path, goal.Codename, description)
	if err != nil {
		return fmt.Errorf("failed to update goal description: %w", err)
	}
	if !updated {
		return fmt.Errorf("goal not found: %s", goal.Codename)
	}

	logger.Info("goal description updated", "codename", goal.Codename, "path", path)
	return nil
}

// resolveDeadline turns a timeframe into the date its range ends on.
// Empty input and "skip" mean no deadline.
func resolveDeadline(input string, now time.Time) (*string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || strings.EqualFold(trimmed, "skip") {
		return nil, nil
	}

	r, err := timeframe.ParseAt(trimmed, now)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline: %w", err)
	}
	date := timeframe.FormatDate(r.End)
	return &date, nil
}

// GetGoalCommand returns the goal command with its subcommands
func GetGoalCommand() *cobra.Command {
	return goalCmd
}

func init() {
	goalAddCmd.Flags().StringVarP(&goalDeadlineFlag, "deadline", "d", "", "deadline as a timeframe or YYYY-MM-DD (\"skip\" for none)")
	goalAddCmd.Flags().StringVar(&goalDescriptionFlag, "description", "", "optional description")
	goalListCmd.Flags().StringVarP(&goalFormatFlag, "format", "f", "", "output format: json, tsv, csv")
	goalDescribeCmd.Flags().BoolVar(&goalClearFlag, "clear", false, "remove the description")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalDescribeCmd)
}
