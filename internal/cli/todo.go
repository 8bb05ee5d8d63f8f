package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aissist/aissist/internal/entries"
	"github.com/aissist/aissist/internal/logger"
	"github.com/aissist/aissist/internal/timeframe"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var priorityWords = map[string]int{
	"low":    1,
	"medium": 3,
	"high":   5,
	"urgent": 8,
}

var (
	todoPriorityFlag string
	todoGoalFlag     string
	todoDateFlag     string
	todoSinceFlag    string
	todoFormatFlag   string
	todoAllFlag      bool
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Add and list todos",
}

var todoAddCmd = &cobra.Command{
	Use:   "add [text | -]",
	Short: "Add a todo to a day's todo file",
	Long: `Adds an open todo. Priority is low, medium, high, urgent or a number;
--goal=<codename> links the todo to a goal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(cmd, args)
		if err != nil {
			return err
		}

		priorityStr := todoPriorityFlag
		if text == "" {
			if !current.interactive {
				return fmt.Errorf("todo text is required")
			}
			if !cmd.Flags().Changed("priority") {
				priorityStr = "medium"
			}
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Enter your todo").
					Value(&text).
					Validate(requiredText("todo text")),
				huh.NewInput().
					Title("Priority (low, medium, high, urgent or a number)").
					Value(&priorityStr).
					Validate(func(s string) error {
						_, err := parsePriority(s)
						return err
					}),
			))
			if err := runForm(form); err != nil {
				return err
			}
		}

		priority := current.cfg.Todo.DefaultPriority
		if strings.TrimSpace(priorityStr) != "" {
			if priority, err = parsePriority(priorityStr); err != nil {
				return err
			}
		}

		var linked *string
		if todoGoalFlag != "" {
			if linked, err = current.resolveGoalLink(todoGoalFlag); err != nil {
				return err
			}
		}

		todo, err := current.addTodo(text, todoDateFlag, priority, linked)
		if err != nil {
			return err
		}

		switch {
		case todo.Priority > 0 && todo.LinkedGoal != nil:
			current.success("Todo added with priority %d and linked to goal: %s", todo.Priority, codeStyle.Render(*todo.LinkedGoal))
		case todo.Priority > 0:
			current.success("Todo added with priority %d: %q", todo.Priority, truncate(todo.Text, 60))
		case todo.LinkedGoal != nil:
			current.success("Todo added and linked to goal: %s", codeStyle.Render(*todo.LinkedGoal))
		default:
			current.success("Todo added: %q", truncate(todo.Text, 60))
		}
		return nil
	},
}

// parsePriority accepts a priority word or a non-negative integer.
// Empty input means unset (0).
func parsePriority(s string) (int, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return 0, nil
	}
	if p, ok := priorityWords[trimmed]; ok {
		return p, nil
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid priority %q (use low, medium, high, urgent or a number)", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("priority must not be negative: %d", n)
	}
	return n, nil
}

func (a *app) addTodo(text, date string, priority int, linkedGoal *string) (entries.TodoEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return entries.TodoEntry{}, fmt.Errorf("todo text is required")
	}

	now := a.now()
	if date == "" {
		date = timeframe.FormatDate(now)
	} else if err := validateDate(date); err != nil {
		return entries.TodoEntry{}, err
	}

	todo := entries.TodoEntry{
		// Multi-line text would break the single checkbox line.
		Entry:      entries.Entry{Time: now.Format("15:04"), Text: strings.Join(strings.Fields(text), " ")},
		Priority:   priority,
		LinkedGoal: linkedGoal,
	}

	path := a.path(entries.CollectionTodos, date)
	if err := a.store.Append(path, entries.FormatTodo(todo)); err != nil {
		return entries.TodoEntry{}, fmt.Errorf("failed to add todo: %w", err)
	}

	logger.Info("todo added", "path", path, "priority", priority, "goal", deref(linkedGoal))
	return todo, nil
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List open todos",
	Long: `Lists open todos for today, --date, or every day in the --since timeframe,
highest priority first. --all includes completed todos.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.listTodos(todoDateFlag, todoSinceFlag, todoAllFlag, todoFormatFlag)
	},
}

func (a *app) listTodos(date, since string, all bool, formatStr string) error {
	var dates []string
	label := date
	switch {
	case since != "":
		r, err := timeframe.ParseAt(since, a.now())
		if err != nil {
			return err
		}
		known, err := a.store.Dates(a.root, entries.CollectionTodos)
		if err != nil {
			return fmt.Errorf("failed to list todos: %w", err)
		}
		dates = datesInRange(known, r)
		label = r.Label
	case date != "":
		if err := validateDate(date); err != nil {
			return err
		}
		dates = []string{date}
	default:
		label = timeframe.FormatDate(a.now())
		dates = []string{label}
	}

	rows := []todoRow{}
	for _, d := range dates {
		items, err := a.store.TodoEntries(a.path(entries.CollectionTodos, d))
		if err != nil {
			return fmt.Errorf("failed to read todos for %s: %w", d, err)
		}
		for _, t := range items {
			if t.Done && !all {
				continue
			}
			rows = append(rows, todoRow{Date: d, TodoEntry: t})
		}
	}
	sortTodos(rows)

	if formatStr != "" {
		format, err := parseFormat(formatStr)
		if err != nil {
			return err
		}
		return formatTodos(a.out, format, rows)
	}

	if len(rows) == 0 {
		a.info("No todos found for %s", label)
		return nil
	}

	a.header(fmt.Sprintf("Todos for %s (%d)", label, len(rows)))
	for _, r := range rows {
		box := "[ ]"
		if r.Done {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, r.Text)
		if r.Priority > 0 {
			line += dimStyle.Render(fmt.Sprintf("  (priority %d)", r.Priority))
		}
		if r.LinkedGoal != nil {
			line += "  " + codeStyle.Render("["+*r.LinkedGoal+"]")
		}
		if len(dates) > 1 {
			line = dimStyle.Render(r.Date) + "  " + line
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// sortTodos orders open before done, then by priority descending. Ties keep
// file order.
func sortTodos(rows []todoRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Done != rows[j].Done {
			return !rows[i].Done
		}
		return rows[i].Priority > rows[j].Priority
	})
}

// GetTodoCommand returns the todo command with its subcommands
func GetTodoCommand() *cobra.Command {
	return todoCmd
}

func init() {
	todoAddCmd.Flags().StringVarP(&todoPriorityFlag, "priority", "p", "", "priority: low, medium, high, urgent or a number")
	todoAddCmd.Flags().StringVarP(&todoGoalFlag, "goal", "g", "", "link to a goal by codename (omit the value to pick one)")
	todoAddCmd.Flags().Lookup("goal").NoOptDefVal = pickGoal
	todoAddCmd.Flags().StringVarP(&todoDateFlag, "date", "d", "", "add to the todo file of a date (YYYY-MM-DD)")

	todoListCmd.Flags().StringVarP(&todoDateFlag, "date", "d", "", "list todos for a date (YYYY-MM-DD)")
	todoListCmd.Flags().StringVarP(&todoSinceFlag, "since", "s", "", "list todos for a timeframe")
	todoListCmd.Flags().BoolVarP(&todoAllFlag, "all", "a", false, "include completed todos")
	todoListCmd.Flags().StringVarP(&todoFormatFlag, "format", "f", "", "output format: json, tsv, csv")
	todoListCmd.MarkFlagsMutuallyExclusive("date", "since")

	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoListCmd)
}
