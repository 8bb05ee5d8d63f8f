package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/aissist/aissist/internal/aggregate"
	"github.com/aissist/aissist/internal/config"
	"github.com/aissist/aissist/internal/entries"
	"github.com/aissist/aissist/internal/logger"
	"github.com/aissist/aissist/internal/perf"
	"github.com/aissist/aissist/internal/storage"
	"github.com/spf13/cobra"
)

const slowCommandThreshold = 500 * time.Millisecond

var (
	current  *app
	cmdTimer *perf.Timer

	// IsInteractive reports whether prompts may be shown. Set by main.
	IsInteractive = func() bool { return false }
)

// app holds everything a command needs to touch the storage root
type app struct {
	root        string
	store       *entries.Store
	loader      *aggregate.Loader
	cfg         config.Config
	out         io.Writer
	now         func() time.Time
	interactive bool
}

func newApp(root string, out io.Writer) (*app, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	fs := storage.NewFileStore()
	return &app{
		root:   root,
		store:  entries.NewStore(fs),
		loader: aggregate.NewLoader(fs),
		cfg:    cfg,
		out:    out,
		now:    time.Now,
	}, nil
}

func (a *app) path(collection entries.Collection, date string) string {
	return entries.DatedPath(a.root, collection, date)
}

// RootCmd is the root command for the CLI
var RootCmd = &cobra.Command{
	Use:   "aissist",
	Short: "aissist - goals, history and todos in plain markdown",
	Long: `A personal assistant for the terminal. Goals, history entries and todos are
appended to dated markdown files under the storage root (.aissist in the
current project, or ~/.aissist).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cmdTimer != nil {
			cmdTimer.Stop()
		}
	},
}

func init() {
	cobra.OnInitialize(logger.Initialize)

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(pathCmd)
	RootCmd.AddCommand(GetGoalCommand())
	RootCmd.AddCommand(GetHistoryCommand())
	RootCmd.AddCommand(GetTodoCommand())
	RootCmd.AddCommand(timeframeCmd)
	RootCmd.AddCommand(proposeCmd)
}

// loadApp resolves the storage root and configuration for the command
func loadApp(cmd *cobra.Command, args []string) error {
	cmdTimer = perf.NewTimer("cmd_"+cmd.Name(), logger.GetLogger(), slowCommandThreshold)

	root, err := config.StorageRoot()
	if err != nil {
		return fmt.Errorf("failed to resolve storage root: %w", err)
	}

	a, err := newApp(root, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	a.interactive = IsInteractive()
	current = a

	logger.Debug("storage root resolved", "root", root, "interactive", a.interactive)
	return nil
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
