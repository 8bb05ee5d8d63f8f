package cli

import (
	"fmt"
	"os"

	"github.com/aissist/aissist/internal/config"
	"github.com/spf13/cobra"
)

var initGlobalFlag bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a storage root",
	Long: `Creates .aissist in the current directory (or ~/.aissist with --global) with
goals, history, todos, context and reflections directories and a default config.yaml.`,
	Args: cobra.NoArgs,
	// Storage does not exist yet, so skip loadApp.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		var root string
		if initGlobalFlag {
			global, err := config.GlobalRoot()
			if err != nil {
				return fmt.Errorf("failed to resolve home directory: %w", err)
			}
			root = global
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			root = config.LocalRoot(cwd)
		}

		return runInit(&app{out: cmd.OutOrStdout()}, root)
	},
}

func runInit(a *app, root string) error {
	created, err := config.Init(root)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	if !created {
		a.info("Already initialized at %s", root)
		return nil
	}
	a.success("Initialized storage at %s", root)
	return nil
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the storage root in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(current.out, current.root)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initGlobalFlag, "global", "g", false, "initialize ~/.aissist instead of the current directory")
}
