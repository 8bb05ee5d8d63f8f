package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aissist/aissist/internal/logger"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("44")).Bold(true)
	codeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("44"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var errCancelled = errors.New("cancelled")

func (a *app) success(format string, args ...any) {
	fmt.Fprintf(a.out, "%s %s\n", successStyle.Render("✓"), fmt.Sprintf(format, args...))
}

func (a *app) info(format string, args ...any) {
	fmt.Fprintf(a.out, "%s %s\n", infoStyle.Render("ℹ"), fmt.Sprintf(format, args...))
}

func (a *app) header(title string) {
	fmt.Fprintf(a.out, "\n%s\n\n", headerStyle.Render(title))
}

// PrintError writes err to w in the CLI's error style
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("✗"), err)
}

// withSpinner runs action behind a spinner when animations are enabled and
// the terminal is interactive. action always runs exactly once.
func (a *app) withSpinner(title string, action func()) {
	if !a.interactive || !a.cfg.Animations.Enabled {
		action()
		return
	}

	ran := false
	err := spinner.New().
		Title(title).
		Action(func() {
			action()
			ran = true
		}).
		Run()
	if err != nil {
		logger.Debug("spinner failed", "error", err)
	}
	if !ran {
		action()
	}
}

// runForm runs a huh form, mapping an aborted form to errCancelled
func runForm(form *huh.Form) error {
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errCancelled
		}
		return fmt.Errorf("form failed: %w", err)
	}
	return nil
}

func requiredText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// readText returns the text given as arguments. A single "-" reads stdin.
// No arguments yields "" so the caller can prompt.
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}

	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", fmt.Errorf("no text provided via stdin")
		}
		return text, nil
	}

	return strings.TrimSpace(strings.Join(args, " ")), nil
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
