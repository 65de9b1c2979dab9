package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/pagelist/internal/cmd"
	"github.com/gravitrone/pagelist/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func newRootCmd() *cobra.Command {
	opts := &cmd.Options{}
	root := cmd.Root(opts)
	root.RunE = func(c *cobra.Command, _ []string) error {
		return runTUI(c, opts)
	}
	return root
}

var errNoTerminal = errors.New("the interactive view needs a terminal; use 'pagelist dump' instead")

func runTUI(c *cobra.Command, opts *cmd.Options) error {
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stderr) {
		return errNoTerminal
	}

	s, err := opts.Open(c)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	app := ui.NewApp(c.Context(), s.Controller(), s.Title())
	defer func() { _ = app.Close() }()

	// stdout stays free for the chosen keys
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui error: %w", err)
	}

	result, ok := final.(ui.App)
	if !ok || !result.Confirmed() {
		return nil
	}
	for _, key := range result.Chosen() {
		fmt.Fprintln(c.OutOrStdout(), key)
	}
	s.Log.Info().Int("chosen", len(result.Chosen())).Msg("selection confirmed")
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
