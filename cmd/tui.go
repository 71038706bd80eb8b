package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/trknhr/ghosttext/internal/model/charlm"
	"github.com/trknhr/ghosttext/internal/tui"
)

// runProgram is swapped out in tests to avoid taking over the terminal.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newTuiCmd(g *globalFlags) *cobra.Command {
	var (
		length  int
		initial string
	)

	cmd := &cobra.Command{
		Use:   "tui <windowLength> <fixed|random> <corpus...>",
		Short: "Train once and generate interactively",
		Example: `
  ghosttext tui 5 random shakespeare.txt --length 300 --initial "ROMEO"`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			windowLength, err := parseWindowLength(args[0])
			if err != nil {
				return err
			}
			if length < 0 {
				return fmt.Errorf("invalid length %d: must be non-negative", length)
			}

			t, err := train(cmd, g, windowLength, args[1], args[2:])
			if err != nil {
				return err
			}

			var hook tui.RunHook
			if g.record {
				hook = func(seed string, n int, gen charlm.Generation) {
					t.journal(seed, n, gen)
				}
			}

			if err := runProgram(tui.NewTuiModel(t.model, initial, length, hook)); err != nil {
				return fmt.Errorf("failed to run TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&length, "length", "l", 200, "characters to generate per request")
	cmd.Flags().StringVar(&initial, "initial", "", "initial seed text")

	return cmd
}
