// Command vtcat feeds a file or stdin through the vtcore VT core and prints
// the resulting screen as either plain text or a JSON DebugDump. It exists
// mainly to exercise the parser/sequencer/screen pipeline end-to-end outside
// of test code.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/contourterm/vtcore/cmd/vtcat/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vtcat:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var rows, cols, maxHistory int
	var configPath string
	var jsonOut bool
	var detail string

	cmd := &cobra.Command{
		Use:   "vtcat [file]",
		Short: "Replay a VT byte stream and print the resulting screen",
		Long: `vtcat feeds a file (or stdin, with no argument) through the vtcore
parser/sequencer/screen pipeline and prints what the terminal would show.

With --json it prints a Screen.Inspect() dump instead of plain text, at the
level chosen by --detail (text by default, or styled or full), which is
useful for scripting against terminal state.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if rows > 0 {
				cfg.Rows = rows
			}
			if cols > 0 {
				cfg.Cols = cols
			}
			if maxHistory > 0 {
				cfg.MaxHistory = maxHistory
			}

			var in *os.File
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			} else {
				in = os.Stdin
			}

			return run(cmd, in, cfg, jsonOut, detail)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 0, "screen rows (overrides config, default 24)")
	cmd.Flags().IntVar(&cols, "cols", 0, "screen columns (overrides config, default 80)")
	cmd.Flags().IntVar(&maxHistory, "max-history", 0, "scrollback capacity in lines (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a vtcat.yaml config file")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print a Screen.Inspect() JSON dump instead of plain text")
	cmd.Flags().StringVar(&detail, "detail", "text", "dump detail for --json: text, styled, or full")

	return cmd
}
