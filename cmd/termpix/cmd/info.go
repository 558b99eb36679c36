package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/blacktop/go-termpix"
	"github.com/blacktop/go-termpix/pkg/csi"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show what termpix detects about the current terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cols, rows := termpix.TerminalSize()
		cellW, cellH, cellOK := csi.CellSize()
		printInfo(cmd.OutOrStdout(), terminalInfo{
			term:        os.Getenv("TERM"),
			termProgram: os.Getenv("TERM_PROGRAM"),
			tmux:        csi.InTmux(),
			profile:     termenv.EnvColorProfile(),
			mode:        termpix.DetectMode(),
			cols:        cols,
			rows:        rows,
			cellWidth:   cellW,
			cellHeight:  cellH,
			cellKnown:   cellOK,
		})
		return nil
	},
}

type terminalInfo struct {
	term        string
	termProgram string
	tmux        bool
	profile     termenv.Profile
	mode        termpix.Mode
	cols, rows  int
	cellWidth   int
	cellHeight  int
	cellKnown   bool
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor (24-bit)"
	case termenv.ANSI256:
		return "256 colors"
	case termenv.ANSI:
		return "16 colors"
	default:
		return "no color"
	}
}

func printInfo(w io.Writer, info terminalInfo) {
	fmt.Fprintln(w, "Terminal Environment:")
	fmt.Fprintf(w, "  TERM: %s\n", info.term)
	fmt.Fprintf(w, "  TERM_PROGRAM: %s\n", info.termProgram)
	fmt.Fprintf(w, "  In tmux: %v\n", info.tmux)
	fmt.Fprintf(w, "  Color profile: %s\n", profileName(info.profile))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Font and Size Information:")
	fmt.Fprintf(w, "  Window Size: %dx%d characters\n", info.cols, info.rows)
	if info.cellKnown {
		fmt.Fprintf(w, "  Cell Size: %dx%d pixels\n", info.cellWidth, info.cellHeight)
	} else {
		fmt.Fprintf(w, "  Cell Size: Not detected (sixel cells fall back to %d pixels)\n", termpix.DefaultCellWidth)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Auto-detected mode: %s\n", info.mode)
	if forced := os.Getenv(termpix.ModeEnv); forced != "" {
		fmt.Fprintf(w, "  (%s=%s)\n", termpix.ModeEnv, forced)
	}
	switch info.mode {
	case termpix.ASCII:
		fmt.Fprintln(w, "• No color support detected - images print as luminance characters")
	case termpix.TrueColor:
		if info.profile != termenv.TrueColor {
			fmt.Fprintln(w, "• True color not confirmed - block colors are reduced to the terminal palette")
		}
	}
}
