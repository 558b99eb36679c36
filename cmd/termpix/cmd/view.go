package cmd

import (
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/blacktop/go-termpix"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true)
)

func init() {
	rootCmd.AddCommand(viewCmd)
}

var viewCmd = &cobra.Command{
	Use:   "view <image>",
	Short: "Show an image full screen, refitting it when the terminal is resized",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := viewerMode(modeFlag)
		if err != nil {
			return err
		}

		p := tea.NewProgram(newViewModel(args[0], mode, termpix.NewStore(0)), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

// viewerMode resolves the mode flag for the full screen commands, which can
// only lay out text output
func viewerMode(flag string) (termpix.Mode, error) {
	mode, err := termpix.ParseMode(flag)
	if err != nil {
		return termpix.Auto, err
	}
	if mode == termpix.Auto {
		mode = termpix.DetectMode()
	}
	if mode == termpix.Sixel {
		return termpix.Auto, fmt.Errorf("sixel output is not supported by the viewer")
	}
	return mode, nil
}

// renderFit renders the image at path so it fits in cols x rows cells
func renderFit(path string, mode termpix.Mode, store *termpix.Store, cols, rows int) (string, *termpix.PixelCache, error) {
	w, h, err := termpix.DecodeConfig(path)
	if err != nil {
		return "", nil, err
	}
	// FitScale keeps a row free for the prompt; give it one back
	scale := termpix.FitScale(w, h, cols, rows+1, mode)

	cache, err := store.Load(path, scale)
	if err != nil {
		return "", nil, err
	}

	renderer, err := termpix.GetRenderer(mode)
	if err != nil {
		return "", nil, err
	}
	body, err := renderer.Render(cache)
	if err != nil {
		return "", nil, err
	}
	return strings.TrimSuffix(body, "\n"), cache, nil
}

// viewModel shows one image and rebuilds its cache on every window size change.
// Caches are kept in a store so returning to a previous size skips decoding.
type viewModel struct {
	path   string
	mode   termpix.Mode
	store  *termpix.Store
	width  int
	height int
	body   string
	status string
	err    error
}

func newViewModel(path string, mode termpix.Mode, store *termpix.Store) viewModel {
	return viewModel{path: path, mode: mode, store: store}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.refit()
	}
	return m, nil
}

// refit rebuilds the body for the current window, keeping one row for status
func (m *viewModel) refit() {
	body, cache, err := renderFit(m.path, m.mode, m.store, m.width, max(m.height-1, 1))
	if err != nil {
		m.err = err
		return
	}

	m.err = nil
	m.body = body
	m.status = fmt.Sprintf("%s  %dx%d cells  %s  q to quit", m.path, cache.Width(), cache.Height(), m.mode)
	log.WithField("cached", m.store.Len()).Debug("refit image")
}

func (m viewModel) View() string {
	if m.err != nil {
		return errorStyle.Render(m.err.Error()) + "\n" + statusStyle.Render("q to quit")
	}
	if m.body == "" {
		return statusStyle.Render("loading...")
	}
	return m.body + "\n" + statusStyle.Render(m.status)
}
