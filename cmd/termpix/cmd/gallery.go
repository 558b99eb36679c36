package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blacktop/go-termpix"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	accentColor = lipgloss.Color("#7D56F4")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Background(accentColor).
			Padding(0, 2).
			MarginBottom(1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1)
)

func init() {
	rootCmd.AddCommand(galleryCmd)
}

var galleryCmd = &cobra.Command{
	Use:   "gallery [dir]",
	Short: "Browse the images in a directory with a live preview",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		mode, err := viewerMode(modeFlag)
		if err != nil {
			return err
		}
		m, err := newGalleryModel(dir, mode, termpix.NewStore(0))
		if err != nil {
			return err
		}

		p := tea.NewProgram(m, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

// fileItem represents a file in the list
type fileItem struct {
	name string
	path string
}

func (f fileItem) FilterValue() string { return f.name }
func (f fileItem) Title() string       { return f.name }
func (f fileItem) Description() string {
	if isImage(f.name) {
		return "Image file"
	}
	return "File"
}

type galleryModel struct {
	list     list.Model
	viewport viewport.Model
	mode     termpix.Mode
	store    *termpix.Store
	width    int
	height   int
	selected string
}

func newGalleryModel(dir string, mode termpix.Mode, store *termpix.Store) (galleryModel, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return galleryModel{}, fmt.Errorf("failed to read directory: %w", err)
	}

	// Skip directories and dotfiles
	var items []list.Item
	for _, file := range files {
		if file.IsDir() || strings.HasPrefix(file.Name(), ".") {
			continue
		}
		items = append(items, fileItem{
			name: file.Name(),
			path: filepath.Join(dir, file.Name()),
		})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	vp := viewport.New(0, 0)
	if len(items) == 0 {
		vp.SetContent("No files in this directory.")
	}

	return galleryModel{
		list:     l,
		viewport: vp,
		mode:     mode,
		store:    store,
	}, nil
}

func (m galleryModel) Init() tea.Cmd {
	return nil
}

func (m galleryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		// Let the list handle navigation
		m.list, cmd = m.list.Update(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w, h := m.previewSize()
		m.list.SetSize(w, h)
		m.viewport.Width, m.viewport.Height = w, h
		// previews depend on the panel size
		m.selected = ""
	}

	if m.width == 0 {
		return m, cmd
	}
	if item, ok := m.list.SelectedItem().(fileItem); ok && item.path != m.selected {
		m.selected = item.path
		m.viewport.SetContent(m.preview(item))
	}
	return m, cmd
}

// previewSize is the space inside a panel, after the border and padding
func (m galleryModel) previewSize() (width, height int) {
	return max(m.width/2-4, 1), max(m.height-8, 1)
}

// preview renders item to fit the right panel
func (m galleryModel) preview(item fileItem) string {
	if !isImage(item.name) {
		info := fmt.Sprintf("File: %s\nType: %s\n\nNot an image.", item.name, filepath.Ext(item.name))
		return statusStyle.Render(info)
	}

	w, h := m.previewSize()
	body, _, err := renderFit(item.path, m.mode, m.store, w, h)
	if err != nil {
		return errorStyle.Render("Error: " + err.Error())
	}
	return body
}

func (m galleryModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := headerStyle.Width(m.width).Render(
		fmt.Sprintf("Gallery - %d files - %s", len(m.list.Items()), m.mode))

	// each pane adds a border and padding around its content
	paneWidth := m.width/2 - 2
	paneHeight := max(m.height-6, 1)
	files := paneStyle.Width(paneWidth).Height(paneHeight).Render(m.list.View())
	preview := paneStyle.Width(paneWidth).Height(paneHeight).Render(m.viewport.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, files, preview),
		statusStyle.Render("\n↑/↓ select • q quit"),
	)
}

func isImage(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return true
	default:
		return false
	}
}
