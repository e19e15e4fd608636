package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// orderListModel is the bubbletea model for browsing a computed order:
// a scrollable list of the ordered image paths, so neighbors in the list are
// the images the ordering considered most similar.
type orderListModel struct {
	paths  []string
	cursor int
	height int
	offset int
}

// newOrderListModel creates a list model over the ordered paths.
func newOrderListModel(paths []string) orderListModel {
	return orderListModel{paths: paths, height: 20}
}

func (m orderListModel) Init() tea.Cmd {
	return nil
}

func (m orderListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Height > 4 {
			m.height = msg.Height - 4
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.paths)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "g", "home":
			m.cursor, m.offset = 0, 0
		case "G", "end":
			m.cursor = len(m.paths) - 1
			if m.cursor >= m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	}
	return m, nil
}

func (m orderListModel) View() string {
	var b strings.Builder

	b.WriteString(styleHighlight.Bold(true).Render(fmt.Sprintf("Similarity order — %d images", len(m.paths))))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.paths) {
		end = len(m.paths)
	}
	for i := m.offset; i < end; i++ {
		line := fmt.Sprintf("%05d  %s", i, filepath.Base(m.paths[i]))
		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render("> " + line))
		default:
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move · g/G top/bottom · q quit"))
	return b.String()
}
