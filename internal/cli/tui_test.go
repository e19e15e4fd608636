package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{}
}

func TestOrderListNavigation(t *testing.T) {
	m := newOrderListModel([]string{"/a.png", "/b.png", "/c.png"})

	// Cursor starts at the top and cannot move above it.
	next, _ := m.Update(keyMsg("up"))
	m = next.(orderListModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at top, want 0", m.cursor)
	}

	next, _ = m.Update(keyMsg("j"))
	m = next.(orderListModel)
	if m.cursor != 1 {
		t.Errorf("cursor = %d after j, want 1", m.cursor)
	}

	next, _ = m.Update(keyMsg("G"))
	m = next.(orderListModel)
	if m.cursor != 2 {
		t.Errorf("cursor = %d after G, want 2", m.cursor)
	}

	// Cursor cannot move past the last entry.
	next, _ = m.Update(keyMsg("down"))
	m = next.(orderListModel)
	if m.cursor != 2 {
		t.Errorf("cursor = %d after down at bottom, want 2", m.cursor)
	}

	next, _ = m.Update(keyMsg("g"))
	m = next.(orderListModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after g, want 0", m.cursor)
	}
}

func TestOrderListQuitKeys(t *testing.T) {
	m := newOrderListModel([]string{"/a.png"})
	for _, key := range []string{"q", "enter"} {
		_, cmd := m.Update(keyMsg(key))
		if cmd == nil {
			t.Errorf("key %q should quit", key)
		}
	}
}

func TestOrderListScrolling(t *testing.T) {
	paths := make([]string, 50)
	for i := range paths {
		paths[i] = "/img.png"
	}
	m := newOrderListModel(paths)
	m.height = 10

	// Jump to the bottom; the window must follow the cursor.
	next, _ := m.Update(keyMsg("G"))
	m = next.(orderListModel)
	if m.cursor != 49 {
		t.Fatalf("cursor = %d, want 49", m.cursor)
	}
	if m.offset != 40 {
		t.Errorf("offset = %d, want 40", m.offset)
	}
}

func TestOrderListView(t *testing.T) {
	m := newOrderListModel([]string{"/photos/beach.png", "/photos/city.png"})
	view := m.View()

	if !strings.Contains(view, "2 images") {
		t.Error("view should show the image count")
	}
	if !strings.Contains(view, "beach.png") || !strings.Contains(view, "city.png") {
		t.Error("view should list the image basenames")
	}
	if !strings.Contains(view, "00000") {
		t.Error("view should show position prefixes")
	}
}

func TestOrderListWindowResize(t *testing.T) {
	m := newOrderListModel([]string{"/a.png"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = next.(orderListModel)
	if m.height != 26 {
		t.Errorf("height = %d after resize, want 26", m.height)
	}
}
