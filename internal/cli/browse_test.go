package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/packnav/pkg/navigator"
)

func newTestBrowser(t *testing.T) *browseModel {
	t.Helper()
	m := newBrowseModel(context.Background(), nil, filepath.Join(t.TempDir(), "snap.svg"))
	m.cli, m.sess = newTestSessionCLI(t, navigator.WithAffordance(m.affordance()))
	m.syncCursor()
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys to the model and returns the command of the last one.
func press(m *browseModel, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

// expansion runs cmd and returns the expandedMsg it produces, if any.
func expansion(cmd tea.Cmd) (expandedMsg, bool) {
	if cmd == nil {
		return expandedMsg{}, false
	}
	switch msg := cmd().(type) {
	case expandedMsg:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if exp, ok := expansion(c); ok {
				return exp, true
			}
		}
	}
	return expandedMsg{}, false
}

func TestBrowseCursorAndZoom(t *testing.T) {
	m := newTestBrowser(t)

	press(m, "down", "k", "j")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	press(m, "k", "enter")
	if got := m.sess.nav.Focus().Name; got != "docs" {
		t.Fatalf("focus = %q, want docs", got)
	}
	if m.cursor != 0 {
		t.Errorf("cursor should reset when focus moves, got %d", m.cursor)
	}
	if !strings.Contains(m.View(), "guide") {
		t.Error("view should list the children of docs")
	}

	press(m, "backspace")
	if got := m.sess.nav.Focus().Name; got != "root" {
		t.Errorf("focus = %q after backspace, want root", got)
	}
}

func TestBrowseExpansion(t *testing.T) {
	m := newTestBrowser(t)

	cmd := press(m, "j", "enter")
	if m.loading == nil {
		t.Fatal("entering src should start an expansion")
	}
	if !strings.Contains(m.View(), "Loading src") {
		t.Error("view should show the loading line")
	}
	if cmd := press(m, "enter"); cmd != nil {
		if _, ok := expansion(cmd); ok {
			t.Error("a second expansion should not start while one is loading")
		}
	}

	msg, ok := expansion(cmd)
	if !ok {
		t.Fatal("begin should return a fetch command")
	}
	m.Update(msg)
	if m.loading != nil {
		t.Error("loading should clear once the payload arrives")
	}
	src := m.sess.nav.Focus()
	if m.sess.nav.Link(src) == nil {
		t.Fatal("src should be linked to its nested level")
	}
	if m.failure || !strings.Contains(m.status, "Loaded src") {
		t.Errorf("status = %q (failure %v)", m.status, m.failure)
	}
	if !strings.Contains(m.View(), "render") {
		t.Error("view should list the nested children")
	}
}

func TestBrowseCreateNode(t *testing.T) {
	m := newTestBrowser(t)

	press(m, "j", "j", "enter")
	if !m.editing || m.sess.nav.Creating() == nil {
		t.Fatal("selecting + should open the name input")
	}

	press(m, "enter")
	if !m.editing || !m.failure {
		t.Error("an empty name should keep the input open with an error")
	}

	press(m, "lib", "enter")
	if m.editing {
		t.Error("input should close after a valid name")
	}
	if got := names(m.sess.children()); got != "docs,src,lib,+" {
		t.Errorf("children = %q, want docs,src,lib,+", got)
	}
}

func TestBrowseCancelCreate(t *testing.T) {
	m := newTestBrowser(t)

	press(m, "j", "j", "enter", "x", "esc")
	if m.editing || m.sess.nav.Creating() != nil {
		t.Error("esc should cancel creation")
	}
	if got := names(m.sess.children()); got != "docs,src,+" {
		t.Errorf("children = %q, cancel should not change the tree", got)
	}
}

func TestBrowseSnapshot(t *testing.T) {
	m := newTestBrowser(t)

	press(m, "w")
	data, err := os.ReadFile(m.snapshot)
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	if !strings.Contains(string(data), ">docs</text>") {
		t.Error("snapshot should contain the focused level's labels")
	}
}

func TestBrowseQuit(t *testing.T) {
	m := newTestBrowser(t)
	cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
