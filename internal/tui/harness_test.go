package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/folio/internal/mockapi"
	"github.com/naveenspark/folio/internal/session"
)

func newTestDeps() Deps {
	return Deps{
		Client:   mockapi.New(),
		Session:  session.NewManager(nil, nil),
		BaseURL:  "https://blog.example.com",
		PageSize: 2,
	}
}

func newTestApp() App {
	model, _ := NewApp(newTestDeps()).Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return model.(App)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and any batched commands, returning the produced
// messages. Shimmer ticks are skipped.
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil, shimmerTickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle feeds cmd's messages back into the app until no commands remain.
func settle(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	queue := collect(t, cmd)
	for i := 0; len(queue) > 0; i++ {
		if i > 100 {
			t.Fatal("settle: too many messages")
		}
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		model, next := a.Update(msg)
		a = model.(App)
		queue = append(queue, collect(t, next)...)
	}
	return a
}

// press sends a key to the app and settles the resulting commands.
func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		model, cmd := a.Update(key(k))
		a = settle(t, model.(App), cmd)
	}
	return a
}

// started returns a test app with its Init commands settled, minus the
// shimmer loop.
func started(t *testing.T) App {
	t.Helper()
	a := newTestApp()
	return settle(t, a, tea.Batch(a.feed.Init(), loadCategories(a.deps.Client)))
}
