package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/folio/internal/session"
	"github.com/naveenspark/folio/pkg/client"
)

type view int

const (
	viewFeed view = iota
	viewCategories
	viewAccount
)

// Deps holds what the TUI needs from the outside world.
type Deps struct {
	Client       client.Backend
	Session      *session.Manager
	BaseURL      string // used for "open on the web"
	PageSize     int
	MockFallback bool // shows a badge when the mock backend can answer
}

// App is the root Bubbletea model.
type App struct {
	deps        Deps
	view        view
	feed        feedModel
	categories  categoriesModel
	account     accountModel
	article     articleModel
	articleOpen bool
	helpOpen    bool
	width       int
	height      int
	frame       int // logo shimmer animation frame
}

// NewApp creates the TUI opened on the feed.
func NewApp(d Deps) App {
	if d.Session == nil {
		d.Session = session.NewManager(nil, nil)
	}
	return App{
		deps:       d,
		feed:       newFeedModel(d.Client, d.PageSize),
		categories: newCategoriesModel(d.Client),
		account:    newAccountModel(d.Client, d.Session),
		article:    newArticleModel(d.Client, d.Session, d.BaseURL),
	}
}

// NewLoginApp creates the TUI opened on the account form.
func NewLoginApp(d Deps) App {
	a := NewApp(d)
	a.view = viewAccount
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.feed.Init(), loadCategories(a.deps.Client), shimmerTickCmd())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.feed, _ = a.feed.Update(bodyMsg)
		a.categories, _ = a.categories.Update(bodyMsg)
		a.article, _ = a.article.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	// Async results go to their owner regardless of the current view.
	case feedLoadedMsg:
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd

	case categoriesLoadedMsg:
		a.feed, _ = a.feed.Update(msg)
		a.categories, _ = a.categories.Update(msg)
		return a, nil

	case filterCategoryMsg:
		a.view = viewFeed
		a.feed, cmd = a.feed.setCategory(msg.slug)
		return a, cmd

	case openArticleMsg:
		a.articleOpen = true
		a.article, cmd = a.article.open(msg.id)
		return a, cmd

	case closeArticleMsg:
		a.articleOpen = false
		a.article = a.article.close()
		return a, nil

	case articleLoadedMsg, commentsLoadedMsg, commentAddedMsg, copyResultMsg:
		a.article, cmd = a.article.Update(msg)
		return a, cmd

	case authResultMsg:
		a.account, cmd = a.account.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.updateKeys(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Help overlay captures all keys when open
	if a.helpOpen {
		switch msg.String() {
		case "h", "esc":
			a.helpOpen = false
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	// Article overlay captures all keys when open
	if a.articleOpen {
		if !a.article.composing {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "h":
				a.helpOpen = true
				return a, nil
			}
		}
		a.article, cmd = a.article.Update(msg)
		return a, cmd
	}

	if !a.isEditing() {
		switch msg.String() {
		case "h":
			a.helpOpen = true
			return a, nil
		case "q":
			return a, tea.Quit
		case "1":
			a.view = viewFeed
			return a, nil
		case "2":
			if a.view != viewCategories {
				a.view = viewCategories
				return a, a.categories.Init()
			}
			return a, nil
		case "3":
			a.view = viewAccount
			return a, nil
		case "esc":
			if a.view != viewFeed {
				a.view = viewFeed
				return a, nil
			}
		}
	} else if msg.String() == "esc" && a.view == viewAccount {
		a.view = viewFeed
		return a, nil
	}

	switch a.view {
	case viewFeed:
		a.feed, cmd = a.feed.Update(msg)
	case viewCategories:
		a.categories, cmd = a.categories.Update(msg)
	case viewAccount:
		a.account, cmd = a.account.Update(msg)
	}
	return a, cmd
}

// isEditing reports whether keystrokes should go to a text input rather
// than the global shortcuts.
func (a App) isEditing() bool {
	switch a.view {
	case viewFeed:
		return a.feed.editing
	case viewAccount:
		return !a.account.signedIn()
	}
	return false
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)

	var status []string
	if name := a.deps.Session.UserName(); name != "" {
		status = append(status, authorStyle.Render(name))
	} else if a.deps.Session.Active() {
		status = append(status, authorStyle.Render("signed in"))
	} else {
		status = append(status, metaStyle.Render("guest"))
	}
	if a.deps.MockFallback {
		status = append(status, offlineBadgeStyle.Render("offline-ready"))
	}
	statusLine := strings.Join(status, metaStyle.Render(" · "))

	header := center(logo, a.width) + "\n" + center(statusLine, a.width)

	tabs := []struct {
		key  string
		name string
		v    view
	}{
		{"1", "Feed", viewFeed},
		{"2", "Categories", viewCategories},
		{"3", "Account", viewAccount},
	}

	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view && !a.articleOpen {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	var body, help string
	switch a.view {
	case viewFeed:
		body = a.feed.View()
		if a.feed.editing {
			help = helpBar("enter", "search", "esc", "clear")
		} else {
			help = helpBar("1-3", "tabs", "j/k", "nav", "/", "search", "t", "category", "n/p", "page", "enter", "read", "h", "help", "q", "quit")
		}
	case viewCategories:
		body = a.categories.View()
		help = helpBar("1-3", "tabs", "j/k", "nav", "enter", "filter feed", "h", "help", "q", "quit")
	case viewAccount:
		body = a.account.View()
		help = " " + a.account.helpKeys()
	}

	if a.articleOpen {
		body = a.article.View()
		if a.article.composing {
			help = helpBar("enter", "post", "esc", "cancel")
		} else {
			help = helpBar("j/k", "scroll", "c", "comment", "y", "copy", "o", "open", "esc", "back")
		}
	}

	if a.helpOpen {
		body = helpView()
		help = helpBar("esc", "close", "q", "quit")
	}

	body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabBar.String(), body, help)
}

// center left-pads s so it sits in the middle of width columns.
func center(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
