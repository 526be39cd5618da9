package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/folio/pkg/client"
	"github.com/naveenspark/folio/pkg/domain"
)

// feedLoadedMsg carries one page of the feed. seq identifies the request;
// responses for anything but the latest request are dropped.
type feedLoadedMsg struct {
	seq  int
	page *domain.ArticlePage
	more bool // load-more: append instead of replace
	err  error
}

// categoriesLoadedMsg carries the category list shared by feed and categories views.
type categoriesLoadedMsg struct {
	categories []domain.Category
	err        error
}

// openArticleMsg asks the app to open the article overlay.
type openArticleMsg struct {
	id string
}

type feedModel struct {
	client     client.Backend
	articles   []domain.Article
	meta       domain.PageMeta
	query      domain.ArticleQuery
	categories []domain.Category
	cursor     int
	search     string
	editing    bool // true when typing in search
	seq        int
	loading    bool
	err        error
	width      int
	height     int
}

func newFeedModel(c client.Backend, pageSize int) feedModel {
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	return feedModel{
		client:  c,
		query:   domain.ArticleQuery{Page: 1, PageSize: pageSize},
		seq:     1,
		loading: true,
	}
}

// Init fetches the first page under the sequence number set by newFeedModel.
func (m feedModel) Init() tea.Cmd {
	return m.fetch(false)
}

// load issues a list request for m.query, bumping the sequence number so
// any in-flight response becomes stale.
func (m feedModel) load(more bool) (feedModel, tea.Cmd) {
	m.seq++
	m.loading = true
	return m, m.fetch(more)
}

func (m feedModel) fetch(more bool) tea.Cmd {
	seq, q, c := m.seq, m.query, m.client
	return func() tea.Msg {
		page, err := c.ListArticles(context.Background(), q)
		return feedLoadedMsg{seq: seq, page: page, more: more, err: err}
	}
}

func loadCategories(c client.Backend) tea.Cmd {
	return func() tea.Msg {
		cats, err := c.ListCategories(context.Background())
		return categoriesLoadedMsg{categories: cats, err: err}
	}
}

// setCategory filters the feed by slug and reloads from page 1.
func (m feedModel) setCategory(slug string) (feedModel, tea.Cmd) {
	m.query.Category = slug
	m.query.Page = 1
	m.cursor = 0
	return m.load(false)
}

func (m feedModel) Update(msg tea.Msg) (feedModel, tea.Cmd) {
	switch msg := msg.(type) {
	case feedLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		if msg.more {
			m.articles = append(m.articles, msg.page.Articles...)
		} else {
			m.articles = msg.page.Articles
			m.cursor = 0
		}
		m.meta = msg.page.Meta
		m.query.Page = m.meta.Page
		if m.cursor >= len(m.articles) {
			m.cursor = 0
		}
		return m, nil

	case categoriesLoadedMsg:
		if msg.err == nil {
			m.categories = msg.categories
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m feedModel) updateSearch(msg tea.KeyMsg) (feedModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.query.Query = strings.TrimSpace(m.search)
		m.query.Page = 1
		return m.load(false)
	case "esc":
		m.editing = false
		m.search = ""
		m.query.Query = ""
		m.query.Page = 1
		return m.load(false)
	default:
		m.search = editRune(m.search, msg.String())
	}
	return m, nil
}

func (m feedModel) updateList(msg tea.KeyMsg) (feedModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.articles)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(m.articles) {
			id := m.articles[m.cursor].ID
			return m, func() tea.Msg { return openArticleMsg{id: id} }
		}
	case "/":
		m.editing = true
		m.search = ""
	case "n", "right":
		if m.meta.HasNext() {
			m.query.Page = m.meta.Page + 1
			return m.load(false)
		}
	case "p", "left":
		if m.meta.HasPrev() {
			m.query.Page = m.meta.Page - 1
			return m.load(false)
		}
	case "m":
		if m.meta.HasNext() {
			m.query.Page = m.meta.Page + 1
			return m.load(true)
		}
	case "t":
		return m.setCategory(nextCategory(m.categories, m.query.Category))
	case "r":
		return m.load(false)
	}
	return m, nil
}

// nextCategory cycles: no filter -> first slug -> ... -> last slug -> no filter.
func nextCategory(cats []domain.Category, current string) string {
	if len(cats) == 0 {
		return ""
	}
	if current == "" {
		return cats[0].Slug
	}
	for i, c := range cats {
		if c.Slug == current {
			if i+1 < len(cats) {
				return cats[i+1].Slug
			}
			return ""
		}
	}
	return ""
}

func (m feedModel) View() string {
	var b strings.Builder

	// Search line
	if m.editing {
		b.WriteString(" " + searchStyle.Render("/ "+m.search+"█"))
	} else if m.query.Query != "" {
		b.WriteString(" " + searchStyle.Render("/ "+m.query.Query))
	} else {
		b.WriteString(" " + dimStyle.Render("/ search..."))
	}
	b.WriteString("\n")

	// Category bar
	b.WriteString(" ")
	if m.query.Category == "" {
		b.WriteString(selectedStyle.Render("all"))
	} else {
		b.WriteString(dimStyle.Render("all"))
	}
	for _, c := range m.categories {
		b.WriteString("  ")
		if c.Slug == m.query.Category {
			b.WriteString(CategoryStyle(c.Slug).Underline(true).Render(c.Name))
		} else {
			b.WriteString(dimStyle.Render(c.Name))
		}
	}
	b.WriteString("  " + helpKeyStyle.Render("t") + "\n")

	sepW := m.width - 2
	if sepW < 4 {
		sepW = 4
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")

	if m.loading && len(m.articles) == 0 {
		b.WriteString(" " + dimStyle.Render("loading feed..."))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(" " + errorStyle.Render("error: "+errorText(m.err)) + "  " + helpEntry("r", "retry"))
		return b.String()
	}
	if len(m.articles) == 0 {
		b.WriteString(" " + dimStyle.Render("no articles found"))
		return b.String()
	}

	b.WriteString(m.viewList())
	b.WriteString("\n" + m.viewPager())
	return b.String()
}

func (m feedModel) viewList() string {
	var b strings.Builder

	// Each article takes three lines: title, meta, excerpt.
	available := m.height - 6
	if available < 6 {
		available = 6
	}
	maxVisible := available / 3
	if maxVisible < 2 {
		maxVisible = 2
	}

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}

	textW := m.width - 6
	if textW < 20 {
		textW = 20
	}

	for i := start; i < len(m.articles) && i < start+maxVisible; i++ {
		a := m.articles[i]

		cursor := "  "
		ts := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			ts = titleStyle
		}

		dot := CategoryStyle(a.Category.Slug).Render("●") + " "
		b.WriteString(" " + cursor + dot + ts.Render(truncStr(cleanTitle(a.Title), textW)) + "\n")

		meta := authorStyle.Render(a.Author.Name) +
			metaStyle.Render(" · ") + CategoryStyle(a.Category.Slug).Render(a.Category.Name) +
			metaStyle.Render(" · "+formatTime(a.CreatedAt))
		b.WriteString("     " + meta + "\n")

		excerpt := lipgloss.NewStyle().Width(textW).Render(truncStr(a.Excerpt, textW))
		b.WriteString("     " + commentTextStyle.Render(excerpt) + "\n")
	}
	return b.String()
}

func (m feedModel) viewPager() string {
	pager := fmt.Sprintf("page %d of %d · %d articles", m.meta.Page, m.meta.TotalPages, m.meta.Total)
	out := " " + metaStyle.Render(pager)
	if m.meta.HasPrev() {
		out += "  " + helpEntry("p", "prev")
	}
	if m.meta.HasNext() {
		out += "  " + helpEntry("n", "next") + "  " + helpEntry("m", "more")
	}
	if m.loading {
		out += "  " + dimStyle.Render("loading...")
	}
	return out
}
