package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/folio/pkg/client"
	"github.com/naveenspark/folio/pkg/domain"
)

// filterCategoryMsg asks the app to filter the feed by slug ("" for all).
type filterCategoryMsg struct {
	slug string
}

type categoriesModel struct {
	client     client.Backend
	categories []domain.Category
	cursor     int // 0 is "all", i+1 is categories[i]
	active     string
	loaded     bool
	err        error
	width      int
	height     int
}

func newCategoriesModel(c client.Backend) categoriesModel {
	return categoriesModel{client: c}
}

func (m categoriesModel) Init() tea.Cmd {
	if m.loaded && m.err == nil {
		return nil
	}
	return loadCategories(m.client)
}

func (m categoriesModel) Update(msg tea.Msg) (categoriesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case categoriesLoadedMsg:
		m.loaded = true
		m.err = msg.err
		if msg.err == nil {
			m.categories = msg.categories
			if m.cursor > len(m.categories) {
				m.cursor = 0
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.categories) {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			return m, loadCategories(m.client)
		case "enter":
			slug := ""
			if m.cursor > 0 {
				slug = m.categories[m.cursor-1].Slug
			}
			m.active = slug
			return m, func() tea.Msg { return filterCategoryMsg{slug: slug} }
		}
	}
	return m, nil
}

func (m categoriesModel) View() string {
	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("CATEGORIES") + "\n\n")

	if !m.loaded {
		b.WriteString(" " + dimStyle.Render("loading categories..."))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(" " + errorStyle.Render("error: "+errorText(m.err)) + "  " + helpEntry("r", "retry"))
		return b.String()
	}

	row := func(i int, label, slug string, style func(string) string) {
		cursor := "  "
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
		}
		mark := ""
		if slug == m.active {
			mark = "  " + statusStyle.Render("✓")
		}
		b.WriteString(" " + cursor + style(label) + mark + "\n")
	}

	row(0, "All articles", "", func(s string) string {
		if m.cursor == 0 {
			return selectedStyle.Render(s)
		}
		return dimStyle.Render(s)
	})
	for i, c := range m.categories {
		c := c
		row(i+1, c.Name, c.Slug, func(s string) string {
			return CategoryStyle(c.Slug).Render("● ") + normalStyle.Render(s) + metaStyle.Render("  "+c.Slug)
		})
	}
	return b.String()
}
