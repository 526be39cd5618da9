package tui

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/folio/internal/browser"
	"github.com/naveenspark/folio/internal/render"
	"github.com/naveenspark/folio/internal/session"
	"github.com/naveenspark/folio/pkg/client"
	"github.com/naveenspark/folio/pkg/domain"
)

type articleLoadedMsg struct {
	seq     int
	article *domain.Article
	err     error
}

type commentsLoadedMsg struct {
	seq      int
	comments []domain.Comment
	err      error
}

type commentAddedMsg struct {
	seq     int
	comment *domain.Comment
	err     error
}

type copyResultMsg struct{ err error }

// closeArticleMsg asks the app to close the article overlay.
type closeArticleMsg struct{}

type articleModel struct {
	client     client.Backend
	session    *session.Manager
	baseURL    string
	openURL    func(string) error
	id         string
	article    *domain.Article
	comments   []domain.Comment
	seq        int
	loading    bool
	err        error
	commentErr error
	composing  bool
	draft      string
	submitting bool
	statusMsg  string
	scroll     int
	width      int
	height     int
}

func newArticleModel(c client.Backend, s *session.Manager, baseURL string) articleModel {
	return articleModel{client: c, session: s, baseURL: baseURL, openURL: browser.Open}
}

// open resets the model for article id and fetches it with its comments.
// The sequence number outlives the reset so late responses for a
// previously open article are dropped.
func (m articleModel) open(id string) (articleModel, tea.Cmd) {
	seq := m.seq + 1
	m = articleModel{
		client:  m.client,
		session: m.session,
		baseURL: m.baseURL,
		openURL: m.openURL,
		width:   m.width,
		height:  m.height,
		id:      id,
		seq:     seq,
		loading: true,
	}
	c := m.client
	articleCmd := func() tea.Msg {
		a, err := c.GetArticle(context.Background(), id)
		return articleLoadedMsg{seq: seq, article: a, err: err}
	}
	return m, tea.Batch(articleCmd, m.loadComments())
}

// loadComments fetches the comment list under the current sequence number.
func (m articleModel) loadComments() tea.Cmd {
	seq, id, c := m.seq, m.id, m.client
	return func() tea.Msg {
		cs, err := c.ListComments(context.Background(), id)
		return commentsLoadedMsg{seq: seq, comments: cs, err: err}
	}
}

// close invalidates in-flight requests for the current article.
func (m articleModel) close() articleModel {
	m.seq++
	m.composing = false
	m.draft = ""
	return m
}

func (m articleModel) Update(msg tea.Msg) (articleModel, tea.Cmd) {
	switch msg := msg.(type) {
	case articleLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.article = msg.article
		m.err = msg.err
		return m, nil

	case commentsLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.comments = msg.comments
		m.commentErr = msg.err
		return m, nil

	case commentAddedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			m.statusMsg = "comment failed: " + errorText(msg.err)
			return m, nil
		}
		m.composing = false
		m.draft = ""
		m.statusMsg = "comment posted"
		if msg.comment == nil {
			// Accepted without echoing the comment back; show the server's list.
			return m, m.loadComments()
		}
		m.comments = append([]domain.Comment{*msg.comment}, m.comments...)
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "copied!"
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.composing {
			return m.updateCompose(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m articleModel) updateKeys(msg tea.KeyMsg) (articleModel, tea.Cmd) {
	m.statusMsg = ""
	switch msg.String() {
	case "esc", "backspace":
		return m, func() tea.Msg { return closeArticleMsg{} }
	case "j", "down":
		m.scroll++
	case "k", "up":
		if m.scroll > 0 {
			m.scroll--
		}
	case "c":
		if m.article == nil {
			return m, nil
		}
		if m.session == nil || !m.session.Active() {
			m.statusMsg = "sign in to comment -- esc, then 3 for Account"
			return m, nil
		}
		m.composing = true
	case "y":
		if m.article != nil {
			text := articleClipboardText(*m.article)
			return m, func() tea.Msg {
				return copyResultMsg{err: clipboard.WriteAll(text)}
			}
		}
	case "o":
		if m.article == nil {
			return m, nil
		}
		if m.baseURL == "" {
			m.statusMsg = "no backend address configured"
			return m, nil
		}
		link := strings.TrimRight(m.baseURL, "/") + "/article/" + url.PathEscape(m.article.ID)
		if err := m.openURL(link); err != nil {
			m.statusMsg = link
		} else {
			m.statusMsg = "opened in browser"
		}
	}
	return m, nil
}

func (m articleModel) updateCompose(msg tea.KeyMsg) (articleModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.composing = false
		m.draft = ""
		return m, nil
	case "enter":
		if m.submitting {
			return m, nil
		}
		body := strings.TrimSpace(m.draft)
		if body == "" {
			m.statusMsg = "comment cannot be empty"
			return m, nil
		}
		m.submitting = true
		seq, id, c := m.seq, m.id, m.client
		return m, func() tea.Msg {
			comment, err := c.AddComment(context.Background(), id, body)
			return commentAddedMsg{seq: seq, comment: comment, err: err}
		}
	default:
		m.draft = editRune(m.draft, msg.String())
	}
	return m, nil
}

// articleClipboardText formats an article as plain text for copying.
func articleClipboardText(a domain.Article) string {
	return a.Title + "\n" + a.Author.Name + " · " + a.Category.Name + "\n\n" + render.PlainText(a.Content) + "\n"
}

func (m articleModel) View() string {
	if m.loading && m.article == nil {
		return " " + dimStyle.Render("loading article...")
	}
	if m.err != nil {
		return " " + errorStyle.Render("error: "+errorText(m.err)) + "\n\n " + helpEntry("esc", "back")
	}
	if m.article == nil {
		return ""
	}
	a := m.article

	textW := m.width - 4
	if textW < 20 {
		textW = 20
	}

	var lines []string
	for _, l := range render.Wrap(cleanTitle(a.Title), textW) {
		lines = append(lines, " "+titleStyle.Render(l))
	}
	meta := authorStyle.Render(a.Author.Name) +
		metaStyle.Render(" · ") + CategoryStyle(a.Category.Slug).Render(a.Category.Name) +
		metaStyle.Render(" · "+formatTime(a.CreatedAt))
	lines = append(lines, " "+meta)
	if len(a.Tags) > 0 {
		lines = append(lines, " "+dimStyle.Render("#"+strings.Join(a.Tags, " #")))
	}
	lines = append(lines, "")

	for _, l := range render.Wrap(render.PlainText(a.Content), textW) {
		lines = append(lines, " "+styleContentLine(l))
	}
	lines = append(lines, "")

	lines = append(lines, " "+sectionHeaderStyle.Render(fmt.Sprintf("COMMENTS (%d)", len(m.comments))))
	if m.commentErr != nil {
		lines = append(lines, " "+errorStyle.Render("could not load comments: "+errorText(m.commentErr)))
	}
	for _, c := range m.comments {
		lines = append(lines, " "+authorStyle.Render(c.Author.Name)+"  "+commentTimeStyle.Render(formatTime(c.CreatedAt)))
		for _, l := range render.Wrap(c.Body, textW-2) {
			lines = append(lines, "   "+commentTextStyle.Render(l))
		}
	}

	// Scroll the body, keeping the compose/status footer pinned.
	bodyH := m.height - 3
	if bodyH < 5 {
		bodyH = 5
	}
	scroll := m.scroll
	if limit := len(lines) - bodyH; scroll > limit {
		scroll = limit
	}
	if scroll < 0 {
		scroll = 0
	}
	end := scroll + bodyH
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	b.WriteString(strings.Join(lines[scroll:end], "\n"))
	b.WriteString("\n\n")

	switch {
	case m.composing:
		b.WriteString(" " + inputPromptStyle.Render("> ") + renderInput(m.draft, "write a comment...", !m.submitting))
		if m.submitting {
			b.WriteString("  " + dimStyle.Render("posting..."))
		}
	case m.session != nil && m.session.Active():
		b.WriteString(" " + inputPromptStyle.Render("> ") + inputPlaceholderStyle.Render("press c to comment"))
	default:
		b.WriteString(" " + inputPlaceholderStyle.Render("sign in to join the conversation"))
	}
	if m.statusMsg != "" {
		b.WriteString("  " + statusStyle.Render(m.statusMsg))
	}
	return b.String()
}

// styleContentLine applies light styling to markdown-ish lines.
func styleContentLine(l string) string {
	switch {
	case strings.HasPrefix(l, "#"):
		return headingStyle.Render(cleanTitle(l))
	case strings.HasPrefix(l, ">"):
		return quoteStyle.Render(strings.TrimSpace(strings.TrimPrefix(l, ">")))
	case strings.HasPrefix(l, "- "), strings.HasPrefix(l, "* "):
		return accentStyle.Render("•") + normalStyle.Render(l[1:])
	}
	return normalStyle.Render(l)
}
