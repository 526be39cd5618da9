package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/naveenspark/folio/internal/session"
	"github.com/naveenspark/folio/pkg/client"
	"github.com/naveenspark/folio/pkg/domain"
)

var errBoom = errors.New("boom")

func openArticle(t *testing.T, a App, id string) App {
	t.Helper()
	model, cmd := a.Update(openArticleMsg{id: id})
	return settle(t, model.(App), cmd)
}

func TestArticleLoadsWithComments(t *testing.T) {
	a := openArticle(t, started(t), "a1")

	if a.article.loading {
		t.Error("article still loading")
	}
	if a.article.article == nil || a.article.article.Title != "Building a Modern Blog with React" {
		t.Fatalf("article = %+v", a.article.article)
	}
	if len(a.article.comments) != 1 || a.article.comments[0].ID != "c1" {
		t.Errorf("comments = %+v, want [c1]", a.article.comments)
	}
	out := a.article.View()
	for _, want := range []string{"Alex Writer", "COMMENTS (1)", "Sam", "sign in to join"} {
		if !strings.Contains(out, want) {
			t.Errorf("article view missing %q", want)
		}
	}
}

func TestArticleNotFound(t *testing.T) {
	a := openArticle(t, started(t), "nope")
	if a.article.err == nil {
		t.Fatal("expected error for unknown article")
	}
	if !strings.Contains(a.article.View(), "not found") {
		t.Errorf("view = %q, want not found", a.article.View())
	}
}

func TestArticleCommentRequiresSession(t *testing.T) {
	a := openArticle(t, started(t), "a1")
	a = press(t, a, "c")

	if a.article.composing {
		t.Fatal("composing opened without a session")
	}
	if !strings.Contains(a.article.statusMsg, "sign in") || !strings.Contains(a.article.statusMsg, "esc, then 3") {
		t.Errorf("statusMsg = %q, want sign-in hint that closes the article first", a.article.statusMsg)
	}
}

func TestArticlePostComment(t *testing.T) {
	a := started(t)
	a.deps.Session.Set(domain.Session{Token: "t", User: &domain.User{Name: "Riley"}})
	a = openArticle(t, a, "a3")
	if len(a.article.comments) != 0 {
		t.Fatalf("a3 should start with no comments, got %d", len(a.article.comments))
	}

	a = press(t, a, "c")
	if !a.article.composing {
		t.Fatal("expected composing after c with a session")
	}
	// "q" and "h" are text while composing.
	a = press(t, a, "h", "i", " ", "q")
	if !a.articleOpen {
		t.Fatal("article closed while composing")
	}
	a = press(t, a, "enter")

	if a.article.composing {
		t.Error("still composing after a successful post")
	}
	if len(a.article.comments) != 1 {
		t.Fatalf("comments = %d, want 1", len(a.article.comments))
	}
	if got := a.article.comments[0].Body; got != "hi q" {
		t.Errorf("comment body = %q, want %q", got, "hi q")
	}
	if a.article.statusMsg != "comment posted" {
		t.Errorf("statusMsg = %q", a.article.statusMsg)
	}

	// A second comment lands on top.
	a = press(t, a, "c", "2", "enter")
	if len(a.article.comments) != 2 || a.article.comments[0].Body != "2" {
		t.Errorf("newest comment not first: %+v", a.article.comments)
	}
}

func TestArticleBlankCommentRejectedLocally(t *testing.T) {
	a := started(t)
	a.deps.Session.Set(domain.Session{Token: "t"})
	a = openArticle(t, a, "a1")
	a = press(t, a, "c", " ", "enter")

	if a.article.submitting {
		t.Error("blank comment submitted")
	}
	if !a.article.composing {
		t.Error("compose closed on blank comment")
	}
	if a.article.statusMsg != "comment cannot be empty" {
		t.Errorf("statusMsg = %q", a.article.statusMsg)
	}
}

func TestArticleCommentFailureKeepsDraft(t *testing.T) {
	m := newArticleModel(nil, nil, "")
	m.seq = 3
	m.composing = true
	m.draft = "keep me"
	m.submitting = true

	m, _ = m.Update(commentAddedMsg{seq: 3, err: errBoom})
	if m.submitting {
		t.Error("submitting still set")
	}
	if m.draft != "keep me" || !m.composing {
		t.Errorf("draft lost on failure: composing=%v draft=%q", m.composing, m.draft)
	}
	if !strings.Contains(m.statusMsg, "boom") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestArticleDropsResponsesAfterClose(t *testing.T) {
	m := newArticleModel(nil, nil, "")
	m, _ = m.open("a1")
	seq := m.seq
	m = m.close()

	m, _ = m.Update(articleLoadedMsg{seq: seq, article: &domain.Article{ID: "a1"}})
	if m.article != nil {
		t.Error("late article response applied after close")
	}
}

func TestArticleEscCloses(t *testing.T) {
	a := openArticle(t, started(t), "a1")
	a = press(t, a, "esc")
	if a.articleOpen {
		t.Error("article overlay still open after esc")
	}
}

func TestArticleOpenOnWeb(t *testing.T) {
	a := openArticle(t, started(t), "a2")
	var opened string
	a.article.openURL = func(u string) error { opened = u; return nil }

	a = press(t, a, "o")
	if opened != "https://blog.example.com/article/a2" {
		t.Errorf("opened %q", opened)
	}

	a.article.openURL = func(string) error { return errBoom }
	a = press(t, a, "o")
	if a.article.statusMsg != "https://blog.example.com/article/a2" {
		t.Errorf("statusMsg = %q, want the link when the browser fails", a.article.statusMsg)
	}
}

func TestArticleCopyResult(t *testing.T) {
	m := newArticleModel(nil, nil, "")
	m, _ = m.Update(copyResultMsg{})
	if m.statusMsg != "copied!" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
	m, _ = m.Update(copyResultMsg{err: errBoom})
	if !strings.Contains(m.statusMsg, "copy failed") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestArticleClipboardText(t *testing.T) {
	a := domain.Article{
		Title:    "Hello",
		Author:   domain.Author{Name: "Ann"},
		Category: domain.CategoryRef{Name: "Design"},
		Content:  "<p>First</p><p>Second</p>",
	}
	got := articleClipboardText(a)
	for _, want := range []string{"Hello", "Ann · Design", "First", "Second"} {
		if !strings.Contains(got, want) {
			t.Errorf("clipboard text missing %q: %q", want, got)
		}
	}
	if strings.Contains(got, "<p>") {
		t.Errorf("clipboard text kept markup: %q", got)
	}
}

// commentServer accepts comments with 201 and an empty body, like a backend
// that does not echo the created resource, and serves the stored list.
type commentServer struct {
	mu     sync.Mutex
	posted []string
}

func (cs *commentServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	switch r.Method {
	case http.MethodPost:
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		cs.posted = append(cs.posted, req["body"])
		w.WriteHeader(http.StatusCreated)
	default:
		comments := make([]domain.Comment, 0, len(cs.posted))
		for i := len(cs.posted) - 1; i >= 0; i-- {
			comments = append(comments, domain.Comment{ID: fmt.Sprintf("s%d", i), Body: cs.posted[i]})
		}
		json.NewEncoder(w).Encode(map[string][]domain.Comment{"comments": comments}) //nolint:errcheck
	}
}

func newServerArticleModel(t *testing.T, cs *commentServer) articleModel {
	t.Helper()
	srv := httptest.NewServer(cs)
	t.Cleanup(srv.Close)

	mgr := session.NewManager(nil, nil)
	mgr.Set(domain.Session{Token: "tok"})
	m := newArticleModel(client.New(srv.URL, client.WithLogger(log.New(io.Discard, "", 0))), mgr, srv.URL)
	m.id = "a1"
	m.seq = 1
	m.article = &domain.Article{ID: "a1", Title: "T"}
	m.composing = true
	return m
}

func TestArticleCommentAcceptedWithoutBodyReloadsList(t *testing.T) {
	cs := &commentServer{}
	m := newServerArticleModel(t, cs)
	m.draft = "first!"

	m, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	added, ok := cmd().(commentAddedMsg)
	if !ok {
		t.Fatalf("expected commentAddedMsg")
	}
	if added.err != nil || added.comment != nil {
		t.Fatalf("AddComment = (%v, %v), want (nil, nil) for an empty 201", added.comment, added.err)
	}

	m, cmd = m.Update(added)
	if m.composing || m.draft != "" {
		t.Errorf("compose not reset: composing=%v draft=%q", m.composing, m.draft)
	}
	if cmd == nil {
		t.Fatal("expected a comment reload after an empty acknowledgement")
	}
	m, _ = m.Update(cmd())
	if len(m.comments) != 1 || m.comments[0].Body != "first!" {
		t.Errorf("comments = %+v, want the server's list with the new comment", m.comments)
	}
	if m.statusMsg != "comment posted" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestArticleCommentBodyTrimmedBeforeSend(t *testing.T) {
	cs := &commentServer{}
	m := newServerArticleModel(t, cs)
	m.draft = "  padded body \t "

	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	cmd()

	cs.mu.Lock()
	defer cs.mu.Unlock()
	if len(cs.posted) != 1 || cs.posted[0] != "padded body" {
		t.Errorf("posted bodies = %q, want [\"padded body\"]", cs.posted)
	}
}
