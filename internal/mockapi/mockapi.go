// Package mockapi is an in-memory stand-in for the blog backend. It serves the
// same response shapes as the real API from fixed seed data so the reader
// stays usable offline.
package mockapi

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/naveenspark/folio/pkg/client"
	"github.com/naveenspark/folio/pkg/domain"
)

var _ client.Backend = (*Backend)(nil)

// Backend implements client.Backend over seed data. Articles and categories
// are immutable; comments live for the lifetime of the Backend.
type Backend struct {
	now        func() time.Time
	authorName func() string
	categories []domain.Category
	articles   []domain.Article

	mu       sync.RWMutex
	comments map[string][]domain.Comment
}

// Option configures a Backend.
type Option func(*Backend)

// WithClock overrides the time source used for seed and comment timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// WithAuthorName sets the function that names new comment authors,
// typically the signed-in user. Empty names fall back to "Guest".
func WithAuthorName(fn func() string) Option {
	return func(b *Backend) { b.authorName = fn }
}

// WithArticles replaces the seeded articles.
func WithArticles(articles []domain.Article) Option {
	return func(b *Backend) { b.articles = articles }
}

// New returns a Backend loaded with seed data.
func New(opts ...Option) *Backend {
	b := &Backend{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	now := b.now()
	if b.articles == nil {
		b.articles = seedArticles(now)
	}
	b.categories = seedCategories()
	b.comments = seedComments(now)
	return b
}

// Reset restores the seed comments, discarding any added since New.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.comments = seedComments(b.now())
}

// ListCategories returns the static category list.
func (b *Backend) ListCategories(context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(b.categories))
	copy(out, b.categories)
	return out, nil
}

// ListArticles filters by category slug and search term, then paginates.
func (b *Backend) ListArticles(_ context.Context, q domain.ArticleQuery) (*domain.ArticlePage, error) {
	q = q.Normalize()
	term := strings.ToLower(q.Query)

	filtered := make([]domain.Article, 0, len(b.articles))
	for _, a := range b.articles {
		if q.Category != "" && a.Category.Slug != q.Category {
			continue
		}
		if term != "" && !matches(a, term) {
			continue
		}
		filtered = append(filtered, a)
	}

	items, meta := paginate(filtered, q.Page, q.PageSize)
	return &domain.ArticlePage{Articles: items, Meta: meta}, nil
}

// GetArticle returns the article with the exact id.
func (b *Backend) GetArticle(_ context.Context, id string) (*domain.Article, error) {
	for i := range b.articles {
		if b.articles[i].ID == id {
			a := b.articles[i]
			return &a, nil
		}
	}
	return nil, &client.NotFoundError{Resource: "article", ID: id}
}

// ListComments returns a copy of the article's comments, newest first.
func (b *Backend) ListComments(_ context.Context, articleID string) ([]domain.Comment, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	src := b.comments[articleID]
	out := make([]domain.Comment, len(src))
	copy(out, src)
	return out, nil
}

// AddComment validates the body and prepends a new comment to the article's list.
func (b *Backend) AddComment(_ context.Context, articleID, body string) (*domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, &client.ValidationError{Message: "Comment body is required"}
	}

	name := ""
	if b.authorName != nil {
		name = b.authorName()
	}
	if name == "" {
		name = "Guest"
	}

	c := domain.Comment{
		ID:        newCommentID(),
		ArticleID: articleID,
		Author:    domain.CommentAuthor{Name: name},
		Body:      body,
		CreatedAt: b.now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.comments[articleID] = append([]domain.Comment{c}, b.comments[articleID]...)
	return &c, nil
}

// Login accepts any non-empty credentials. The user is named after the
// email's local part.
func (b *Backend) Login(_ context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, &client.ValidationError{Message: "Email and password are required"}
	}
	name, _, _ := strings.Cut(email, "@")
	if name == "" {
		name = "User"
	}
	return &domain.Session{
		Token: MockToken,
		User:  &domain.User{ID: "mock-user", Name: name, Email: email},
	}, nil
}

// Register accepts any non-empty name, email and password.
func (b *Backend) Register(_ context.Context, name, email, password string) (*domain.Session, error) {
	if name == "" || email == "" || password == "" {
		return nil, &client.ValidationError{Message: "Name, email and password are required"}
	}
	return &domain.Session{
		Token: MockToken,
		User:  &domain.User{ID: "mock-user", Name: name, Email: email},
	}, nil
}

// matches reports whether term occurs in the article's searchable text.
// term must already be lowercased.
func matches(a domain.Article, term string) bool {
	hay := strings.ToLower(strings.Join([]string{a.Title, a.Excerpt, a.Author.Name, a.Category.Name}, " "))
	return strings.Contains(hay, term)
}

// paginate slices items to [(page-1)*size, page*size). page and size must be >= 1.
func paginate(items []domain.Article, page, size int) ([]domain.Article, domain.PageMeta) {
	meta := domain.NewPageMeta(page, size, len(items))
	start := (page - 1) * size
	if start > len(items) {
		start = len(items)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	out := make([]domain.Article, end-start)
	copy(out, items[start:end])
	return out, meta
}

func newCommentID() string {
	return "c_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
