package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naveenspark/folio/pkg/domain"
)

// Backend is the set of blog operations. *Client implements it over HTTP;
// the mock backend implements it over seed data. The client falls back to a
// second Backend operation-by-operation, never by inspecting request paths.
type Backend interface {
	ListArticles(ctx context.Context, q domain.ArticleQuery) (*domain.ArticlePage, error)
	GetArticle(ctx context.Context, id string) (*domain.Article, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListComments(ctx context.Context, articleID string) ([]domain.Comment, error)
	AddComment(ctx context.Context, articleID, body string) (*domain.Comment, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, name, email, password string) (*domain.Session, error)
}

var _ Backend = (*Client)(nil)

// Client is the blog API client.
type Client struct {
	baseURL    string
	token      func() string
	fallback   Backend
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets the function consulted for a bearer token on every request.
func WithTokenSource(fn func() string) Option {
	return func(c *Client) { c.token = fn }
}

// WithFallback routes operations to b when the backend is unreachable.
func WithFallback(b Backend) Option {
	return func(c *Client) { c.fallback = b }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for fallback and request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new API client. An empty baseURL yields relative paths,
// which only a fallback backend can serve.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FallbackEnabled reports whether a fallback backend is configured.
func (c *Client) FallbackEnabled() bool {
	return c.fallback != nil
}

// ListArticles fetches one page of the feed with optional category and search filters.
func (c *Client) ListArticles(ctx context.Context, q domain.ArticleQuery) (*domain.ArticlePage, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Query != "" {
		params.Set("q", q.Query)
	}
	path := "/api/articles"
	if enc := params.Encode(); enc != "" {
		path += "?" + enc
	}

	var page domain.ArticlePage
	if err := c.get(ctx, path, &page); err != nil {
		fb, err := fallback(ctx, c, "ListArticles", err, func(b Backend) (*domain.ArticlePage, error) {
			return b.ListArticles(ctx, q)
		})
		if err != nil {
			return nil, fmt.Errorf("client.ListArticles: %w", err)
		}
		return fb, nil
	}
	return &page, nil
}

// GetArticle fetches a single article by ID.
func (c *Client) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	var resp struct {
		Article *domain.Article `json:"article"`
	}
	if err := c.get(ctx, "/api/articles/"+url.PathEscape(id), &resp); err != nil {
		fb, err := fallback(ctx, c, "GetArticle", err, func(b Backend) (*domain.Article, error) {
			return b.GetArticle(ctx, id)
		})
		if err != nil {
			return nil, fmt.Errorf("client.GetArticle: %w", err)
		}
		return fb, nil
	}
	if resp.Article == nil {
		return nil, fmt.Errorf("client.GetArticle: %w", &NotFoundError{Resource: "article", ID: id})
	}
	return resp.Article, nil
}

// ListCategories returns all feed categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var resp struct {
		Categories []domain.Category `json:"categories"`
	}
	if err := c.get(ctx, "/api/categories", &resp); err != nil {
		fb, err := fallback(ctx, c, "ListCategories", err, func(b Backend) ([]domain.Category, error) {
			return b.ListCategories(ctx)
		})
		if err != nil {
			return nil, fmt.Errorf("client.ListCategories: %w", err)
		}
		return fb, nil
	}
	return resp.Categories, nil
}

// ListComments returns an article's comments, newest first. Never nil on success.
func (c *Client) ListComments(ctx context.Context, articleID string) ([]domain.Comment, error) {
	var resp struct {
		Comments []domain.Comment `json:"comments"`
	}
	if err := c.get(ctx, "/api/articles/"+url.PathEscape(articleID)+"/comments", &resp); err != nil {
		fb, err := fallback(ctx, c, "ListComments", err, func(b Backend) ([]domain.Comment, error) {
			return b.ListComments(ctx, articleID)
		})
		if err != nil {
			return nil, fmt.Errorf("client.ListComments: %w", err)
		}
		return fb, nil
	}
	if resp.Comments == nil {
		resp.Comments = []domain.Comment{}
	}
	return resp.Comments, nil
}

// AddComment posts a comment on an article. Blank bodies are rejected locally.
func (c *Client) AddComment(ctx context.Context, articleID, body string) (*domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("client.AddComment: %w", &ValidationError{Message: "Comment body is required"})
	}
	var resp struct {
		Comment *domain.Comment `json:"comment"`
	}
	path := "/api/articles/" + url.PathEscape(articleID) + "/comments"
	if err := c.post(ctx, path, map[string]string{"body": body}, &resp); err != nil {
		fb, err := fallback(ctx, c, "AddComment", err, func(b Backend) (*domain.Comment, error) {
			return b.AddComment(ctx, articleID, body)
		})
		if err != nil {
			return nil, fmt.Errorf("client.AddComment: %w", err)
		}
		return fb, nil
	}
	return resp.Comment, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("client.Login: %w", &ValidationError{Message: "Email and password are required"})
	}
	var sess domain.Session
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/api/auth/login", body, &sess); err != nil {
		fb, err := fallback(ctx, c, "Login", err, func(b Backend) (*domain.Session, error) {
			return b.Login(ctx, email, password)
		})
		if err != nil {
			return nil, fmt.Errorf("client.Login: %w", err)
		}
		return fb, nil
	}
	return &sess, nil
}

// Register creates an account and returns its session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*domain.Session, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("client.Register: %w", &ValidationError{Message: "Name, email and password are required"})
	}
	var sess domain.Session
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.post(ctx, "/api/auth/register", body, &sess); err != nil {
		fb, err := fallback(ctx, c, "Register", err, func(b Backend) (*domain.Session, error) {
			return b.Register(ctx, name, email, password)
		})
		if err != nil {
			return nil, fmt.Errorf("client.Register: %w", err)
		}
		return fb, nil
	}
	return &sess, nil
}

// fallback re-dispatches op to the fallback backend when err is a transport
// failure. Otherwise it returns err unchanged.
func fallback[T any](ctx context.Context, c *Client, op string, err error, fn func(Backend) (T, error)) (T, error) {
	var zero T
	if c.fallback == nil || !errors.Is(err, ErrNetworkUnavailable) || ctx.Err() != nil {
		return zero, err
	}
	c.logger.Printf("client: %s: backend unreachable, using fallback: %v", op, err)
	return fn(c.fallback)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, joinURL(c.baseURL, path), reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Printf("client: %s %s [%s]: HTTP %d", method, path, reqID, resp.StatusCode)
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		return newHTTPError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// newHTTPError builds an HTTPError from an error body. The body is kept as
// decoded JSON when it parses, raw text when it doesn't, nil when empty.
func newHTTPError(status int, body []byte) *HTTPError {
	e := &HTTPError{StatusCode: status}
	if len(bytes.TrimSpace(body)) == 0 {
		e.Message = fmt.Sprintf("Request failed (%d)", status)
		return e
	}

	var parsed any
	if json.Unmarshal(body, &parsed) != nil {
		e.Details = string(body)
		e.Message = fmt.Sprintf("Request failed (%d)", status)
		return e
	}
	e.Details = parsed
	if obj, ok := parsed.(map[string]any); ok {
		for _, key := range []string{"message", "error"} {
			if s, ok := obj[key].(string); ok && s != "" {
				e.Message = s
				return e
			}
		}
	}
	e.Message = fmt.Sprintf("Request failed (%d)", status)
	return e
}

func joinURL(base, path string) string {
	b := strings.TrimRight(base, "/")
	p := strings.TrimLeft(path, "/")
	if b == "" {
		return "/" + p
	}
	return b + "/" + p
}
