package mockapi

import (
	"time"

	"github.com/naveenspark/folio/pkg/domain"
)

// MockToken is the sentinel token returned by mock login and register.
const MockToken = "mock-token"

func seedCategories() []domain.Category {
	return []domain.Category{
		{ID: "cat-react", Name: "React", Slug: "react"},
		{ID: "cat-design", Name: "Design", Slug: "design"},
		{ID: "cat-product", Name: "Product", Slug: "product"},
		{ID: "cat-engineering", Name: "Engineering", Slug: "engineering"},
	}
}

func seedArticles(now time.Time) []domain.Article {
	daysAgo := func(n int) time.Time { return now.AddDate(0, 0, -n) }
	return []domain.Article{
		{
			ID:    "a1",
			Title: "Building a Modern Blog with React",
			Excerpt: "A practical guide to building a fast, accessible blog UI using routing, " +
				"global state, and a clean responsive layout.",
			Content: "## Building a Modern Blog with React\n\n" +
				"This is mock content used when the backend is unavailable.\n\n" +
				"- Responsive layout\n- Centralized API client\n- Auth session\n\n" +
				"> Enable/disable via FOLIO_FEATURE_FLAGS=mock_api\n",
			Author:    domain.Author{ID: "u1", Name: "Alex Writer"},
			CreatedAt: daysAgo(2),
			Category:  domain.CategoryRef{Slug: "react", Name: "React"},
			Tags:      []string{"react", "frontend"},
		},
		{
			ID:      "a2",
			Title:   "Designing with a Light Theme",
			Excerpt: "How to build a crisp light theme with accessible color contrast and a modern UI feel.",
			Content: "## Designing with a Light Theme\n\nMock content.\n\n" +
				"Use a surface color, subtle borders, and strong primary action color.\n",
			Author:    domain.Author{ID: "u2", Name: "Jamie Designer"},
			CreatedAt: daysAgo(5),
			Category:  domain.CategoryRef{Slug: "design", Name: "Design"},
			Tags:      []string{"ui", "design"},
		},
		{
			ID:      "a3",
			Title:   "Pagination Patterns for Feeds",
			Excerpt: "Load more vs. numbered pagination: tradeoffs, UX expectations, and implementation tips.",
			Content: "## Pagination Patterns for Feeds\n\nMock content.\n\n" +
				"This template implements simple page-based pagination with an optional Load More.\n",
			Author:    domain.Author{ID: "u3", Name: "Morgan PM"},
			CreatedAt: daysAgo(8),
			Category:  domain.CategoryRef{Slug: "product", Name: "Product"},
			Tags:      []string{"product", "ux"},
		},
	}
}

func seedComments(now time.Time) map[string][]domain.Comment {
	daysAgo := func(n int) time.Time { return now.AddDate(0, 0, -n) }
	return map[string][]domain.Comment{
		"a1": {{
			ID:        "c1",
			ArticleID: "a1",
			Author:    domain.CommentAuthor{Name: "Sam"},
			Body:      "This is a great starting point. Love the layout!",
			CreatedAt: daysAgo(1),
		}},
		"a2": {{
			ID:        "c2",
			ArticleID: "a2",
			Author:    domain.CommentAuthor{Name: "Taylor"},
			Body:      "The color palette is clean and readable.",
			CreatedAt: daysAgo(3),
		}},
		"a3": {},
	}
}
