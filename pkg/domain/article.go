package domain

import "time"

// Author is the writer credited on an article.
type Author struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// CategoryRef is the slim category embedded in an article.
type CategoryRef struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Article is a published blog post.
type Article struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Excerpt   string      `json:"excerpt"`
	Content   string      `json:"content"` // markdown-ish, sometimes HTML from real backends
	Author    Author      `json:"author"`
	CreatedAt time.Time   `json:"createdAt"`
	Category  CategoryRef `json:"category"`
	Tags      []string    `json:"tags,omitempty"`
}

// Category is a feed filter. Slug is the filter key.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
