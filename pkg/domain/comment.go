package domain

import "time"

// CommentAuthor is the display identity attached to a comment.
type CommentAuthor struct {
	Name string `json:"name"`
}

// Comment is a reader comment on an article.
type Comment struct {
	ID        string        `json:"id"`
	ArticleID string        `json:"articleId,omitempty"`
	Author    CommentAuthor `json:"author"`
	Body      string        `json:"body"`
	CreatedAt time.Time     `json:"createdAt"`
}
