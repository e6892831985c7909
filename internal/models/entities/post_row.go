package entities

import "time"

// PostAggregateRow is the flat sqlx projection behind the board listing:
// one row per post with the counts already folded in.
type PostAggregateRow struct {
	ID             string    `db:"id"`
	AuthorID       string    `db:"author_id"`
	Title          string    `db:"title"`
	Content        string    `db:"content"`
	Category       string    `db:"category"`
	IsPinned       bool      `db:"is_pinned"`
	CreatedAt      time.Time `db:"created_at"`
	AuthorUsername *string   `db:"author_username"`
	CommentCount   int64     `db:"comment_count"`
	UpvoteCount    int64     `db:"upvote_count"`
}
