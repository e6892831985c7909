package constants

const (
	// QueryListPosts joins the denormalized aggregates the board needs in one
	// round trip: author username plus comment and upvote counts.
	QueryListPosts = `
	SELECT p.id, p.author_id, p.title, p.content, p.category, p.is_pinned, p.created_at,
	       pr.username AS author_username,
	       (SELECT COUNT(*) FROM post_comments c WHERE c.post_id = p.id) AS comment_count,
	       (SELECT COUNT(*) FROM post_upvotes u WHERE u.post_id = p.id)  AS upvote_count
	FROM posts p
	LEFT JOIN profiles pr ON pr.id = p.author_id
	`

	// QueryIncrementViews bumps the counter server-side. Best effort, not
	// deduplicated: the caller fires it once per detail-view open.
	QueryIncrementViews = `
	UPDATE guides SET views = views + 1 WHERE id = $1
	`

	// QueryUpdateUsername is a single conditional write; the unique index on
	// profiles.username turns a concurrent duplicate into a constraint error
	// instead of a lost check-then-write race.
	QueryUpdateUsername = `
	UPDATE profiles SET username = $1 WHERE id = $2
	`
)
