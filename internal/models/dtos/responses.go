package dtos

import (
	"time"

	"panduankota/backend/internal/constants"
)

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// OpResult is the discriminated success/failure result every fallible domain
// operation returns. Error carries a symbolic reason code, never prose.
type OpResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func Ok() OpResult {
	return OpResult{Success: true}
}

func Fail(reason string) OpResult {
	return OpResult{Success: false, Error: reason}
}

// ---- Account ----

type SessionResponse struct {
	Token     string      `json:"token"`
	SessionID string      `json:"session_id"`
	Profile   ProfileView `json:"profile"`
}

type ProfileView struct {
	ID            string        `json:"id"`
	Email         string        `json:"email"`
	Username      string        `json:"username"`
	Role          string        `json:"role"`
	Status        string        `json:"status"`
	MutedUntil    *time.Time    `json:"muted_until,omitempty"`
	MutePermanent bool          `json:"mute_permanent,omitempty"`
	Warnings      []WarningView `json:"warnings,omitempty"`
}

type WarningView struct {
	ID           string    `json:"id"`
	Title        *string   `json:"title,omitempty"`
	Message      string    `json:"message"`
	Acknowledged bool      `json:"acknowledged"`
	CreatedAt    time.Time `json:"created_at"`
}

// ---- Guides ----

type GuideView struct {
	ID             string                `json:"id"`
	AuthorID       string                `json:"author_id"`
	AuthorUsername string                `json:"author_username"`
	Title          string                `json:"title"`
	Category       string                `json:"category"`
	City           string                `json:"city"`
	Area           string                `json:"area"`
	Steps          []string              `json:"steps"`
	Tips           []string              `json:"tips,omitempty"`
	Tags           []string              `json:"tags,omitempty"`
	Links          []GuideLink           `json:"links,omitempty"`
	Status         constants.GuideStatus `json:"status"`
	Views          int64                 `json:"views"`
	CreatedAt      time.Time             `json:"created_at"`
}

// ---- Discussion ----

// PostView is the board projection: the post row plus the joined aggregates.
type PostView struct {
	ID             string             `json:"id"`
	AuthorID       string             `json:"author_id"`
	AuthorUsername string             `json:"author_username"`
	Title          string             `json:"title"`
	Content        string             `json:"content"`
	Category       string             `json:"category"`
	IsPinned       bool               `json:"is_pinned"`
	CreatedAt      time.Time          `json:"created_at"`
	CommentCount   int64              `json:"comment_count"`
	UpvoteCount    int64              `json:"upvote_count"`
	TrueVotes      int                `json:"true_votes"`
	Questionable   int                `json:"questionable_votes"`
	Verifications  []VerificationView `json:"verifications,omitempty"`
	Reports        []ReportView       `json:"reports,omitempty"`
}

type VerificationView struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

type ReportView struct {
	ID               string    `json:"id"`
	ReporterID       string    `json:"reporter_id"`
	ReporterUsername string    `json:"reporter_username"`
	Reason           string    `json:"reason"`
	CreatedAt        time.Time `json:"created_at"`
}

type CommentView struct {
	ID             string    `json:"id"`
	PostID         string    `json:"post_id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
