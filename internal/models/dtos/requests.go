package dtos

// ---- Account ----

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUsernameRequest struct {
	Username string `json:"username"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ---- Guides ----

// GuideSubmission carries a new guide or an edit. Tags arrive as the raw
// comma-separated input string and are normalized server-side.
type GuideSubmission struct {
	Title    string      `json:"title"`
	Category string      `json:"category"`
	City     string      `json:"city"`
	Area     string      `json:"area"`
	Steps    []string    `json:"steps"`
	Tips     []string    `json:"tips"`
	Tags     string      `json:"tags"`
	Links    []GuideLink `json:"links"`
}

type GuideLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ---- Discussion ----

type PostSubmission struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

type ReportRequest struct {
	Reason string `json:"reason"`
}

type VerificationRequest struct {
	Status string `json:"status"`
}

// ---- Moderation ----

// MuteRequest accepts a preset duration. "perm" maps to the far-future
// sentinel timestamp (year 9999).
type MuteRequest struct {
	Duration string `json:"duration"` // 24h | 3d | 7d | perm
}

type WarnRequest struct {
	Message string  `json:"message"`
	Title   *string `json:"title,omitempty"`
}
