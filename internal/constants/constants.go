package constants

// Session
const (
	SessionCookieName = "civic_session"
	ContextKeyUserID  = "user_id"
)

// Auth
const (
	MinPasswordLength = 8
)

// Submission lifecycle
const (
	// ApprovalPoints is the fixed award for an approved submission.
	ApprovalPoints = 10
)
