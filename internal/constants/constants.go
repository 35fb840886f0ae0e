package constants

// ContextKeyUserID is the key used for the authenticated user ID in both the
// session and the Gin request context.
const ContextKeyUserID = "user_id"

// SessionName is the cookie name carrying the session ID.
const SessionName = "workspace_session"

const MinPasswordLength = 8

// InviteCodeLength is the length of workspace invite codes.
const InviteCodeLength = 10

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
