package constants

const (
	// ContextKeyUserID is the session and gin context key for the
	// authenticated user's ID.
	ContextKeyUserID = "user_id"

	// SessionCookieName is the cookie carrying the session ID.
	SessionCookieName = "crm_session"

	MinPasswordLength = 8

	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SiteIdentity is process-wide display metadata, set once at startup and
// never mutated.
type SiteIdentity struct {
	Author  string
	Site    string
	SiteURL string
}

var Site = SiteIdentity{
	Author:  "TheShahinRG",
	Site:    "shahindev.com",
	SiteURL: "https://shahindev.com",
}
