// Package session carries the authenticated caller's identity as an explicit
// value passed to repository and synchronizer call sites. There is no global
// session state; a view that needs a different identity constructs a new
// Session.
package session

// Session identifies the bidding user for repository calls.
type Session struct {
	UserID string
	Token  string
}

// New returns a session for the given user and bearer token.
func New(userID, token string) Session {
	return Session{UserID: userID, Token: token}
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
