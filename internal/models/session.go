package models

// Session identifies the authenticated user. The zero value means no session.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Active reports whether the session carries a user.
func (s Session) Active() bool {
	return s.UserID != ""
}
