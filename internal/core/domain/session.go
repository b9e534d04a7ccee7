package domain

// SessionMarker is the server-held login marker for one client session.
// Exactly one of Admin or UserID is ever set: the super admin's sessions
// carry no user id, user sessions carry no admin flag.
type SessionMarker struct {
	Admin  bool   `json:"admin,omitempty"`
	UserID string `json:"user_id,omitempty"`
}
