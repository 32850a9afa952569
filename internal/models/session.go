package models

// Session is the per-request authentication snapshot fetched from the auth
// provider. It is resolved once by the access gate, threaded through the
// request context, and discarded after the response. Never cached across
// requests.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Role          Role   `json:"role"`
	UserID        string `json:"userId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
}

// Anonymous is the fail-closed session: any session lookup failure collapses
// to this value so a collaborator outage never leaks protected content.
func Anonymous() Session {
	return Session{Authenticated: false}
}

// SessionPayload mirrors the auth provider's get-session response body.
type SessionPayload struct {
	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

// SessionFromPayload converts the provider payload into a Session. An
// unrecognized role yields an authenticated session with an invalid role,
// which the gate treats as deny-to-login.
func SessionFromPayload(p SessionPayload) Session {
	role, _ := ParseRole(p.User.Role)
	return Session{
		Authenticated: true,
		Role:          role,
		UserID:        p.User.ID,
		Name:          p.User.Name,
		Email:         p.User.Email,
	}
}
