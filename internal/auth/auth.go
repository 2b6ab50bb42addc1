package auth

// User is the account attached to a session.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is returned by login and signup, and is also the blob persisted
// for the session.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
