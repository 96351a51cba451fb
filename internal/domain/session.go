package domain

// User is the identity attached to an authenticated session
type User struct {
	Username string `json:"username"`
	Role     Role   `json:"role,omitempty"`
	UUID     string `json:"uuid,omitempty"`
}

// SessionState is the backend's answer to a session check
type SessionState struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

// LoginResult is the backend's answer to a credential submission
type LoginResult struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}
