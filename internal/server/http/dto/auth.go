package dto

// RegisterRequest describes the sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginRequest describes email/password payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LogoutRequest optionally names the session to drop.
type LogoutRequest struct {
	SessionID string `json:"sessionId"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Success   bool         `json:"success"`
	User      UserResponse `json:"user"`
	SessionID string       `json:"sessionId"`
}
