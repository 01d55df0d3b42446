package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
	Username    string `json:"username"`
}

// SessionResponse describes the back-office token presented with the request.
type SessionResponse struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expires_at,omitempty"` // RFC3339
}
