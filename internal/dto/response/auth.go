package response

import "time"

type AuthResponse struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Role      int       `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
