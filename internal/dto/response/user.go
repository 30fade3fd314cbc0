package response

import "time"

// UserResponse never carries the password hash
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      int       `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
