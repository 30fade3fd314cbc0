package response

import "time"

// CommentResponse is the public shape: author is the username only
type CommentResponse struct {
	ID     int64  `json:"id"`
	Author string `json:"author"`
	Body   string `json:"body"`
}

type CommentCreatedResponse struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movie_id"`
	Body      string    `json:"body"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}
