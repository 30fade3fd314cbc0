package request

type CreateCommentRequest struct {
	MovieID int64  `json:"movie_id" validate:"required,gt=0"`
	Body    string `json:"body" validate:"required"`
}

// ModerateCommentRequest uses a pointer so an explicit "approved": false
// still passes the required check.
type ModerateCommentRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}
