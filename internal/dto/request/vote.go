package request

type CreateVoteRequest struct {
	MovieID int64 `json:"movie_id" validate:"required,gt=0"`
	Rating  int   `json:"rating" validate:"required,gte=1,lte=10"`
}
