package response

type MovieResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating"`
}

type MovieDetailResponse struct {
	MovieResponse
	Votes int64 `json:"votes"`
}
