package request

type MovieRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

type MovieUpdateRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}
