package request

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     int    `json:"role" validate:"oneof=0 1"`
}

type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
	Role     int    `json:"role" validate:"oneof=0 1"`
}
