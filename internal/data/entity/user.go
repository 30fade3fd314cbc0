package entity

const (
	RoleRegular = 0
	RoleAdmin   = 1
)

type User struct {
	Base
	Username     string `db:"username"`
	PasswordHash string `db:"password"`
	Role         int    `db:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
