package entity

type Vote struct {
	BaseSimple
	UserID  int64 `db:"user_id"`
	MovieID int64 `db:"movie_id"`
	Rating  int   `db:"rating"` // 1-10, single user's contribution
}
