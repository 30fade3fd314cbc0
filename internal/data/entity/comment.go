package entity

type Comment struct {
	BaseSimple
	UserID   int64  `db:"user_id"`
	MovieID  int64  `db:"movie_id"`
	Body     string `db:"body"`
	Approved bool   `db:"approved"` // false at creation, toggled only by admins
}

// CommentWithAuthor is the public projection of an approved comment.
// Only the author's username crosses the boundary, never id, hash or role.
type CommentWithAuthor struct {
	ID     int64  `db:"id"`
	Author string `db:"author"`
	Body   string `db:"body"`
}
