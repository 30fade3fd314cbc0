package entity

type Movie struct {
	Base
	Name        string   `db:"name"`
	Description *string  `db:"description"`
	Rating      *float64 `db:"rating"` // never set at creation; aggregation is out of scope
}
