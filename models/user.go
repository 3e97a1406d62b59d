package models

// User is a person logging exercises.
// It maps to the `users` table.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
}
