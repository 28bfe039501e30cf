package model

// User is a seeded account. Password always holds a bcrypt hash.
type User struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Password string `db:"password"`
}
