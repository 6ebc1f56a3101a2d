package users

import "time"

// User represents a staff account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	RoleID       int64
	Role         string
	Email        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the one-to-one extension of a User.
type Profile struct {
	UserID    int64
	Username  string
	Email     string
	Role      string
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Changes lists the columns an update touches. Nil fields are left alone.
type Changes struct {
	Username     *string
	Email        *string
	RoleID       *int64
	PasswordHash *string
}

// Empty reports whether no column would change.
func (c Changes) Empty() bool {
	return c.Username == nil && c.Email == nil && c.RoleID == nil && c.PasswordHash == nil
}
