package auth

// Account is the credential view of a user.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
}
