package roles

// Role is one of the seeded, immutable roles.
type Role struct {
	ID   int64
	Name string
}
