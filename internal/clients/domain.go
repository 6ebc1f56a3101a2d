package clients

import "time"

// Client is a customer company contact.
type Client struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	CompanyName    string
	LastContact    *time.Time
	SalesContactID *int64
	SalesContact   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName joins first and last name.
func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Changes lists the columns an update touches. Nil fields are left alone.
type Changes struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	CompanyName    *string
	LastContact    *time.Time
	SalesContactID *int64
}

// Empty reports whether no column would change.
func (c Changes) Empty() bool {
	return c.FirstName == nil && c.LastName == nil && c.Email == nil && c.Phone == nil &&
		c.CompanyName == nil && c.LastContact == nil && c.SalesContactID == nil
}

// ListFilter narrows client listings.
type ListFilter struct {
	SalesContactID *int64
}
