package events

import "time"

// Event is an occasion organised under a signed contract.
type Event struct {
	ID               int64
	ContractID       int64
	ClientName       string
	SupportContactID *int64
	SupportContact   string
	EventDateStart   time.Time
	EventDateEnd     time.Time
	Location         string
	Attendees        int
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Changes lists the columns an update touches. Nil fields are left alone.
type Changes struct {
	EventDateStart   *time.Time
	EventDateEnd     *time.Time
	Location         *string
	Attendees        *int
	Notes            *string
	SupportContactID *int64
}

// Empty reports whether no column would change.
func (c Changes) Empty() bool {
	return c.EventDateStart == nil && c.EventDateEnd == nil && c.Location == nil &&
		c.Attendees == nil && c.Notes == nil && c.SupportContactID == nil
}

// ListFilter narrows event listings.
type ListFilter struct {
	ContractID       *int64
	SupportContactID *int64
	Unassigned       bool
}
