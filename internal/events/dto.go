package events

import "time"

// CreateEventRequest carries the fields of a new event.
type CreateEventRequest struct {
	ContractID     int64     `json:"contract_id" validate:"required,gt=0"`
	EventDateStart time.Time `json:"event_date_start" validate:"required"`
	EventDateEnd   time.Time `json:"event_date_end" validate:"required,gtefield=EventDateStart"`
	Location       string    `json:"location" validate:"required,max=255"`
	Attendees      int       `json:"attendees" validate:"gte=0"`
	Notes          string    `json:"notes" validate:"max=5000"`
}

// UpdateEventRequest carries a partial edit. Nil fields are unchanged.
type UpdateEventRequest struct {
	EventDateStart *time.Time `json:"event_date_start,omitempty"`
	EventDateEnd   *time.Time `json:"event_date_end,omitempty"`
	Location       *string    `json:"location,omitempty" validate:"omitempty,min=1,max=255"`
	Attendees      *int       `json:"attendees,omitempty" validate:"omitempty,gte=0"`
	Notes          *string    `json:"notes,omitempty" validate:"omitempty,max=5000"`
}
