package clients

import "time"

// CreateClientRequest carries the fields of a new client.
type CreateClientRequest struct {
	FirstName   string     `json:"first_name" validate:"required,max=100"`
	LastName    string     `json:"last_name" validate:"required,max=100"`
	Email       string     `json:"email" validate:"required,email,max=254"`
	Phone       string     `json:"phone" validate:"omitempty,max=30"`
	CompanyName string     `json:"company_name" validate:"required,max=200"`
	LastContact *time.Time `json:"last_contact,omitempty"`
}

// UpdateClientRequest carries a partial edit. Nil fields are unchanged.
type UpdateClientRequest struct {
	FirstName      *string    `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName       *string    `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Email          *string    `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone          *string    `json:"phone,omitempty" validate:"omitempty,max=30"`
	CompanyName    *string    `json:"company_name,omitempty" validate:"omitempty,min=1,max=200"`
	LastContact    *time.Time `json:"last_contact,omitempty"`
	SalesContactID *int64     `json:"sales_contact_id,omitempty" validate:"omitempty,gt=0"`
}
