package contracts

import "time"

// CreateContractRequest carries the terms of a new contract.
type CreateContractRequest struct {
	ClientID        int64      `json:"client_id" validate:"required,gt=0"`
	TotalAmount     Money      `json:"total_amount" validate:"gte=0"`
	AmountRemaining Money      `json:"amount_remaining" validate:"gte=0,ltefield=TotalAmount"`
	Status          string     `json:"status" validate:"required,contract_status"`
	DateCreated     *time.Time `json:"date_created,omitempty"`
}

// UpdateContractRequest carries a partial edit. Nil fields are unchanged.
type UpdateContractRequest struct {
	TotalAmount     *Money  `json:"total_amount,omitempty" validate:"omitempty,gte=0"`
	AmountRemaining *Money  `json:"amount_remaining,omitempty" validate:"omitempty,gte=0"`
	Status          *string `json:"status,omitempty" validate:"omitempty,contract_status"`
	SalesContactID  *int64  `json:"sales_contact_id,omitempty" validate:"omitempty,gt=0"`
}
