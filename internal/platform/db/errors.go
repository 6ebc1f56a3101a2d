package db

import (
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/epic-events/epic-crm/internal/shared"
)

// constraintFields maps named constraints to the input fields they guard.
var constraintFields = map[string]string{
	"roles_name_key":                  "name",
	"users_username_key":              "username",
	"users_email_key":                 "email",
	"users_role_id_fkey":              "role",
	"profiles_user_id_fkey":           "user_id",
	"clients_email_key":               "email",
	"clients_identity_key":            "first_name,last_name,company_name",
	"clients_sales_contact_id_fkey":   "sales_contact_id",
	"contracts_total_check":           "total_amount",
	"contracts_remaining_check":       "amount_remaining",
	"contracts_status_check":          "status",
	"contracts_terms_key":             "client_id,total_amount,status,date_created",
	"contracts_client_id_fkey":        "client_id",
	"contracts_sales_contact_id_fkey": "sales_contact_id",
	"events_attendees_check":          "attendees",
	"events_dates_check":              "event_date_end",
	"events_schedule_key":             "contract_id,event_date_start,event_date_end,location",
	"events_contract_id_fkey":         "contract_id",
	"events_support_contact_id_fkey":  "support_contact_id",
	"permissions_entity_check":        "entity",
	"permissions_action_check":        "action",
	"permissions_grant_key":           "role_id,entity,action",
	"permissions_role_id_fkey":        "role_id",
}

// Classify translates driver errors into the shared error kinds.
// Errors that are not database failures are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", shared.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		field := constraintFields[pgErr.ConstraintName]
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return &shared.ValidationError{Field: field, Message: "already exists"}
		case pgerrcode.ForeignKeyViolation:
			if field == "" {
				field = "reference"
			}
			return fmt.Errorf("%w: %s references a missing record", shared.ErrNotFound, field)
		case pgerrcode.CheckViolation:
			return &shared.ValidationError{Field: field, Message: "violates constraint " + pgErr.ConstraintName}
		case pgerrcode.NotNullViolation:
			return &shared.ValidationError{Field: pgErr.ColumnName, Message: "is required"}
		case pgerrcode.InvalidTextRepresentation, pgerrcode.NumericValueOutOfRange, pgerrcode.InvalidDatetimeFormat:
			return &shared.ValidationError{Field: field, Message: pgErr.Message}
		case pgerrcode.UndefinedTable, pgerrcode.InvalidCatalogName:
			return fmt.Errorf("%w: %s", shared.ErrStorageUnavailable, pgErr.Message)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %v", shared.ErrStorageUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", shared.ErrStorageUnavailable, err)
	}
	return err
}
