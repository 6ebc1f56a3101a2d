package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Status   string `json:"status" validate:"contract_status"`
	Password string `json:"password" validate:"omitempty,strong_password"`
}

func TestValidateStructReportsJSONFieldName(t *testing.T) {
	err := ValidateStruct(sampleRequest{Email: "nope", Status: StatusSigned})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email", verr.Field)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateStructContractStatus(t *testing.T) {
	assert.NoError(t, ValidateStruct(sampleRequest{Email: "a@b.co", Status: StatusNotSigned}))

	err := ValidateStruct(sampleRequest{Email: "a@b.co", Status: "Pending"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
}

func TestPasswordStrong(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Secret123", true},
		{"short1A", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, PasswordStrong(tt.password))
		})
	}
}

func TestUserSafeMessage(t *testing.T) {
	assert.Equal(t, "Permission denied.", UserSafeMessage(ErrNotAuthorized))
	assert.Contains(t, UserSafeMessage(NewValidationError("email", "already exists")), "email: already exists")
	assert.Contains(t, UserSafeMessage(ErrStorageUnavailable), "epiccrm init")
	assert.Equal(t, "", UserSafeMessage(nil))
}

func TestCanonicalRole(t *testing.T) {
	role, ok := CanonicalRole(" support ")
	assert.True(t, ok)
	assert.Equal(t, RoleSupport, role)

	_, ok = CanonicalRole("Intern")
	assert.False(t, ok)
}
