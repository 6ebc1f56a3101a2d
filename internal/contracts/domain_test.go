package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epic-events/epic-crm/internal/shared"
)

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{
		"Signed":        StatusSigned,
		"signed":        StatusSigned,
		"Not Signed":    StatusNotSigned,
		"not_signed":    StatusNotSigned,
		"NOT-SIGNED":    StatusNotSigned,
		" not  signed ": StatusNotSigned,
	} {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStatus("Pending")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusNotSigned.CanTransitionTo(StatusSigned))
	assert.True(t, StatusSigned.CanTransitionTo(StatusSigned))
	assert.True(t, StatusNotSigned.CanTransitionTo(StatusNotSigned))
	assert.False(t, StatusSigned.CanTransitionTo(StatusNotSigned))
}
