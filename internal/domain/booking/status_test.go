package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slotwise/booking-marketplace/internal/httperr"
)

func TestInitialStatusIsConfirmed(t *testing.T) {
	assert.Equal(t, StatusConfirmed, InitialStatus())
}

func TestValidatePartySize(t *testing.T) {
	assert.NoError(t, ValidatePartySize(1))

	for _, n := range []int{0, -1, MaxPartySize + 1} {
		err := ValidatePartySize(n)
		assert.True(t, httperr.IsBusiness(err, "invalid_party_size"), "n=%d", n)
	}
}

func TestCanCancel(t *testing.T) {
	assert.NoError(t, CanCancel(StatusConfirmed))

	err := CanCancel(StatusCancelled)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
