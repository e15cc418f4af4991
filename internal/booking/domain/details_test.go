package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetailsValid(t *testing.T) {
	hotel := &HotelDetails{CheckInDate: "2025-06-10", CheckOutDate: "2025-06-12", Guests: 2}
	yacht := &YachtDetails{Date: "2025-06-10", Hours: 4, Guests: 6}

	assert.True(t, Details{Type: DetailHotel, Hotel: hotel}.Valid())
	assert.True(t, Details{Type: DetailYacht, Yacht: yacht}.Valid())

	// type tag without a payload
	assert.False(t, Details{Type: DetailHotel}.Valid())
	// payload under the wrong tag
	assert.False(t, Details{Type: DetailHotel, Yacht: yacht}.Valid())
	// two payloads at once
	assert.False(t, Details{Type: DetailHotel, Hotel: hotel, Yacht: yacht}.Valid())
	// no tag at all
	assert.False(t, Details{Hotel: hotel}.Valid())
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.False(t, StatusCounterOfferSent.Terminal())
	assert.True(t, StatusDeclined.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}
