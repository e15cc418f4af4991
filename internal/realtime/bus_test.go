package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSubscribeFilterDelivery(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var got []Message
	_, err := bus.Subscribe("bookings", EventUpdate, "user_id=eq.U1", func(m Message) {
		got = append(got, m)
	})
	require.NoError(t, err)

	// booking owned by another user must not be delivered
	bus.Publish("bookings", EventUpdate, map[string]any{"id": "b1", "user_id": "U2"})
	assert.Empty(t, got)

	bus.Publish("bookings", EventUpdate, map[string]any{"id": "b2", "user_id": "U1"})
	require.Len(t, got, 1)
	assert.Equal(t, "b2", got[0].New["id"])
	assert.Equal(t, got[0].New, got[0].Old)
}

func TestEventTypeMatching(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var inserts, all int
	_, err := bus.Subscribe("bookings", EventInsert, "", func(Message) { inserts++ })
	require.NoError(t, err)
	_, err = bus.Subscribe("bookings", EventAll, "", func(Message) { all++ })
	require.NoError(t, err)

	bus.Publish("bookings", EventInsert, map[string]any{"id": "b1"})
	bus.Publish("bookings", EventUpdate, map[string]any{"id": "b1"})

	assert.Equal(t, 1, inserts)
	assert.Equal(t, 2, all)
}

func TestTableIsolation(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var got int
	_, err := bus.Subscribe("notifications", EventAll, "", func(Message) { got++ })
	require.NoError(t, err)

	bus.Publish("bookings", EventInsert, map[string]any{"id": "b1"})
	assert.Zero(t, got)
}

func TestDeliveryInRegistrationOrder(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		_, err := bus.Subscribe("bookings", EventAll, "", func(Message) {
			order = append(order, name)
		})
		require.NoError(t, err)
	}

	bus.Publish("bookings", EventInsert, map[string]any{"id": "b1"})
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var got int
	sub, err := bus.Subscribe("bookings", EventAll, "", func(Message) { got++ })
	require.NoError(t, err)

	bus.Unsubscribe(sub)
	bus.Unsubscribe(sub)

	bus.Publish("bookings", EventInsert, map[string]any{"id": "b1"})
	assert.Zero(t, got)
}

func TestNumericFilterValuesMatch(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var got int
	_, err := bus.Subscribe("users", EventUpdate, "points=eq.500", func(Message) { got++ })
	require.NoError(t, err)

	bus.Publish("users", EventUpdate, map[string]any{"id": "u1", "points": float64(500)})
	assert.Equal(t, 1, got)
}

func TestInvalidFilterRejected(t *testing.T) {
	bus := NewBus(zap.NewNop())

	_, err := bus.Subscribe("bookings", EventAll, "user_id=gt.5", func(Message) {})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = bus.Subscribe("bookings", EventAll, "garbage", func(Message) {})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}
