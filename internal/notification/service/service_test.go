package service

import (
	"context"
	"testing"
	"time"

	"github.com/bodega1738/SubiclifeClone-sub000/internal/clock"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/notification/domain"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/query"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/realtime"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/store"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (domain.Service, *query.Client) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	s, err := store.New(store.Params{
		Bus:   realtime.NewBus(zap.NewNop()),
		Clock: clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		GenID: node,
		Log:   zap.NewNop(),
	})
	require.NoError(t, err)

	db := query.NewClient(s)
	return New(Params{DB: db, Log: zap.NewNop()}), db
}

func seed(db *query.Client) []store.Row {
	return db.From(store.TableNotifications).Insert(
		store.Row{"user_id": "u1", "type": domain.TypeBookingConfirmed, "title": "Booking Confirmed", "read": false},
		store.Row{"user_id": "u1", "type": domain.TypeCheckInComplete, "title": "Check-in Successful", "read": true},
		store.Row{"partner_id": "p1", "type": domain.TypeBookingRequest, "title": "New Booking Request", "read": false},
	)
}

func TestListRequiresAnAddressee(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.List(context.Background(), domain.ListRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingAddress)
}

func TestListScopesToAddressee(t *testing.T) {
	svc, db := newTestService(t)
	seed(db)

	forUser, err := svc.List(context.Background(), domain.ListRequest{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, forUser, 2)
	for _, n := range forUser {
		assert.Equal(t, "u1", n.UserID)
	}

	forPartner, err := svc.List(context.Background(), domain.ListRequest{PartnerID: "p1"})
	require.NoError(t, err)
	require.Len(t, forPartner, 1)
	assert.Equal(t, domain.TypeBookingRequest, forPartner[0].Type)
}

func TestListUnreadOnly(t *testing.T) {
	svc, db := newTestService(t)
	seed(db)

	out, err := svc.List(context.Background(), domain.ListRequest{UserID: "u1", UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.TypeBookingConfirmed, out[0].Type)
}

func TestMarkRead(t *testing.T) {
	svc, db := newTestService(t)
	rows := seed(db)

	out, err := svc.MarkRead(context.Background(), domain.MarkReadRequest{ID: rows[0]["id"].(string)})
	require.NoError(t, err)
	assert.True(t, out.Read)

	// the flag sticks
	listed, err := svc.List(context.Background(), domain.ListRequest{UserID: "u1", UnreadOnly: true})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestMarkReadUnknownID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.MarkRead(context.Background(), domain.MarkReadRequest{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
