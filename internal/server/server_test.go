package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bookingsvc "github.com/bodega1738/SubiclifeClone-sub000/internal/booking/service"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/clock"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/config"
	membersvc "github.com/bodega1738/SubiclifeClone-sub000/internal/member/service"
	notificationsvc "github.com/bodega1738/SubiclifeClone-sub000/internal/notification/service"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/observability/metrics"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/query"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/realtime"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/store"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHarness(t *testing.T) (*Server, *query.Client) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	testTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s, err := store.New(store.Params{
		Bus:   realtime.NewBus(zap.NewNop()),
		Clock: clock.NewFakeClock(testTime),
		GenID: node,
		Log:   zap.NewNop(),
	})
	require.NoError(t, err)

	db := query.NewClient(s)
	registry := metrics.NewRegistry()
	m := metrics.New(registry)

	members := membersvc.New(membersvc.Params{
		DB: db, Clock: clock.NewFakeClock(testTime), Log: zap.NewNop(),
	})
	bookings := bookingsvc.New(bookingsvc.Params{
		DB: db, Store: s, Clock: clock.NewFakeClock(testTime), Log: zap.NewNop(),
		Metrics: m,
	})
	notifications := notificationsvc.New(notificationsvc.Params{DB: db, Log: zap.NewNop()})

	srv := NewServer(ServerParams{
		Gin:             NewEngine(zap.NewNop(), m, registry),
		Cfg:             config.Config{},
		Log:             zap.NewNop(),
		DB:              db,
		Store:           s,
		BookingSvc:      bookings,
		MemberSvc:       members,
		NotificationSvc: notifications,
	})
	return srv, db
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)
	return w
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestHarness(t)

	w := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterAndFetchMember(t *testing.T) {
	srv, _ := newTestHarness(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/members", map[string]any{
		"name":  "Ana Reyes",
		"email": "ana@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "starter", data["tier"])

	id, ok := data["id"].(string)
	require.True(t, ok)

	w = doJSON(t, srv, http.MethodGet, "/v1/members/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ana Reyes", dataField(t, w)["name"])
}

func TestValidationErrorsMapTo400(t *testing.T) {
	srv, _ := newTestHarness(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/members", map[string]any{
		"name":  "",
		"email": "ana@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error.Type)
}

func TestNotFoundMapsTo404(t *testing.T) {
	srv, _ := newTestHarness(t)

	w := doJSON(t, srv, http.MethodGet, "/v1/members/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/v1/bookings/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMerchantSurfaceRequiresSession(t *testing.T) {
	srv, _ := newTestHarness(t)

	w := doJSON(t, srv, http.MethodGet, "/v1/merchant/bookings", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body.Error.Type)
}

func TestMerchantSessionLifecycle(t *testing.T) {
	srv, _ := newTestHarness(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/merchant/session", map[string]any{"partner_id": "p1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p1", dataField(t, w)["partner_id"])

	w = doJSON(t, srv, http.MethodGet, "/v1/merchant/session", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodDelete, "/v1/merchant/session", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/v1/merchant/session", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	srv, db := newTestHarness(t)

	// member and partner
	w := doJSON(t, srv, http.MethodPost, "/v1/members", map[string]any{
		"name": "Ana Reyes", "email": "ana@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	userID := dataField(t, w)["id"].(string)

	inserted := db.From(store.TablePartners).Insert(store.Row{
		"name": "Ocean Adventure", "slug": "ocean-adventure", "category": "activity",
	})
	partnerID := inserted[0]["id"].(string)

	// member books
	w = doJSON(t, srv, http.MethodPost, "/v1/bookings", map[string]any{
		"user_id":    userID,
		"partner_id": partnerID,
		"details": map[string]any{
			"type": "activity",
			"activity": map[string]any{
				"date": "2025-06-10", "participants": 2, "activity_name": "Dolphin Encounter",
			},
		},
		"total_amount": 4000,
	})
	require.Equal(t, http.StatusOK, w.Code)
	booking := dataField(t, w)
	bookingID := booking["id"].(string)
	assert.Equal(t, "pending", booking["status"])
	// starter tier default 5% discount
	assert.Equal(t, 200.0, booking["discount_amount"])
	assert.Equal(t, 3800.0, booking["final_amount"])

	// merchant signs in and accepts
	w = doJSON(t, srv, http.MethodPost, "/v1/merchant/session", map[string]any{"partner_id": partnerID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/v1/merchant/bookings/"+bookingID+"/accept", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "confirmed", dataField(t, w)["status"])

	// accepting twice conflicts
	w = doJSON(t, srv, http.MethodPost, "/v1/merchant/bookings/"+bookingID+"/accept", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// check-in completes, then payout reflects the commission
	w = doJSON(t, srv, http.MethodPost, "/v1/merchant/bookings/"+bookingID+"/check-in", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/v1/merchant/payout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	payout := dataField(t, w)
	assert.Equal(t, 1.0, payout["bookings"])
	assert.Equal(t, 3800.0, payout["gross_amount"])
	assert.Equal(t, 380.0, payout["commission"])
	assert.Equal(t, 3420.0, payout["net_payout"])

	// the member sees booking_confirmed and check_in_complete notifications
	w = doJSON(t, srv, http.MethodGet, "/v1/notifications?user_id="+userID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Data, 2)
}
