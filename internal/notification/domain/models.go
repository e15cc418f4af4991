// Package domain contains the notification model: immutable append-only event
// records addressed to a member and/or a partner. Only the read flag mutates.
package domain

import (
	"context"
	"errors"
	"time"
)

// Type tags carried by lifecycle notifications.
const (
	TypeBookingRequest       = "booking_request"
	TypeBookingConfirmed     = "booking_confirmed"
	TypeBookingDeclined      = "booking_declined"
	TypeBookingCancelled     = "booking_cancelled"
	TypeCounterOfferReceived = "counter_offer_received"
	TypeCounterOfferAccepted = "counter_offer_accepted"
	TypeCounterOfferDeclined = "counter_offer_declined"
	TypeCheckInComplete      = "check_in_complete"
)

// Notification is addressed to a user and/or a partner.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	PartnerID string    `json:"partner_id,omitempty"`
	BookingID string    `json:"booking_id,omitempty"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type ListRequest struct {
	UserID    string
	PartnerID string
	// UnreadOnly narrows to notifications not yet marked read.
	UnreadOnly bool
}

type MarkReadRequest struct {
	ID string
}

type Service interface {
	List(context.Context, ListRequest) ([]Notification, error)
	MarkRead(context.Context, MarkReadRequest) (Notification, error)
}

var (
	ErrNotFound       = errors.New("notification_not_found")
	ErrMissingAddress = errors.New("missing_address")
)
