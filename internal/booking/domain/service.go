package domain

import (
	"context"
	"errors"
	"fmt"

	partnerdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/partner/domain"
)

type CreateRequest struct {
	UserID      string
	PartnerID   string
	Details     Details
	TotalAmount float64
}

type GetRequest struct {
	ID string
}

// ListRequest narrows by owner, partner and status; all filters compose.
type ListRequest struct {
	UserID    string
	PartnerID string
	Status    Status
}

type AcceptRequest struct {
	BookingID string
}

type DeclineRequest struct {
	BookingID string
	// Reason is the merchant-supplied explanation carried in the member's
	// notification.
	Reason string
}

type SendCounterOfferRequest struct {
	BookingID       string
	ProposedDetails *Details
	ProposedPrice   *float64
	Message         string
}

type AcceptCounterOfferRequest struct {
	OfferID string
}

type DeclineCounterOfferRequest struct {
	OfferID string
}

type CancelRequest struct {
	BookingID string
	Reason    string
	Note      string
}

type CheckInRequest struct {
	BookingID string
}

// PayoutRequest asks for the commission breakdown over a partner's completed
// bookings.
type PayoutRequest struct {
	PartnerID string
}

// ListItem is a booking with its partner resolved through the facade's join
// syntax, the shape both the member and the merchant listings render.
type ListItem struct {
	Booking
	Partner *partnerdomain.Partner `json:"partner,omitempty"`
}

// PayoutSummary is the platform-commission view of a partner's earnings.
type PayoutSummary struct {
	PartnerID      string  `json:"partner_id"`
	Bookings       int     `json:"bookings"`
	GrossAmount    float64 `json:"gross_amount"`
	CommissionRate float64 `json:"commission_rate"`
	Commission     float64 `json:"commission"`
	NetPayout      float64 `json:"net_payout"`
}

// Service is the booking lifecycle engine. Every operation that moves a
// booking between states runs as a single unit of work: record mutations,
// notifications and point awards all commit or none do.
type Service interface {
	Create(context.Context, CreateRequest) (Booking, error)
	Get(context.Context, GetRequest) (Booking, error)
	List(context.Context, ListRequest) ([]Booking, error)
	ListWithPartners(context.Context, ListRequest) ([]ListItem, error)

	Accept(context.Context, AcceptRequest) (Booking, error)
	Decline(context.Context, DeclineRequest) (Booking, error)
	SendCounterOffer(context.Context, SendCounterOfferRequest) (CounterOffer, error)
	AcceptCounterOffer(context.Context, AcceptCounterOfferRequest) (Booking, error)
	DeclineCounterOffer(context.Context, DeclineCounterOfferRequest) (Booking, error)
	Cancel(context.Context, CancelRequest) (Booking, error)
	CheckIn(context.Context, CheckInRequest) (Booking, error)

	Payout(context.Context, PayoutRequest) (PayoutSummary, error)
}

var (
	ErrNotFound       = errors.New("booking_not_found")
	ErrOfferNotFound  = errors.New("counter_offer_not_found")
	ErrInvalidAmount  = errors.New("invalid_amount")
	ErrInvalidDetails = errors.New("invalid_details")
	ErrInvalidUser    = errors.New("invalid_user")
	ErrInvalidPartner = errors.New("invalid_partner")
)

// InvalidTransitionError rejects a lifecycle edge outside the transition
// table instead of silently applying the update.
type InvalidTransitionError struct {
	BookingID string
	From      Status
	Operation string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid_transition: %s from %q (booking %s)", e.Operation, e.From, e.BookingID)
}

// ErrInvalidTransition matches any InvalidTransitionError via errors.Is.
var ErrInvalidTransition = errors.New("invalid_transition")

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
