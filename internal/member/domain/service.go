package domain

import (
	"context"
	"errors"
)

type RegisterRequest struct {
	Name              string
	Email             string
	TravelPreferences []string
}

type GetRequest struct {
	ID string
}

// AwardPointsRequest credits points to a member; Reason lands in the log, not
// the record.
type AwardPointsRequest struct {
	UserID string
	Points int
	Reason string
}

type Service interface {
	Register(context.Context, RegisterRequest) (User, error)
	Get(context.Context, GetRequest) (User, error)
	AwardPoints(context.Context, AwardPointsRequest) (User, error)
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidEmail  = errors.New("invalid_email")
	ErrInvalidPoints = errors.New("invalid_points")
	ErrNotFound      = errors.New("member_not_found")
)
