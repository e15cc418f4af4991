package service

import (
	"context"
	"errors"

	"github.com/bodega1738/SubiclifeClone-sub000/internal/notification/domain"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/query"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	DB  *query.Client
	Log *zap.Logger
}

type Service struct {
	db  *query.Client
	log *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("notification.service"),
	}
}

// List returns notifications for one addressee, newest first.
func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Notification, error) {
	b := s.db.From(store.TableNotifications)
	switch {
	case req.UserID != "":
		b = b.Eq("user_id", req.UserID)
	case req.PartnerID != "":
		b = b.Eq("partner_id", req.PartnerID)
	default:
		return nil, domain.ErrMissingAddress
	}
	if req.UnreadOnly {
		b = b.Eq("read", false)
	}

	rows, err := b.Order("created_at", false).Rows()
	if err != nil {
		return nil, err
	}
	return query.DecodeRows[domain.Notification](rows)
}

// MarkRead flips the read flag, the only mutation notifications permit.
func (s *Service) MarkRead(ctx context.Context, req domain.MarkReadRequest) (domain.Notification, error) {
	row, err := s.db.From(store.TableNotifications).
		Update(store.Row{"read": true}).
		Eq("id", req.ID).
		Exec()
	if errors.Is(err, query.ErrNoRows) {
		return domain.Notification{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Notification{}, err
	}

	var out domain.Notification
	if err := query.Decode(row, &out); err != nil {
		return domain.Notification{}, err
	}
	return out, nil
}
