package queries

import (
	"context"
	"errors"

	"bookit/internal/infra"
	"bookit/internal/pkg/errs"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingReadStore interface {
	FindByID(ctx context.Context, id int64) (*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id int64) (*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id int64) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}
	return view, nil
}
