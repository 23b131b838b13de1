package readstore

import (
	"context"

	"bookit/internal/infra"
	"bookit/internal/infra/db"
	"bookit/internal/pkg/pgconv"
	"bookit/internal/usecase/queries"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const findBookingSQL = `
SELECT b.id, b.slot_id, s.experience_id, e.title, b.user_name, b.user_email,
       b.quantity, b.final_price, b.promo_code, b.created_at
FROM bookings b
JOIN slots s ON s.id = b.slot_id
JOIN experiences e ON e.id = s.experience_id
WHERE b.id = $1`

func (s *BookingReadStore) FindByID(ctx context.Context, id int64) (*queries.BookingView, error) {
	var v queries.BookingView
	err := s.db.QueryRow(ctx, findBookingSQL, id).Scan(
		&v.ID,
		&v.SlotID,
		&v.ExperienceID,
		&v.ExperienceTitle,
		&v.GuestName,
		&v.GuestEmail,
		&v.Quantity,
		&v.FinalPrice,
		&v.PromoCode,
		&v.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	return &v, nil
}
