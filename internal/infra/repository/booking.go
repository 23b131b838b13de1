package repository

import (
	"context"
	"errors"

	"bookit/internal/domain/booking"
	"bookit/internal/infra"
	"bookit/internal/infra/db"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

const createBookingSQL = `
INSERT INTO bookings (slot_id, user_name, user_email, quantity, final_price, promo_code)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, createBookingSQL,
		b.SlotID(),
		b.GuestName().String(),
		b.GuestEmail().String(),
		b.Quantity().Value(),
		b.FinalPrice().Amount(),
		b.PromoCode(),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgErrCodeForeignKeyViolation:
				return 0, infra.WrapRepoErr("booking references missing slot", err, infra.KindForeignKeyViolated)
			case pgErrCodeUniqueViolation:
				return 0, infra.WrapRepoErr("duplicate booking", err, infra.KindDuplicateKey)
			}
		}
		return 0, infra.WrapRepoErr("failed to create booking", err)
	}

	return id, nil
}
