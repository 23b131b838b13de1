package repository

import (
	"context"
	"time"

	"bookit/internal/infra"
	"bookit/internal/infra/db"
	"bookit/internal/pkg/pgconv"
	"bookit/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

const claimKeySQL = `
INSERT INTO idempotency_keys (key, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, 'processing', $4)
ON CONFLICT (key) DO NOTHING`

const getKeySQL = `
SELECT key, endpoint, request_hash, status, result_booking_id, expires_at
FROM idempotency_keys
WHERE key = $1
FOR UPDATE`

const recycleKeySQL = `
UPDATE idempotency_keys
SET request_hash = $2, status = 'processing', result_booking_id = NULL, expires_at = $3
WHERE key = $1`

// Claim returns nil when the key was freshly inserted (or an expired claim
// was recycled); otherwise the existing record, locked for the duration of
// the surrounding transaction so two workers cannot race on the same key.
func (r *IdempotencyRepository) Claim(
	ctx context.Context,
	key uuid.UUID,
	endpoint, requestHash string,
	expiresAt time.Time,
) (*shared.IdempotencyRecord, error) {
	tag, err := r.db.Exec(ctx, claimKeySQL, key, endpoint, requestHash, expiresAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	if tag.RowsAffected() == 1 {
		return nil, nil
	}

	var record shared.IdempotencyRecord
	err = r.db.QueryRow(ctx, getKeySQL, key).Scan(
		&record.Key,
		&record.Endpoint,
		&record.RequestHash,
		&record.Status,
		&record.ResultBookingID,
		&record.ExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			// Claimed row vanished between the insert and the read; treat as
			// a fresh claim on retry.
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read idempotency key", err)
	}

	if record.ExpiresAt.Before(time.Now()) {
		if _, err := r.db.Exec(ctx, recycleKeySQL, key, requestHash, expiresAt); err != nil {
			return nil, infra.WrapRepoErr("failed to recycle expired idempotency key", err)
		}
		return nil, nil
	}

	return &record, nil
}

const markCompletedSQL = `
UPDATE idempotency_keys
SET status = 'completed', result_booking_id = $2
WHERE key = $1`

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key uuid.UUID, resultBookingID int64) error {
	if _, err := r.db.Exec(ctx, markCompletedSQL, key, resultBookingID); err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	return nil
}
