package repository

import (
	"context"

	"bookit/internal/infra"
	"bookit/internal/infra/db"
)

type SlotRepository struct {
	db db.DBTX
}

func NewSlotRepository(dbtx db.DBTX) *SlotRepository {
	return &SlotRepository{db: dbtx}
}

// reserveSpotsSQL is the guarded conditional decrement. The capacity check
// and the write are one statement, so the row lock taken by UPDATE makes
// concurrent reservations on the same slot serialize: whoever commits first
// consumes the spots, the loser's guard fails and touches nothing.
const reserveSpotsSQL = `
UPDATE slots
SET spots_available = spots_available - $2
WHERE id = $1 AND spots_available >= $2`

func (r *SlotRepository) ReserveSpots(ctx context.Context, slotID int64, quantity int) (bool, error) {
	tag, err := r.db.Exec(ctx, reserveSpotsSQL, slotID, quantity)
	if err != nil {
		return false, infra.WrapRepoErr("failed to reserve spots", err)
	}

	return tag.RowsAffected() == 1, nil
}
