package readstore

import (
	"context"

	"bookit/internal/infra"
	"bookit/internal/infra/db"
	"bookit/internal/pkg/pgconv"
	"bookit/internal/usecase/shared"
)

type SlotReadStore struct {
	db db.DBTX
}

func NewSlotReadStore(dbtx db.DBTX) *SlotReadStore {
	return &SlotReadStore{db: dbtx}
}

const findSlotForBookingSQL = `
SELECT s.id, s.experience_id, e.title, s.start_time, s.end_time, s.total_spots, s.spots_available, e.price
FROM slots s
JOIN experiences e ON e.id = s.experience_id
WHERE s.id = $1`

func (s *SlotReadStore) FindForBooking(ctx context.Context, slotID int64) (*shared.SlotSnapshot, error) {
	var snap shared.SlotSnapshot
	err := s.db.QueryRow(ctx, findSlotForBookingSQL, slotID).Scan(
		&snap.ID,
		&snap.ExperienceID,
		&snap.ExperienceTitle,
		&snap.StartTime,
		&snap.EndTime,
		&snap.TotalSpots,
		&snap.SpotsAvailable,
		&snap.UnitPrice,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot", err)
	}

	return &snap, nil
}
