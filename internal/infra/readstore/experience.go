package readstore

import (
	"context"

	"bookit/internal/infra"
	"bookit/internal/infra/db"
	"bookit/internal/pkg/pgconv"
	"bookit/internal/usecase/queries"
)

type ExperienceReadStore struct {
	db db.DBTX
}

func NewExperienceReadStore(dbtx db.DBTX) *ExperienceReadStore {
	return &ExperienceReadStore{db: dbtx}
}

// Empty search lists everything; the ILIKE wildcard pattern degenerates to
// '%%' which matches all rows, so one statement covers both shapes.
const listExperiencesSQL = `
SELECT id, title, description, price, location, image_url, created_at
FROM experiences
WHERE title ILIKE $1 OR description ILIKE $1 OR location ILIKE $1
ORDER BY created_at`

func (s *ExperienceReadStore) List(ctx context.Context, search string) ([]*queries.ExperienceView, error) {
	rows, err := s.db.Query(ctx, listExperiencesSQL, "%"+search+"%")
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list experiences", err)
	}
	defer rows.Close()

	views := make([]*queries.ExperienceView, 0)
	for rows.Next() {
		var v queries.ExperienceView
		if err := rows.Scan(
			&v.ID,
			&v.Title,
			&v.Description,
			&v.PricePerUnit,
			&v.Location,
			&v.ImageURL,
			&v.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan experience", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate experiences", err)
	}

	return views, nil
}

const findExperienceSQL = `
SELECT id, title, description, price, location, image_url, created_at
FROM experiences
WHERE id = $1`

const listSlotsByExperienceSQL = `
SELECT id, experience_id, start_time, end_time, total_spots, spots_available
FROM slots
WHERE experience_id = $1
ORDER BY start_time`

func (s *ExperienceReadStore) FindWithSlots(ctx context.Context, id int64) (*queries.ExperienceDetailView, error) {
	var detail queries.ExperienceDetailView
	err := s.db.QueryRow(ctx, findExperienceSQL, id).Scan(
		&detail.ID,
		&detail.Title,
		&detail.Description,
		&detail.PricePerUnit,
		&detail.Location,
		&detail.ImageURL,
		&detail.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("experience not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find experience", err)
	}

	rows, err := s.db.Query(ctx, listSlotsByExperienceSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots", err)
	}
	defer rows.Close()

	detail.Slots = make([]queries.SlotView, 0)
	for rows.Next() {
		var v queries.SlotView
		if err := rows.Scan(
			&v.ID,
			&v.ExperienceID,
			&v.StartTime,
			&v.EndTime,
			&v.TotalSpots,
			&v.SpotsAvailable,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot", err)
		}
		detail.Slots = append(detail.Slots, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slots", err)
	}

	return &detail, nil
}
