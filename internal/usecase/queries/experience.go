package queries

import (
	"context"
	"errors"

	"bookit/internal/infra"
	"bookit/internal/pkg/errs"
)

var ErrExperienceNotFound = errors.New("experience not found")

type ExperienceReadStore interface {
	List(ctx context.Context, search string) ([]*ExperienceView, error)
	FindWithSlots(ctx context.Context, id int64) (*ExperienceDetailView, error)
}

type ExperienceQueries interface {
	// List returns the catalog ordered by creation time, optionally filtered
	// by a case-insensitive substring over title, description and location.
	List(ctx context.Context, search string) ([]*ExperienceView, error)
	GetWithSlots(ctx context.Context, id int64) (*ExperienceDetailView, error)
}

type experienceQueriesImpl struct {
	store ExperienceReadStore
}

func NewExperienceQueries(store ExperienceReadStore) ExperienceQueries {
	return &experienceQueriesImpl{store: store}
}

func (q *experienceQueriesImpl) List(ctx context.Context, search string) ([]*ExperienceView, error) {
	views, err := q.store.List(ctx, search)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list experiences")
	}
	return views, nil
}

func (q *experienceQueriesImpl) GetWithSlots(ctx context.Context, id int64) (*ExperienceDetailView, error) {
	view, err := q.store.FindWithSlots(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrExperienceNotFound
		}
		return nil, errs.Wrap(err, "failed to find experience")
	}
	return view, nil
}
