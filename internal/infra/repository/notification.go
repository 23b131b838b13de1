package repository

import (
	"context"
	"time"

	"bookit/internal/infra"
	"bookit/internal/infra/db"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

const createJobSQL = `
INSERT INTO notification_jobs (kind, topic, payload, run_at)
VALUES ($1, $2, $3, $4)`

// CreateJob enqueues an outbox row in the booking transaction; a worker
// outside this core drains it.
func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	if _, err := r.db.Exec(ctx, createJobSQL, kind, topic, payload, runAt); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
