package shared

import (
	"context"
	"time"

	"bookit/internal/domain/booking"
	"bookit/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrTxRetryExhausted marks a transaction that kept hitting write conflicts
// after the unit of work's bounded retries. Callers surface it as a transient
// failure, never as a business outcome.
var ErrTxRetryExhausted = errs.New("transaction failed after max retries")

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Slots() SlotRepository
	Bookings() BookingRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

type CommandReads interface {
	// SlotForBooking reads the slot joined with its experience price. Inside
	// Within this runs in the same transaction as the decrement; a pre-fetch
	// outside the transaction would reopen the capacity race.
	SlotForBooking(ctx context.Context, slotID int64) (*SlotSnapshot, error)
}

// Minimal snapshot for command-side reads.
type SlotSnapshot struct {
	ID              int64
	ExperienceID    int64
	ExperienceTitle string
	StartTime       time.Time
	EndTime         time.Time
	TotalSpots      int32
	SpotsAvailable  int32
	UnitPrice       int64
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	Endpoint        string
	RequestHash     string
	Status          string
	ResultBookingID *int64
	ExpiresAt       time.Time
}

type SlotRepository interface {
	// ReserveSpots performs the guarded conditional decrement:
	// spots_available -= quantity iff spots_available >= quantity. Returns
	// false when the guard fails; the slot row is untouched in that case.
	ReserveSpots(ctx context.Context, slotID int64, quantity int) (bool, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (int64, error)
}

type IdempotencyRepository interface {
	// Claim inserts a processing row for key, or returns the existing record
	// when the key was already claimed. Expired claims are recycled.
	Claim(ctx context.Context, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, key uuid.UUID, resultBookingID int64) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
