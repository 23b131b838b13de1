package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"bookit/internal/domain/booking"
	"bookit/internal/domain/catalog"
	"bookit/internal/domain/promo"
	"bookit/internal/infra"
	"bookit/internal/pkg/clock"
	"bookit/internal/pkg/config"
	"bookit/internal/pkg/errs"
	"bookit/internal/usecase/queries"
	"bookit/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrValidation           = errs.New("booking validation failed")
	ErrSlotNotFound         = errs.New("slot not found")
	ErrInsufficientCapacity = errs.New("not enough spots available")
	ErrPriceMismatch        = errs.New("final price does not match server quote")
	ErrDuplicateRequest     = errs.New("duplicate booking request")
	ErrTransientConflict    = errs.New("booking conflicted with concurrent requests")
	ErrStoreUnavailable     = errs.New("booking store unavailable")
)

const (
	bookingEndpoint     = "POST /bookings"
	idempotencyKeyTTL   = 24 * time.Hour
	idempotencyComplete = "completed"
)

type CreateBookingInput struct {
	SlotID     int64   `json:"slotId"`
	GuestName  string  `json:"userName"`
	GuestEmail string  `json:"userEmail"`
	Quantity   int     `json:"quantity"`
	FinalPrice int64   `json:"finalPrice"`
	PromoCode  *string `json:"promoCode,omitempty"`
}

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	// CreateBooking reserves spots against the slot's live capacity and
	// records the booking as one atomic unit. idempotencyKey is optional;
	// when present, retried submissions replay the original result.
	CreateBooking(ctx context.Context, in CreateBookingInput, idempotencyKey *uuid.UUID) (*CreateBookingResult, error)
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	promoQueries   queries.PromoQueries
	bookingQueries queries.BookingQueries
	cfg            config.BookingConfig
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	promoQueries queries.PromoQueries,
	bookingQueries queries.BookingQueries,
	cfg config.BookingConfig,
	clk clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		promoQueries:   promoQueries,
		bookingQueries: bookingQueries,
		cfg:            cfg,
		clock:          clk,
	}
}

func (u *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	in CreateBookingInput,
	idempotencyKey *uuid.UUID,
) (*CreateBookingResult, error) {
	// Fail fast before touching the store; no partial state on bad input.
	entity, err := booking.NewBooking(
		in.SlotID,
		in.GuestName,
		in.GuestEmail,
		in.Quantity,
		in.FinalPrice,
		in.PromoCode,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	discount, err := u.resolveDiscount(ctx, entity.PromoCode())
	if err != nil {
		return nil, err
	}

	var (
		bookingID int64
		replayed  bool
	)
	requestHash := hashRequest(in)

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if idempotencyKey != nil {
			existingID, dupErr := u.claimIdempotencyKey(ctx, tx, *idempotencyKey, requestHash)
			if dupErr != nil {
				return dupErr
			}
			if existingID != nil {
				bookingID = *existingID
				replayed = true
				return nil
			}
		}

		// The slot read runs inside the transaction; a pre-fetch would let a
		// concurrent booking invalidate what we saw.
		snap, readErr := tx.Reads().SlotForBooking(ctx, entity.SlotID())
		if readErr != nil {
			if infra.IsKind(readErr, infra.KindNotFound) {
				return ErrSlotNotFound
			}
			return readErr
		}

		slot, slotErr := catalog.NewSlot(
			snap.ID,
			snap.ExperienceID,
			snap.StartTime,
			snap.EndTime,
			int(snap.TotalSpots),
			int(snap.SpotsAvailable),
			snap.UnitPrice,
		)
		if slotErr != nil {
			return slotErr
		}

		// Advisory capacity check on the transactional snapshot. The guarded
		// decrement below remains the sole arbiter.
		if !slot.CanAccommodate(entity.Quantity().Value()) {
			return ErrInsufficientCapacity
		}

		if u.cfg.EnforceServerPrice {
			quote := booking.NewQuote(slot.UnitPrice(), entity.Quantity().Value(), discount)
			if quote.Total != entity.FinalPrice().Amount() {
				return ErrPriceMismatch
			}
		}

		// The guarded decrement is the sole arbiter of capacity: the check
		// and the write are a single conditional statement on the slot row.
		ok, resErr := tx.Slots().ReserveSpots(ctx, entity.SlotID(), entity.Quantity().Value())
		if resErr != nil {
			return resErr
		}
		if !ok {
			return ErrInsufficientCapacity
		}

		id, createErr := tx.Bookings().Create(ctx, entity)
		if createErr != nil {
			return createErr
		}
		bookingID = id

		if notifyErr := u.createConfirmationJob(ctx, tx, id, snap, entity); notifyErr != nil {
			return notifyErr
		}

		if idempotencyKey != nil {
			if markErr := tx.Idempotency().MarkCompleted(ctx, *idempotencyKey, id); markErr != nil {
				return markErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, classifyEngineError(err)
	}

	// Read-after-write: return the persisted view with its generated id and
	// timestamp.
	view, err := u.bookingQueries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	return &CreateBookingResult{
		Booking:    view,
		IsReplayed: replayed,
	}, nil
}

// resolveDiscount evaluates the echoed promo code. Unknown codes are
// tolerated and stored verbatim; they only matter when server-side pricing is
// enforced, where the missing discount surfaces as a price mismatch.
func (u *bookingUseCaseImpl) resolveDiscount(ctx context.Context, code *string) (*promo.Discount, error) {
	if code == nil {
		return nil, nil
	}

	d, err := u.promoQueries.Validate(ctx, *code)
	if err != nil {
		if errors.Is(err, queries.ErrPromoNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}
	return &d, nil
}

// claimIdempotencyKey returns the previously stored booking id when the key
// replays a completed request; nil when the key was freshly claimed.
func (u *bookingUseCaseImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key uuid.UUID,
	requestHash string,
) (*int64, error) {
	expiresAt := u.clock.Now().Add(idempotencyKeyTTL)

	existing, err := tx.Idempotency().Claim(ctx, key, bookingEndpoint, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if existing.RequestHash != requestHash {
		return nil, ErrDuplicateRequest
	}
	if existing.Status == idempotencyComplete && existing.ResultBookingID != nil {
		return existing.ResultBookingID, nil
	}
	// Same payload still in flight on another worker.
	return nil, ErrDuplicateRequest
}

func (u *bookingUseCaseImpl) createConfirmationJob(
	ctx context.Context,
	tx shared.Tx,
	bookingID int64,
	snap *shared.SlotSnapshot,
	entity *booking.Booking,
) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"user_email": entity.GuestEmail().String(),
		"experience": snap.ExperienceTitle,
		"start_time": snap.StartTime,
		"quantity":   entity.Quantity().Value(),
	})
	if err != nil {
		return err
	}

	return tx.Notifications().CreateJob(ctx, "email", "booking_confirmed", payload, u.clock.Now())
}

// classifyEngineError keeps business outcomes intact and folds everything
// else into the transient/infrastructure taxonomy. An overloaded store must
// never be reported as "sold out".
func classifyEngineError(err error) error {
	switch {
	case errors.Is(err, ErrSlotNotFound),
		errors.Is(err, ErrInsufficientCapacity),
		errors.Is(err, ErrPriceMismatch),
		errors.Is(err, ErrDuplicateRequest):
		return err
	case errors.Is(err, shared.ErrTxRetryExhausted):
		return errs.Mark(err, ErrTransientConflict)
	default:
		return errs.Mark(err, ErrStoreUnavailable)
	}
}

func hashRequest(in CreateBookingInput) string {
	data, _ := json.Marshal(in)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
