//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bookit/internal/domain/booking"
	"bookit/internal/infra"
	"bookit/internal/infra/promoregistry"
	"bookit/internal/pkg/clock"
	"bookit/internal/pkg/config"
	"bookit/internal/pkg/errs"
	"bookit/internal/usecase/commands"
	"bookit/internal/usecase/queries"
	"bookit/internal/usecase/shared"
	"bookit/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is a mutex-guarded in-memory stand-in for the Postgres unit of
// work. The mutex serializes transactions the way the slot row lock does, and
// a pre-transaction snapshot is restored on error so failed transactions leave
// no partial state.
// bookingRow mirrors a persisted bookings row.
type bookingRow struct {
	ID         int64
	SlotID     int64
	GuestName  string
	GuestEmail string
	Quantity   int32
	FinalPrice int64
	PromoCode  *string
	CreatedAt  time.Time
}

type fakeStore struct {
	mu          sync.Mutex
	slots       map[int64]*shared.SlotSnapshot
	bookings    map[int64]*bookingRow
	idempotency map[uuid.UUID]*shared.IdempotencyRecord
	jobs        int
	nextID      int64

	reads  int
	writes int

	failTx error
}

func newFakeStore(slots ...*shared.SlotSnapshot) *fakeStore {
	s := &fakeStore{
		slots:       make(map[int64]*shared.SlotSnapshot),
		bookings:    make(map[int64]*bookingRow),
		idempotency: make(map[uuid.UUID]*shared.IdempotencyRecord),
	}
	for _, slot := range slots {
		copied := *slot
		s.slots[slot.ID] = &copied
	}
	return s
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := &fakeStore{
		slots:       make(map[int64]*shared.SlotSnapshot, len(s.slots)),
		bookings:    make(map[int64]*bookingRow, len(s.bookings)),
		idempotency: make(map[uuid.UUID]*shared.IdempotencyRecord, len(s.idempotency)),
		jobs:        s.jobs,
		nextID:      s.nextID,
	}
	for id, slot := range s.slots {
		copied := *slot
		cp.slots[id] = &copied
	}
	for id, b := range s.bookings {
		copied := *b
		cp.bookings[id] = &copied
	}
	for key, rec := range s.idempotency {
		copied := *rec
		cp.idempotency[key] = &copied
	}
	return cp
}

func (s *fakeStore) restore(cp *fakeStore) {
	s.slots = cp.slots
	s.bookings = cp.bookings
	s.idempotency = cp.idempotency
	s.jobs = cp.jobs
	s.nextID = cp.nextID
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	if u.store.failTx != nil {
		return u.store.failTx
	}

	cp := u.store.snapshot()
	if err := fn(ctx, &fakeTx{store: u.store}); err != nil {
		u.store.restore(cp)
		return err
	}
	return nil
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Slots() shared.SlotRepository                 { return &fakeSlotRepo{store: t.store} }
func (t *fakeTx) Bookings() shared.BookingRepository           { return &fakeBookingRepo{store: t.store} }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository    { return &fakeIdemRepo{store: t.store} }
func (t *fakeTx) Notifications() shared.NotificationRepository { return &fakeNotifyRepo{store: t.store} }
func (t *fakeTx) Reads() shared.CommandReads                   { return &fakeReads{store: t.store, locked: true} }

type fakeReads struct {
	store  *fakeStore
	locked bool
}

func (r *fakeReads) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *fakeReads) SlotForBooking(_ context.Context, slotID int64) (*shared.SlotSnapshot, error) {
	defer r.lock()()
	r.store.reads++
	slot, ok := r.store.slots[slotID]
	if !ok {
		return nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	copied := *slot
	return &copied, nil
}

type fakeSlotRepo struct {
	store *fakeStore
}

func (r *fakeSlotRepo) ReserveSpots(_ context.Context, slotID int64, quantity int) (bool, error) {
	r.store.writes++
	slot, ok := r.store.slots[slotID]
	if !ok || slot.SpotsAvailable < int32(quantity) {
		return false, nil
	}
	slot.SpotsAvailable -= int32(quantity)
	return true, nil
}

type fakeBookingRepo struct {
	store *fakeStore
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) (int64, error) {
	r.store.writes++
	r.store.nextID++
	id := r.store.nextID
	r.store.bookings[id] = &bookingRow{
		ID:         id,
		SlotID:     b.SlotID(),
		GuestName:  b.GuestName().String(),
		GuestEmail: b.GuestEmail().String(),
		Quantity:   int32(b.Quantity().Value()),
		FinalPrice: b.FinalPrice().Amount(),
		PromoCode:  b.PromoCode(),
		CreatedAt:  time.Now(),
	}
	return id, nil
}

type fakeIdemRepo struct {
	store *fakeStore
}

func (r *fakeIdemRepo) Claim(_ context.Context, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (*shared.IdempotencyRecord, error) {
	if existing, ok := r.store.idempotency[key]; ok {
		copied := *existing
		return &copied, nil
	}
	r.store.idempotency[key] = &shared.IdempotencyRecord{
		Key:         key,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		Status:      "processing",
		ExpiresAt:   expiresAt,
	}
	return nil, nil
}

func (r *fakeIdemRepo) MarkCompleted(_ context.Context, key uuid.UUID, resultBookingID int64) error {
	rec, ok := r.store.idempotency[key]
	if !ok {
		return errors.New("idempotency key not claimed")
	}
	rec.Status = "completed"
	rec.ResultBookingID = &resultBookingID
	return nil
}

type fakeNotifyRepo struct {
	store *fakeStore
}

func (r *fakeNotifyRepo) CreateJob(_ context.Context, _, _ string, _ []byte, _ time.Time) error {
	r.store.jobs++
	return nil
}

// fakeBookingReadStore serves the read-after-write in CreateBooking from the
// same store the fake transaction writes to.
type fakeBookingReadStore struct {
	store *fakeStore
}

func (r *fakeBookingReadStore) FindByID(_ context.Context, id int64) (*queries.BookingView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return &queries.BookingView{
		ID:         b.ID,
		SlotID:     b.SlotID,
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
		Quantity:   b.Quantity,
		FinalPrice: b.FinalPrice,
		PromoCode:  b.PromoCode,
		CreatedAt:  b.CreatedAt,
	}, nil
}

func newEngine(store *fakeStore, cfg config.BookingConfig) commands.BookingCommands {
	promoQueries := queries.NewPromoQueries(promoregistry.NewStaticRegistry())
	bookingQueries := queries.NewBookingQueries(&fakeBookingReadStore{store: store})
	clk := clock.NewMockClock(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))
	return commands.NewBookingCommands(&fakeUoW{store: store}, promoQueries, bookingQueries, cfg, clk)
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success decrements capacity and records booking", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		store := newFakeStore(b.BuildSlotSnapshot(5))
		engine := newEngine(store, config.BookingConfig{})

		result, err := engine.CreateBooking(ctx, b.BuildInput(), nil)
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.False(t, result.IsReplayed)
		assert.Equal(t, int64(1), result.Booking.ID)
		assert.Equal(t, b.UserEmail, result.Booking.GuestEmail)
		assert.Equal(t, int32(3), store.slots[b.SlotID].SpotsAvailable)
		assert.Equal(t, 1, store.jobs)
	})

	t.Run("validation failure touches no state", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		store := newFakeStore(b.BuildSlotSnapshot(5))
		engine := newEngine(store, config.BookingConfig{})

		cases := []struct {
			name   string
			mutate func(*builder.BookingBuilder)
		}{
			{name: "zero quantity", mutate: func(b *builder.BookingBuilder) { b.WithQuantity(0) }},
			{name: "bad email", mutate: func(b *builder.BookingBuilder) { b.WithUserEmail("not-an-email") }},
			{name: "empty name", mutate: func(b *builder.BookingBuilder) { b.WithUserName(" ") }},
			{name: "zero final price", mutate: func(b *builder.BookingBuilder) { b.WithFinalPrice(0) }},
			{name: "zero slot id", mutate: func(b *builder.BookingBuilder) { b.WithSlotID(0) }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				in := builder.NewBookingBuilder().With(tc.mutate).BuildInput()
				_, err := engine.CreateBooking(ctx, in, nil)
				require.ErrorIs(t, err, commands.ErrValidation)
			})
		}

		assert.Zero(t, store.reads, "validation failures must not read the store")
		assert.Zero(t, store.writes, "validation failures must not write the store")
		assert.Equal(t, int32(5), store.slots[b.SlotID].SpotsAvailable)
	})

	t.Run("unknown slot", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithSlotID(999)
		store := newFakeStore()
		engine := newEngine(store, config.BookingConfig{})

		_, err := engine.CreateBooking(ctx, b.BuildInput(), nil)
		require.ErrorIs(t, err, commands.ErrSlotNotFound)
		assert.Empty(t, store.bookings)
	})

	t.Run("insufficient capacity leaves slot untouched", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithQuantity(3)
		store := newFakeStore(b.BuildSlotSnapshot(2))
		engine := newEngine(store, config.BookingConfig{})

		_, err := engine.CreateBooking(ctx, b.BuildInput(), nil)
		require.ErrorIs(t, err, commands.ErrInsufficientCapacity)

		assert.Equal(t, int32(2), store.slots[b.SlotID].SpotsAvailable)
		assert.Empty(t, store.bookings)
		assert.Zero(t, store.jobs)
	})

	t.Run("exact remaining capacity succeeds", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithQuantity(2)
		store := newFakeStore(b.BuildSlotSnapshot(2))
		engine := newEngine(store, config.BookingConfig{})

		result, err := engine.CreateBooking(ctx, b.BuildInput(), nil)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, int32(0), store.slots[b.SlotID].SpotsAvailable)
	})

	t.Run("unknown promo code is stored verbatim", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithPromoCode("NOSUCHCODE")
		store := newFakeStore(b.BuildSlotSnapshot(5))
		engine := newEngine(store, config.BookingConfig{})

		result, err := engine.CreateBooking(ctx, b.BuildInput(), nil)
		require.NoError(t, err)
		require.NotNil(t, result.Booking.PromoCode)
		assert.Equal(t, "NOSUCHCODE", *result.Booking.PromoCode)
	})

	t.Run("transient conflicts and store failures keep their taxonomy", func(t *testing.T) {
		b := builder.NewBookingBuilder()

		store := newFakeStore(b.BuildSlotSnapshot(5))
		store.failTx = errs.Mark(errors.New("deadlock detected"), shared.ErrTxRetryExhausted)
		engine := newEngine(store, config.BookingConfig{})
		_, err := engine.CreateBooking(ctx, b.BuildInput(), nil)
		require.ErrorIs(t, err, commands.ErrTransientConflict)

		store = newFakeStore(b.BuildSlotSnapshot(5))
		store.failTx = errors.New("connection refused")
		engine = newEngine(store, config.BookingConfig{})
		_, err = engine.CreateBooking(ctx, b.BuildInput(), nil)
		require.ErrorIs(t, err, commands.ErrStoreUnavailable)
	})
}

func TestCreateBookingServerPrice(t *testing.T) {
	ctx := context.Background()
	cfg := config.BookingConfig{EnforceServerPrice: true}

	t.Run("matching quote passes", func(t *testing.T) {
		// 2*999 + 59 = 2057, SAVE10 takes off 205
		b := builder.NewBookingBuilder().WithPromoCode("SAVE10").WithFinalPrice(1852)
		store := newFakeStore(b.BuildSlotSnapshot(5))
		engine := newEngine(store, cfg)

		result, err := engine.CreateBooking(ctx, b.BuildInput(), nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1852), result.Booking.FinalPrice)
	})

	t.Run("mismatched price rejected before the decrement", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithPromoCode("SAVE10").WithFinalPrice(1)
		store := newFakeStore(b.BuildSlotSnapshot(5))
		engine := newEngine(store, cfg)

		_, err := engine.CreateBooking(ctx, b.BuildInput(), nil)
		require.ErrorIs(t, err, commands.ErrPriceMismatch)
		assert.Equal(t, int32(5), store.slots[b.SlotID].SpotsAvailable)
		assert.Empty(t, store.bookings)
	})

	t.Run("unrecognized code means undiscounted quote", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithPromoCode("NOSUCHCODE").WithFinalPrice(1852)
		store := newFakeStore(b.BuildSlotSnapshot(5))
		engine := newEngine(store, cfg)

		_, err := engine.CreateBooking(ctx, b.BuildInput(), nil)
		require.ErrorIs(t, err, commands.ErrPriceMismatch)
	})
}

func TestCreateBookingIdempotency(t *testing.T) {
	ctx := context.Background()

	t.Run("same key replays the original booking", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		store := newFakeStore(b.BuildSlotSnapshot(5))
		engine := newEngine(store, config.BookingConfig{})
		key := uuid.New()

		first, err := engine.CreateBooking(ctx, b.BuildInput(), &key)
		require.NoError(t, err)
		assert.False(t, first.IsReplayed)
		assert.Equal(t, int32(3), store.slots[b.SlotID].SpotsAvailable)

		second, err := engine.CreateBooking(ctx, b.BuildInput(), &key)
		require.NoError(t, err)
		assert.True(t, second.IsReplayed)
		assert.Equal(t, first.Booking.ID, second.Booking.ID)

		// Replay must not consume capacity again.
		assert.Equal(t, int32(3), store.slots[b.SlotID].SpotsAvailable)
		assert.Len(t, store.bookings, 1)
	})

	t.Run("same key with different payload is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		store := newFakeStore(b.BuildSlotSnapshot(5))
		engine := newEngine(store, config.BookingConfig{})
		key := uuid.New()

		_, err := engine.CreateBooking(ctx, b.BuildInput(), &key)
		require.NoError(t, err)

		other := builder.NewBookingBuilder().WithQuantity(1).BuildInput()
		_, err = engine.CreateBooking(ctx, other, &key)
		require.ErrorIs(t, err, commands.ErrDuplicateRequest)
	})

	t.Run("key still in flight is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		store := newFakeStore(b.BuildSlotSnapshot(5))
		engine := newEngine(store, config.BookingConfig{})
		key := uuid.New()

		// Simulate a claim from a worker that has not completed.
		in := b.BuildInput()
		store.idempotency[key] = &shared.IdempotencyRecord{
			Key:         key,
			Endpoint:    "POST /bookings",
			RequestHash: requestHash(t, in),
			Status:      "processing",
			ExpiresAt:   time.Now().Add(time.Hour),
		}

		_, err := engine.CreateBooking(ctx, in, &key)
		require.ErrorIs(t, err, commands.ErrDuplicateRequest)
	})
}

// requestHash mirrors the engine's canonical request fingerprint.
func requestHash(t *testing.T, in commands.CreateBookingInput) string {
	t.Helper()
	data, err := json.Marshal(in)
	require.NoError(t, err)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestCreateBookingConcurrency(t *testing.T) {
	ctx := context.Background()

	t.Run("one winner for the last spot", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithQuantity(1)
		store := newFakeStore(b.BuildSlotSnapshot(1))
		engine := newEngine(store, config.BookingConfig{})

		const workers = 8
		var (
			wg           sync.WaitGroup
			successes    int64
			insufficient int64
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := engine.CreateBooking(ctx, b.BuildInput(), nil)
				switch {
				case err == nil:
					atomic.AddInt64(&successes, 1)
				case errors.Is(err, commands.ErrInsufficientCapacity):
					atomic.AddInt64(&insufficient, 1)
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(1), successes)
		assert.Equal(t, int64(workers-1), insufficient)
		assert.Equal(t, int32(0), store.slots[b.SlotID].SpotsAvailable)
		assert.Len(t, store.bookings, 1)
	})

	t.Run("capacity invariant under racing multi-spot requests", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithQuantity(2)
		store := newFakeStore(b.BuildSlotSnapshot(5))
		engine := newEngine(store, config.BookingConfig{})

		const workers = 10
		var (
			wg        sync.WaitGroup
			successes int64
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := engine.CreateBooking(ctx, b.BuildInput(), nil); err == nil {
					atomic.AddInt64(&successes, 1)
				}
			}()
		}
		wg.Wait()

		// 5 spots, 2 per booking: exactly two bookings fit.
		assert.Equal(t, int64(2), successes)
		assert.Equal(t, int32(1), store.slots[b.SlotID].SpotsAvailable)
		assert.GreaterOrEqual(t, store.slots[b.SlotID].SpotsAvailable, int32(0))
	})
}
