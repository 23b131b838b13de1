package queries

import (
	"context"
	"errors"

	"bookit/internal/domain/promo"
	"bookit/internal/infra"
	"bookit/internal/pkg/errs"
)

// ErrPromoNotFound is a negative evaluation result, not an application error:
// unrecognized codes (including the empty string) are an expected outcome.
var ErrPromoNotFound = errors.New("promo code not found")

// PromoRecord is the raw registry row before domain validation.
type PromoRecord struct {
	Code  string
	Kind  string
	Value int64
}

// PromoSource is the injected promo registry. Implementations: a static
// in-memory map (parity with the original constant registry) and the
// promo_codes table.
type PromoSource interface {
	FindByCode(ctx context.Context, code string) (*PromoRecord, error)
}

type PromoQueries interface {
	// Validate maps a code to its discount. Case-sensitive, side-effect free,
	// idempotent.
	Validate(ctx context.Context, code string) (promo.Discount, error)
}

type promoQueriesImpl struct {
	source PromoSource
}

func NewPromoQueries(source PromoSource) PromoQueries {
	return &promoQueriesImpl{source: source}
}

func (q *promoQueriesImpl) Validate(ctx context.Context, code string) (promo.Discount, error) {
	if code == "" {
		return promo.Discount{}, ErrPromoNotFound
	}

	record, err := q.source.FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return promo.Discount{}, ErrPromoNotFound
		}
		return promo.Discount{}, errs.Wrap(err, "failed to look up promo code")
	}

	entity, err := promo.NewPromo(record.Code, promo.DiscountKind(record.Kind), record.Value)
	if err != nil {
		return promo.Discount{}, errs.Wrap(err, "invalid promo registry entry")
	}

	return entity.Discount(), nil
}
