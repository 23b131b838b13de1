package readstore

import (
	"context"

	"bookit/internal/infra"
	"bookit/internal/infra/db"
	"bookit/internal/pkg/pgconv"
	"bookit/internal/usecase/queries"
)

// PromoReadStore backs the promo registry with the promo_codes table.
// Selected over the static registry with PROMO_SOURCE=db.
type PromoReadStore struct {
	db db.DBTX
}

func NewPromoReadStore(dbtx db.DBTX) *PromoReadStore {
	return &PromoReadStore{db: dbtx}
}

// Codes match case-sensitively; no LOWER() on either side.
const findPromoSQL = `
SELECT code, kind, value
FROM promo_codes
WHERE code = $1`

func (s *PromoReadStore) FindByCode(ctx context.Context, code string) (*queries.PromoRecord, error) {
	var record queries.PromoRecord
	err := s.db.QueryRow(ctx, findPromoSQL, code).Scan(
		&record.Code,
		&record.Kind,
		&record.Value,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("promo code not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find promo code", err)
	}

	return &record, nil
}
