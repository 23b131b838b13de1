package promoregistry

import (
	"context"

	"bookit/internal/domain/promo"
	"bookit/internal/infra"
	"bookit/internal/usecase/queries"
)

// StaticRegistry is the default promo source: a fixed in-memory table.
// Lookups are case-sensitive.
type StaticRegistry struct {
	codes map[string]queries.PromoRecord
}

func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{
		codes: map[string]queries.PromoRecord{
			"SAVE10":  {Code: "SAVE10", Kind: string(promo.KindPercentage), Value: 10},
			"FLAT100": {Code: "FLAT100", Kind: string(promo.KindFixed), Value: 100},
		},
	}
}

func (r *StaticRegistry) FindByCode(_ context.Context, code string) (*queries.PromoRecord, error) {
	record, ok := r.codes[code]
	if !ok {
		return nil, infra.WrapRepoErr("promo code not registered", nil, infra.KindNotFound)
	}
	return &record, nil
}
