package request

type ValidatePromoRequest struct {
	PromoCode string `json:"promoCode" binding:"required"`
}
