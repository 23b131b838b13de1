package api

import (
	"errors"
	"net/http"

	reqdto "bookit/internal/handler/dto/request"
	resdto "bookit/internal/handler/dto/response"
	"bookit/internal/handler/httperr"
	"bookit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PromoHandler struct {
	promoQueries queries.PromoQueries
}

func NewPromoHandler(promoQueries queries.PromoQueries) *PromoHandler {
	return &PromoHandler{
		promoQueries: promoQueries,
	}
}

// @Summary Validate promo code
// @Description Evaluate a promo code against the registry. An unrecognized code is a valid 200 response with valid=false, not an error.
// @Tags promo
// @Accept json
// @Produce json
// @Param request body reqdto.ValidatePromoRequest true "Promo code"
// @Success 200 {object} resdto.ValidatePromoResponse
// @Failure 400 {object} httperr.Response
// @Router /promo/validate [post]
func (h *PromoHandler) ValidatePromo(c *gin.Context) {
	var req reqdto.ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	discount, err := h.promoQueries.Validate(c.Request.Context(), req.PromoCode)
	if err != nil {
		if errors.Is(err, queries.ErrPromoNotFound) {
			c.JSON(http.StatusOK, resdto.InvalidPromo())
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDiscount(discount))
}
