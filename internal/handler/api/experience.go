package api

import (
	"errors"
	"net/http"
	"strconv"

	resdto "bookit/internal/handler/dto/response"
	"bookit/internal/handler/httperr"
	"bookit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ExperienceHandler struct {
	experienceQueries queries.ExperienceQueries
}

func NewExperienceHandler(experienceQueries queries.ExperienceQueries) *ExperienceHandler {
	return &ExperienceHandler{
		experienceQueries: experienceQueries,
	}
}

// @Summary List experiences
// @Description List the catalog, optionally filtered by a search term
// @Tags experiences
// @Produce json
// @Param search query string false "Case-insensitive substring over title, description and location"
// @Success 200 {array} resdto.ExperienceResponse
// @Router /experiences [get]
func (h *ExperienceHandler) ListExperiences(c *gin.Context) {
	views, err := h.experienceQueries.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.ExperienceResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromExperienceView(v)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get experience
// @Description Get an experience with its slots
// @Tags experiences
// @Produce json
// @Param id path int true "Experience ID"
// @Success 200 {object} resdto.ExperienceDetailResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /experiences/{id} [get]
func (h *ExperienceHandler) GetExperience(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil && id <= 0 {
		err = errors.New("experience id must be positive")
	}
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid experience ID format", nil)
		return
	}

	view, err := h.experienceQueries.GetWithSlots(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrExperienceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Experience not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromExperienceDetailView(view))
}
