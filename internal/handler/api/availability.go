package api

import (
	"net/http"

	resdto "homeclean/internal/handler/dto/response"
	"homeclean/internal/handler/httperr"
	"homeclean/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.OrderQueries
}

func NewAvailabilityHandler(q queries.OrderQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Day availability
// @Description Busy slots of a date and the working-hours window
// @Tags availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /api/availability [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	view, err := h.q.Availability(c.Request.Context(), c.Query("date"))
	if err != nil {
		httperr.AbortWithUseCaseError(c, err, "Failed to load availability")
		return
	}
	resp, err := resdto.FromAvailabilityView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render availability", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
