package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adelacruz/timeplan/internal/clock"
	"github.com/adelacruz/timeplan/internal/constants"
	"github.com/adelacruz/timeplan/internal/dates"
	apierrors "github.com/adelacruz/timeplan/internal/errors"
	"github.com/adelacruz/timeplan/internal/middleware"
	"github.com/adelacruz/timeplan/internal/services"
)

// CalendarHandler serves the date-window feed the GUI paints calendar
// markers from.
type CalendarHandler struct {
	calendarService *services.CalendarService
	clock           clock.Clock
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService *services.CalendarService, clk clock.Clock) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService, clock: clk}
}

// Entries returns all markers in the [from, to] window. Both bounds are
// optional: from defaults to today, to defaults to the fixed horizon.
func (h *CalendarHandler) Entries(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	from := h.clock.Today()
	if raw := c.Query("from"); raw != "" {
		parsed, err := dates.Parse(raw)
		if err != nil {
			apierrors.ValidationFailed(c, "from", err.Error())
			return
		}
		from = parsed
	}

	to := from.AddDays(constants.CalendarHorizonDays)
	if raw := c.Query("to"); raw != "" {
		parsed, err := dates.Parse(raw)
		if err != nil {
			apierrors.ValidationFailed(c, "to", err.Error())
			return
		}
		to = parsed
	}

	entries, err := h.calendarService.Entries(userID, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":    from.String(),
		"to":      to.String(),
		"entries": entries,
	})
}
