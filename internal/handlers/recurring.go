package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adelacruz/timeplan/internal/dates"
	"github.com/adelacruz/timeplan/internal/dto"
	apierrors "github.com/adelacruz/timeplan/internal/errors"
	"github.com/adelacruz/timeplan/internal/middleware"
	"github.com/adelacruz/timeplan/internal/models"
	"github.com/adelacruz/timeplan/internal/services"
)

// RecurringHandler coordinates habit-definition HTTP handlers.
type RecurringHandler struct {
	recurringService *services.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService *services.RecurringService) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// List returns the current user's habit definitions.
func (h *RecurringHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	defs, err := h.recurringService.List(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_tasks": dto.ToRecurringTaskDTOs(defs)})
}

// TodayStatuses answers "is each habit due or completed today".
func (h *RecurringHandler) TodayStatuses(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	statuses, err := h.recurringService.TodayStatuses(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statuses": dto.ToRecurringStatusDTOs(statuses)})
}

// Create adds a new habit definition.
func (h *RecurringHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateRecurringRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		StartDate   string `json:"start_date" binding:"required"`
		Pattern     string `json:"pattern" binding:"required"`
	}

	var req CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	startDate, err := dates.Parse(req.StartDate)
	if err != nil {
		apierrors.ValidationFailed(c, "start_date", err.Error())
		return
	}

	def, err := h.recurringService.Create(services.CreateRecurringInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		Pattern:     req.Pattern,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecurringTaskDTO(*def))
}

// Update applies a partial edit to a definition owned by the current user.
func (h *RecurringHandler) Update(c *gin.Context) {
	def, ok := h.ownedDefinition(c)
	if !ok {
		return
	}

	type UpdateRecurringRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		StartDate   *string `json:"start_date"`
		Pattern     *string `json:"pattern"`
	}

	var req UpdateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateRecurringInput{
		Title:       req.Title,
		Description: req.Description,
		Pattern:     req.Pattern,
	}
	if req.StartDate != nil {
		startDate, err := dates.Parse(*req.StartDate)
		if err != nil {
			apierrors.ValidationFailed(c, "start_date", err.Error())
			return
		}
		input.StartDate = &startDate
	}

	updated, err := h.recurringService.Update(def.ID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringTaskDTO(*updated))
}

// Delete removes a definition owned by the current user.
func (h *RecurringHandler) Delete(c *gin.Context) {
	def, ok := h.ownedDefinition(c)
	if !ok {
		return
	}

	if err := h.recurringService.Delete(def.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recurring task deleted"})
}

// Complete records a completion for a specific occurrence date.
func (h *RecurringHandler) Complete(c *gin.Context) {
	h.toggleCompletion(c, true)
}

// Uncomplete clears a completion keyed on a specific occurrence date.
func (h *RecurringHandler) Uncomplete(c *gin.Context) {
	h.toggleCompletion(c, false)
}

func (h *RecurringHandler) toggleCompletion(c *gin.Context, complete bool) {
	def, ok := h.ownedDefinition(c)
	if !ok {
		return
	}

	type CompletionRequest struct {
		Date string `json:"date" binding:"required"`
	}

	var req CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	date, err := dates.Parse(req.Date)
	if err != nil {
		apierrors.ValidationFailed(c, "date", err.Error())
		return
	}

	var updated = def
	if complete {
		updated, err = h.recurringService.Complete(def.ID, date)
	} else {
		updated, err = h.recurringService.Uncomplete(def.ID, date)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringTaskDTO(*updated))
}

// ownedDefinition loads the :id definition and verifies ownership. It
// writes the error response itself when it returns ok=false.
func (h *RecurringHandler) ownedDefinition(c *gin.Context) (*models.RecurringTask, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return nil, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid recurring task id")
		return nil, false
	}

	def, err := h.recurringService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	if def.UserID != userID {
		apierrors.NotFound(c, "Recurring task not found")
		return nil, false
	}
	return def, true
}
