package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adelacruz/timeplan/internal/dto"
	apierrors "github.com/adelacruz/timeplan/internal/errors"
	"github.com/adelacruz/timeplan/internal/middleware"
	"github.com/adelacruz/timeplan/internal/models"
	"github.com/adelacruz/timeplan/internal/services"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks runs one named filter over the current user's tasks.
// The filter query parameter defaults to "All Tasks".
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	filterName := c.DefaultQuery("filter", services.FilterAllTasks)
	tasks, err := h.taskService.ListTasks(userID, filterName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filter": filterName,
		"tasks":  dto.ToTaskDTOs(tasks),
	})
}

// SearchTasks matches a term against title and description.
func (h *TaskHandler) SearchTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.SearchTasks(userID, c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": dto.ToTaskDTOs(tasks)})
}

// GetTask returns the task loaded by RequireTaskOwner.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask adds a new task for the current user.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
		DueDate     string `json:"due_date"`
		Category    string `json:"category"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, err := dto.ParseOptionalDate(req.DueDate)
	if err != nil {
		apierrors.ValidationFailed(c, "due_date", err.Error())
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		PriorityName: req.Priority,
		DueDate:      dueDate,
		CategoryName: req.Category,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to the task loaded by
// RequireTaskOwner. A present-but-empty due_date clears the deadline.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	type UpdateTaskRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Priority    *string `json:"priority"`
		DueDate     *string `json:"due_date"`
		Category    *string `json:"category"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		PriorityName: req.Priority,
		CategoryName: req.Category,
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			input.ClearDueDate = true
		} else {
			dueDate, err := dto.ParseOptionalDate(*req.DueDate)
			if err != nil {
				apierrors.ValidationFailed(c, "due_date", err.Error())
				return
			}
			input.DueDate = dueDate
		}
	}

	updated, err := h.taskService.UpdateTask(task.ID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// CompleteTask moves the task to the Completed category.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	h.transition(c, true)
}

// UncompleteTask moves the task back to On-going.
func (h *TaskHandler) UncompleteTask(c *gin.Context) {
	h.transition(c, false)
}

func (h *TaskHandler) transition(c *gin.Context, complete bool) {
	task, ok := taskFromContext(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	var (
		updated *models.Task
		err     error
	)
	if complete {
		updated, err = h.taskService.CompleteTask(task.ID)
	} else {
		updated, err = h.taskService.UncompleteTask(task.ID)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask removes the task loaded by RequireTaskOwner.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

// ListCategories returns the seeded category vocabulary.
func (h *TaskHandler) ListCategories(c *gin.Context) {
	categories, err := h.taskService.Categories()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListPriorities returns the seeded priority vocabulary.
func (h *TaskHandler) ListPriorities(c *gin.Context) {
	priorities, err := h.taskService.Priorities()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"priorities": priorities})
}

func taskFromContext(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(middleware.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}
	task, ok := value.(models.Task)
	return task, ok
}
