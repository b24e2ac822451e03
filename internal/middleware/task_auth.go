package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/adelacruz/timeplan/internal/errors"
	"github.com/adelacruz/timeplan/internal/services"
)

// ContextKeyTask is the gin-context key under which RequireTaskOwner stores
// the loaded task.
const ContextKeyTask = "task"

// RequireTaskOwner loads the task named by the :id route parameter, verifies
// it belongs to the authenticated user, and stores it in the context.
func RequireTaskOwner(taskService *services.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task id")
			c.Abort()
			return
		}

		task, err := taskService.GetTask(taskID)
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				apierrors.NotFound(c, "Task not found")
			} else {
				apierrors.InternalError(c, "Failed to load task")
			}
			c.Abort()
			return
		}

		if task.UserID != userID {
			// Do not reveal whether the task exists.
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set(ContextKeyTask, *task)
		c.Next()
	}
}
