package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apierrors "github.com/adelacruz/timeplan/internal/errors"
	"github.com/adelacruz/timeplan/internal/repository"
	"github.com/adelacruz/timeplan/internal/services"
)

// respondServiceError maps service-layer errors onto the API error
// envelope: validation failures name the field, not-found is 404, an
// exhausted store retry is 503, anything else is 500.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr.Field, verr.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrRecurringTaskNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, repository.ErrStoreUnavailable):
		apierrors.ServiceUnavailable(c, "")
	default:
		apierrors.InternalError(c, "")
	}
}

func respondAuthError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr.Field, verr.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	default:
		respondServiceError(c, err)
	}
}
