package handler

import (
	"errors"
	"net/http"

	"taskhub/internal/model"
	"taskhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps service errors to HTTP responses. Validation and
// reference errors are 400, policy denials 403, missing targets 404 and
// everything else a logged 500.
func respondError(c *gin.Context, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(ve.Message, ""))
		return
	}
	switch {
	case errors.Is(err, service.ErrAssigneeNotFound):
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Assigned user not found", ""))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, model.NewErrorResponse("Not authorized", ""))
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, model.NewErrorResponse("Task not found", ""))
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, model.NewErrorResponse("User not found", ""))
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Server error", ""))
	}
}
