package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/moneyapp/internal/middleware"
	"github.com/moneyapp/internal/service"
	"github.com/moneyapp/pkg/response"
)

// respondError maps service errors onto HTTP responses. Authentication and
// authorization failures never carry more detail than a generic message.
func respondError(c *gin.Context, err error, notFoundMessage string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.BadRequest(c, verr.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "could not validate credentials")
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrInvalidToken):
		response.Unauthorized(c, "authentication failed")
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, notFoundMessage)
	case errors.Is(err, service.ErrNotAcceptable):
		response.NotAcceptable(c, "old password not correct")
	case errors.Is(err, service.ErrConflict):
		response.Conflict(c, err.Error())
	default:
		_ = c.Error(err)
		middleware.LogError("request_id=%s %s %s failed: %v", middleware.RequestID(c), c.Request.Method, c.FullPath(), err)
		response.InternalError(c, "internal server error")
	}
}

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+name+": must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
