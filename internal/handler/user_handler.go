package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/moneyapp/internal/middleware"
	"github.com/moneyapp/internal/service"
	"github.com/moneyapp/pkg/response"
)

// UserHandler handles the caller's own profile
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Current handles reading the caller's profile
// GET /api/v1/user/current
func (h *UserHandler) Current(c *gin.Context) {
	user, err := h.userService.Current(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err, "user not found")
		return
	}

	response.Success(c, user)
}

// ChangePassword handles replacing the caller's password
// PUT /api/v1/user/change_password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req service.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), middleware.GetClaims(c), &req); err != nil {
		respondError(c, err, "user not found")
		return
	}

	response.NoContent(c)
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	user := rg.Group("/user")
	user.Use(authMiddleware)
	{
		user.GET("/current", h.Current)
		user.PUT("/change_password", h.ChangePassword)
	}
}
