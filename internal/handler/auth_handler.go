package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/moneyapp/internal/service"
	"github.com/moneyapp/pkg/response"
)

// AuthHandler handles authentication API requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
// POST /api/v1/auth/create
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "user not found")
		return
	}

	response.Created(c, user)
}

// Token handles OAuth2 password-form login
// POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.login(c, &req)
}

// Login handles JSON login
// POST /api/v1/auth/get/token
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.login(c, &req)
}

func (h *AuthHandler) login(c *gin.Context, req *service.LoginRequest) {
	token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "user not found")
		return
	}

	response.Success(c, token)
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/create", h.Register)
		auth.POST("/token", h.Token)
		auth.POST("/get/token", h.Login)
	}
}
