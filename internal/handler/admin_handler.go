package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/moneyapp/internal/middleware"
	"github.com/moneyapp/internal/service"
	"github.com/moneyapp/pkg/response"
)

// AdminHandler handles administrative API requests
type AdminHandler struct {
	transactionService *service.TransactionService
	userService        *service.UserService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(transactionService *service.TransactionService, userService *service.UserService) *AdminHandler {
	return &AdminHandler{
		transactionService: transactionService,
		userService:        userService,
	}
}

// ListTransactions handles listing every transaction
// GET /api/v1/admin/transactions
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	txs, err := h.transactionService.ListAll(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err, "transaction not found")
		return
	}

	response.Success(c, txs)
}

// DeleteTransaction handles deleting any transaction
// DELETE /api/v1/admin/transaction/:id
func (h *AdminHandler) DeleteTransaction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.transactionService.AdminDelete(c.Request.Context(), middleware.GetClaims(c), id); err != nil {
		respondError(c, err, notFound(id))
		return
	}

	response.NoContent(c)
}

// ListUsers handles listing every user
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListAll(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err, "user not found")
		return
	}

	response.Success(c, users)
}

// DeleteUser handles deleting a user together with their transactions
// DELETE /api/v1/admin/user/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	summary, err := h.userService.Delete(c.Request.Context(), middleware.GetClaims(c), id)
	if err != nil {
		respondError(c, err, fmt.Sprintf("user %d not found", id))
		return
	}

	middleware.LogInfo("request_id=%s user %d deleted with %d transactions",
		middleware.RequestID(c), summary.UserID, summary.DeletedTransactions)
	response.NoContent(c)
}

// RegisterRoutes registers admin routes
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	admin := rg.Group("/admin")
	admin.Use(authMiddleware)
	{
		admin.GET("/transactions", h.ListTransactions)
		admin.DELETE("/transaction/:id", h.DeleteTransaction)
		admin.GET("/users", h.ListUsers)
		admin.DELETE("/user/:id", h.DeleteUser)
	}
}
