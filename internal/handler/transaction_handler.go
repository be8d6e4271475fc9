package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/moneyapp/internal/middleware"
	"github.com/moneyapp/internal/service"
	"github.com/moneyapp/pkg/response"
)

// TransactionHandler handles the caller's own transactions
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// List handles listing the caller's transactions
// GET /api/v1/transaction
func (h *TransactionHandler) List(c *gin.Context) {
	txs, err := h.transactionService.List(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err, "transaction not found")
		return
	}

	response.Success(c, txs)
}

// Get handles reading one transaction
// GET /api/v1/transaction/get/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	tx, err := h.transactionService.Get(c.Request.Context(), middleware.GetClaims(c), id)
	if err != nil {
		respondError(c, err, notFound(id))
		return
	}

	response.Success(c, tx)
}

// Create handles creating a transaction
// POST /api/v1/transaction/create
func (h *TransactionHandler) Create(c *gin.Context) {
	var req service.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tx, err := h.transactionService.Create(c.Request.Context(), middleware.GetClaims(c), &req)
	if err != nil {
		respondError(c, err, "transaction not found")
		return
	}

	response.Created(c, tx)
}

// Update handles replacing a transaction
// PUT /api/v1/transaction/update/:id
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if _, err := h.transactionService.Update(c.Request.Context(), middleware.GetClaims(c), id, &req); err != nil {
		respondError(c, err, notFound(id))
		return
	}

	response.NoContent(c)
}

// Delete handles deleting a transaction
// DELETE /api/v1/transaction/delete/:id
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.transactionService.Delete(c.Request.Context(), middleware.GetClaims(c), id); err != nil {
		respondError(c, err, notFound(id))
		return
	}

	response.NoContent(c)
}

// RegisterRoutes registers transaction routes
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	transactions := rg.Group("/transaction")
	transactions.Use(authMiddleware)
	{
		transactions.GET("", h.List)
		transactions.GET("/get/:id", h.Get)
		transactions.POST("/create", h.Create)
		transactions.PUT("/update/:id", h.Update)
		transactions.DELETE("/delete/:id", h.Delete)
	}
}

// notFound builds the one message used for both absent and foreign transactions
func notFound(id uint) string {
	return fmt.Sprintf("transaction %d not found", id)
}
