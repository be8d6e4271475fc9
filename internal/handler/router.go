package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moneyapp/internal/middleware"
	"github.com/moneyapp/internal/monitoring"
	"github.com/moneyapp/internal/service"
)

// RouterDeps collects what the HTTP layer needs from the rest of the server
type RouterDeps struct {
	Auth         *service.AuthService
	Transactions *service.TransactionService
	Users        *service.UserService
	Metrics      *monitoring.Metrics // optional
	Version      string
}

// NewRouter builds the gin engine with every API route registered
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLoggerMiddleware())
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": deps.Version,
			"time":    time.Now().Unix(),
		})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	authMiddleware := middleware.AuthMiddleware(deps.Auth)

	v1 := router.Group("/api/v1")
	{
		NewAuthHandler(deps.Auth).RegisterRoutes(v1)
		NewTransactionHandler(deps.Transactions).RegisterRoutes(v1, authMiddleware)
		NewAdminHandler(deps.Transactions, deps.Users).RegisterRoutes(v1, authMiddleware)
		NewUserHandler(deps.Users).RegisterRoutes(v1, authMiddleware)
	}

	return router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
