// Package handler exposes the workflows over HTTP. Handlers translate
// request payloads into service calls and workflow errors into status
// codes; all business rules live below this layer.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recycle-rewards/internal/auth"
	"recycle-rewards/internal/middleware"
	"recycle-rewards/internal/pkg/cache"
	"recycle-rewards/internal/service"
)

// Handler bundles the API's dependencies.
type Handler struct {
	accounts    *service.AccountService
	earnings    *service.EarningService
	withdrawals *service.WithdrawalService
	rankings    *service.RankingService
	cache       *cache.Cache
	tokens      *auth.Manager
}

// New creates a Handler.
func New(
	accounts *service.AccountService,
	earnings *service.EarningService,
	withdrawals *service.WithdrawalService,
	rankings *service.RankingService,
	c *cache.Cache,
	tokens *auth.Manager,
) *Handler {
	return &Handler{
		accounts:    accounts,
		earnings:    earnings,
		withdrawals: withdrawals,
		rankings:    rankings,
		cache:       c,
		tokens:      tokens,
	}
}

// RegisterRoutes wires all endpoints onto the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/methods", h.ListMethods)
	r.GET("/waste-types", h.ListWasteTypes)
	r.GET("/rankings/top", h.TopRecyclers)

	me := r.Group("/me", middleware.JWTAuth(h.tokens))
	me.GET("", h.Me)
	me.GET("/balance", h.Balance)
	me.GET("/transactions", h.Transactions)
	me.POST("/earnings", h.RecordEarning)
	me.POST("/withdrawals", h.RequestWithdrawal)
}

// respondError maps workflow errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, service.ErrUnknownMethod):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown withdrawal method"})
	case errors.Is(err, service.ErrAmountOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount outside method limits"})
	case errors.Is(err, service.ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "insufficient points balance"})
	case errors.Is(err, service.ErrInvalidPoints), errors.Is(err, service.ErrUnknownActivity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
