package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"recycle-rewards/internal/middleware"
	"recycle-rewards/internal/pkg/cache"
	"recycle-rewards/internal/policy"
	"recycle-rewards/internal/repository"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register creates a new account.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		log.Error().Err(err).Msg("Registration failed")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.accounts.GetUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type balanceResponse struct {
	Points             int64 `json:"points"`
	CurrencyEquivalent int64 `json:"currency_equivalent"`
}

// Balance returns the caller's points balance and its XAF equivalent.
// Reads are served from Redis when fresh.
func (h *Handler) Balance(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	key := cache.BalanceKey(userID)

	var cached balanceResponse
	if hit, err := h.cache.Get(ctx, key, &cached); err == nil && hit {
		c.JSON(http.StatusOK, cached)
		return
	}

	points, err := h.accounts.GetBalance(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	equivalent, err := policy.PointsToCurrency(points)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := balanceResponse{Points: points, CurrencyEquivalent: equivalent}
	if err := h.cache.Set(ctx, key, resp, cache.DefaultTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache balance")
	}
	c.JSON(http.StatusOK, resp)
}
