package handler

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"recycle-rewards/internal/catalog"
	"recycle-rewards/internal/middleware"
	"recycle-rewards/internal/model"
	"recycle-rewards/internal/pkg/cache"
	"recycle-rewards/internal/reward"
)

var phonePattern = regexp.MustCompile(`^\d{9}$`)

type earningRequest struct {
	Activity string `json:"activity" binding:"required"`

	// Scan fields.
	WasteTypeID string  `json:"waste_type_id"`
	WeightKg    float64 `json:"weight_kg"`

	// Quiz fields.
	QuizPoints int64 `json:"quiz_points"`
	Correct    int   `json:"correct"`
	Total      int   `json:"total"`
}

// RecordEarning credits points for a scan or a completed quiz. The award
// is computed here from the activity inputs; the workflow only sees the
// resulting point count.
func (h *Handler) RecordEarning(c *gin.Context) {
	var req earningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		points  int64
		details string
		err     error
	)
	switch req.Activity {
	case model.ActivityScan:
		wasteType, ok := catalog.WasteType(req.WasteTypeID)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown waste type"})
			return
		}
		points, err = reward.ScanAward(wasteType.PointsPerKg, req.WeightKg)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		details = wasteType.Name + " " + strconv.FormatFloat(req.WeightKg, 'f', -1, 64) + "kg"
	case model.ActivityQuiz:
		points, err = reward.QuizAward(req.QuizPoints, req.Correct, req.Total)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		details = "Quiz " + strconv.Itoa(req.Correct) + "/" + strconv.Itoa(req.Total)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown activity kind"})
		return
	}

	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	created, err := h.earnings.RecordEarning(ctx, userID, req.Activity, points, details)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.cache.InvalidateUser(ctx, userID); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate cache after earning")
	}
	c.JSON(http.StatusCreated, created)
}

type withdrawalRequest struct {
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	MethodID string `json:"method_id" binding:"required"`
	Contact  string `json:"contact" binding:"required"`
}

// RequestWithdrawal converts points into a payout. Contact format is
// checked here: mobile-money methods need a 9-digit phone number, the card
// method accepts any non-empty token.
func (h *Handler) RequestWithdrawal(c *gin.Context) {
	var req withdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if method, ok := catalog.Method(req.MethodID); ok && method.RequiresPhone {
		phone := strings.ReplaceAll(req.Contact, " ", "")
		if !phonePattern.MatchString(phone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone number"})
			return
		}
		req.Contact = phone
	}

	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	result, err := h.withdrawals.RequestWithdrawal(ctx, userID, req.Amount, req.MethodID, req.Contact)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.cache.InvalidateUser(ctx, userID); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate cache after withdrawal")
	}
	c.JSON(http.StatusCreated, result)
}

// defaultHistoryLimit is the page size served when the caller does not
// ask for one.
const defaultHistoryLimit = 50

// Transactions lists the caller's ledger history, newest first. kind
// filters to earnings or withdrawals; limit caps the page size. Only the
// default-limit listing is cached: the cache key carries no limit, so a
// custom page size must never be stored under it.
func (h *Handler) Transactions(c *gin.Context) {
	kind := c.Query("kind")
	if kind != "" && kind != model.KindEarning && kind != model.KindWithdrawal {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid kind filter"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultHistoryLimit)))

	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	key := cache.HistoryKey(userID, kind)
	cacheable := limit == defaultHistoryLimit

	if cacheable {
		var cached []*model.Transaction
		if hit, err := h.cache.Get(ctx, key, &cached); err == nil && hit {
			c.JSON(http.StatusOK, gin.H{"transactions": cached})
			return
		}
	}

	transactions, err := h.accounts.ListTransactions(ctx, userID, kind, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	if cacheable {
		if err := h.cache.Set(ctx, key, transactions, cache.DefaultTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to cache transaction history")
		}
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
