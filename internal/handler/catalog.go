package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recycle-rewards/internal/catalog"
)

// ListMethods returns the withdrawal method catalog.
func (h *Handler) ListMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": catalog.Methods()})
}

// ListWasteTypes returns the waste type catalog with reward rates.
func (h *Handler) ListWasteTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"waste_types": catalog.WasteTypes()})
}

// TopRecyclers returns the community leaderboard by points balance.
func (h *Handler) TopRecyclers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	users, err := h.rankings.TopRecyclers(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rankings": users})
}
