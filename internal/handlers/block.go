package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobboard-service/internal/repositories"
	"jobboard-service/internal/telemetry"
)

// BlockHandler manages contact block endpoints.
type BlockHandler struct {
	blockRepo repositories.BlockRepository
	audit     *telemetry.AuditEmitter
}

// NewBlockHandler builds a BlockHandler.
func NewBlockHandler(blockRepo repositories.BlockRepository, audit *telemetry.AuditEmitter) *BlockHandler {
	return &BlockHandler{blockRepo: blockRepo, audit: audit}
}

// CreateBlock records an active block from the caller against another
// user.
func (h *BlockHandler) CreateBlock(c *gin.Context) {
	var req struct {
		BlockedID int     `json:"blockedId"`
		Reason    *string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.BlockedID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "blockedId is required"})
		return
	}

	blockerID := c.GetInt("userID")
	if blockerID == req.BlockedID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot block yourself"})
		return
	}

	block, err := h.blockRepo.Create(c.Request.Context(), blockerID, req.BlockedID, req.Reason)
	if err != nil {
		h.audit.Emit(c.Request.Context(), "ERROR", "block create failed", requestIDFromContext(c), userIDFromContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create block"})
		return
	}

	h.audit.Emit(c.Request.Context(), "WARN", "contact blocked", requestIDFromContext(c), userIDFromContext(c))
	c.JSON(http.StatusCreated, block)
}

// RevokeBlock lifts a block the caller owns.
func (h *BlockHandler) RevokeBlock(c *gin.Context) {
	blockID, err := strconv.Atoi(c.Param("block_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid block id"})
		return
	}

	if err := h.blockRepo.Revoke(c.Request.Context(), blockID, c.GetInt("userID")); err != nil {
		if errors.Is(err, repositories.ErrBlockNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "block not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not revoke block"})
		return
	}

	c.Status(http.StatusNoContent)
}
