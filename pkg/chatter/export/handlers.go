// Package export serves a group's full history as a downloadable transcript.
package export

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/chatter/pkg/chatter/auth"
	"github.com/mikepea/chatter/pkg/chatter/groups"
	"github.com/mikepea/chatter/pkg/chatter/messages"
	"github.com/mikepea/chatter/pkg/chatter/models"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Handler handles transcript export requests
type Handler struct {
	groups   *groups.Ledger
	messages *messages.Ledger
	gate     *auth.Gate
	log      *zap.Logger
}

// NewHandler creates a new export handler
func NewHandler(g *groups.Ledger, m *messages.Ledger, gate *auth.Gate, log *zap.Logger) *Handler {
	return &Handler{groups: g, messages: m, gate: gate, log: log}
}

// Transcript is a group's complete history
type Transcript struct {
	Group      models.Group             `json:"group"`
	Members    []models.Member          `json:"members"`
	Messages   []models.AuthoredMessage `json:"messages"` // oldest first
	ExportedAt time.Time                `json:"exported_at"`
}

// Export returns the transcript of a group the current user belongs to
func (h *Handler) Export(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}
	ctx := c.Request.Context()

	group, err := h.groups.GetGroup(ctx, uint(groupID))
	if err != nil {
		h.log.Error("export group", zap.Uint64("group_id", groupID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}
	if group == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	history, err := h.messages.ListByGroup(ctx, group.ID, messages.ListOptions{})
	if err != nil {
		h.log.Error("export messages", zap.Uint64("group_id", groupID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	transcript := Transcript{
		Group:      group.Group,
		Members:    group.Members,
		Messages:   lo.Reverse(history),
		ExportedAt: time.Now().UTC(),
	}

	// Set content disposition for download
	if c.Query("download") == "true" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=chatter-group-%d.json", group.ID))
	}

	c.JSON(http.StatusOK, transcript)
}

// RegisterRoutes registers export routes under the groups router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/export", h.gate.Middleware(), h.gate.RequireMember("id"), h.Export)
}
