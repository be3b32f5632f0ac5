package groups

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/chatter/pkg/chatter/apperr"
	"github.com/mikepea/chatter/pkg/chatter/auth"
	"go.uber.org/zap"
)

// Handler handles group-related requests
type Handler struct {
	ledger *Ledger
	gate   *auth.Gate
	log    *zap.Logger
}

// NewHandler creates a new groups handler
func NewHandler(ledger *Ledger, gate *auth.Gate, log *zap.Logger) *Handler {
	return &Handler{ledger: ledger, gate: gate, log: log}
}

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name string `json:"name" form:"name" binding:"required"`
}

// List returns all groups, newest first
func (h *Handler) List(c *gin.Context) {
	groups, err := h.ledger.ListGroups(c.Request.Context())
	if err != nil {
		h.log.Error("list groups", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// Create creates a new group with the current user as its first member
func (h *Handler) Create(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	var req CreateGroupRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group name is required"})
		return
	}

	group, err := h.ledger.CreateGroup(c.Request.Context(), req.Name, user.ID)
	if err != nil {
		if apperr.IsClientError(err) {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
			return
		}
		h.log.Error("create group", zap.Uint("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Group created successfully",
		"group":   group,
	})
}

// Get returns a specific group with its members
func (h *Handler) Get(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	group, err := h.ledger.GetGroup(c.Request.Context(), uint(groupID))
	if err != nil {
		h.log.Error("get group", zap.Uint64("group_id", groupID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}
	if group == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	c.JSON(http.StatusOK, group)
}

// Join adds the current user to a group. Joining twice is not an error.
func (h *Handler) Join(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	added, err := h.ledger.AddMember(c.Request.Context(), uint(groupID), user.ID)
	if err != nil {
		if apperr.IsClientError(err) {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
			return
		}
		h.log.Error("join group", zap.Uint64("group_id", groupID), zap.Uint("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join group"})
		return
	}

	if !added {
		c.JSON(http.StatusOK, gin.H{"message": "Already a member of the group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully joined the group"})
}

// RegisterRoutes registers group routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.gate.Middleware(), h.Create)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/join", h.gate.Middleware(), h.Join)
}
