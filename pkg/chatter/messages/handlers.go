package messages

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mikepea/chatter/pkg/chatter/apperr"
	"github.com/mikepea/chatter/pkg/chatter/auth"
	"go.uber.org/zap"
)

// DefaultPageSize is used when Options.PageSize is not set.
const DefaultPageSize = 50

// Options tunes the message transport.
type Options struct {
	// PageSize is the limit applied when a request does not send one.
	PageSize int
	// Sanitize strips all HTML from posted content before it is stored.
	Sanitize bool
}

// Handler handles message-related requests
type Handler struct {
	ledger   *Ledger
	gate     *auth.Gate
	log      *zap.Logger
	pageSize int
	policy   *bluemonday.Policy
}

// NewHandler creates a new messages handler
func NewHandler(ledger *Ledger, gate *auth.Gate, log *zap.Logger, opts Options) *Handler {
	h := &Handler{ledger: ledger, gate: gate, log: log, pageSize: opts.PageSize}
	if h.pageSize <= 0 {
		h.pageSize = DefaultPageSize
	}
	if opts.Sanitize {
		h.policy = bluemonday.StrictPolicy()
	}
	return h
}

// PostMessageRequest represents the request to post a message
type PostMessageRequest struct {
	Content string `json:"content" form:"content" binding:"required"`
}

// ListQuery is the paging window for listing messages
type ListQuery struct {
	Limit  *int `form:"limit" binding:"omitempty,min=1"`
	Offset int  `form:"offset" binding:"min=0"`
}

// List returns a group's messages newest first
func (h *Handler) List(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit or offset"})
		return
	}
	opts := ListOptions{Limit: h.pageSize, Offset: q.Offset}
	if q.Limit != nil {
		opts.Limit = *q.Limit
	}

	msgs, err := h.ledger.ListByGroup(c.Request.Context(), uint(groupID), opts)
	if err != nil {
		h.log.Error("list messages", zap.Uint64("group_id", groupID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// Create posts a message as the current user. Membership is enforced by the route's middleware.
func (h *Handler) Create(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is required"})
		return
	}

	content := req.Content
	if h.policy != nil {
		content = h.policy.Sanitize(content)
	}

	msg, err := h.ledger.PostMessage(c.Request.Context(), uint(groupID), user.ID, content)
	if err != nil {
		if apperr.IsClientError(err) {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
			return
		}
		h.log.Error("post message", zap.Uint64("group_id", groupID), zap.Uint("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully",
		"data":    msg,
	})
}

// Get returns a single message belonging to the group in the path
func (h *Handler) Get(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}
	messageID, err := strconv.ParseUint(c.Param("messageId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	msg, err := h.ledger.GetByID(c.Request.Context(), uint(messageID))
	if err != nil {
		h.log.Error("get message", zap.Uint64("message_id", messageID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch message"})
		return
	}
	if msg == nil || msg.GroupID != uint(groupID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	c.JSON(http.StatusOK, msg)
}

// RegisterRoutes registers message routes under the groups router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/messages", h.List)
	rg.POST("/:id/messages", h.gate.Middleware(), h.gate.RequireMember("id"), h.Create)
	rg.GET("/:id/messages/:messageId", h.Get)
}
