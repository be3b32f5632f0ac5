package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/chatter/pkg/chatter/models"
	"go.uber.org/zap"
)

const (
	// ContextKeyUser is the key for the authenticated user in gin context
	ContextKeyUser = "user"

	bearerPrefix = "Bearer "
)

// BearerToken extracts the credential from an Authorization header value.
// A "Bearer " prefix is removed if present; any other value is returned unchanged.
func BearerToken(header string) string {
	if strings.HasPrefix(header, bearerPrefix) {
		return header[len(bearerPrefix):]
	}
	return header
}

// Middleware authenticates the request's Authorization header and sets the user in context
func (g *Gate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := g.Authenticate(c.Request.Context(), BearerToken(c.GetHeader("Authorization")))
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// RequireMember checks that the authenticated user belongs to the group named
// by the given path parameter. It must run after Middleware.
func (g *Gate) RequireMember(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		groupID, err := strconv.ParseUint(c.Param(param), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
			c.Abort()
			return
		}

		if g.AuthorizeGroupAction(c.Request.Context(), uint(groupID), user.ID) {
			c.Next()
			return
		}

		// Only look the group up once membership has been denied
		exists, err := g.memberships.GroupExists(c.Request.Context(), uint(groupID))
		if err != nil {
			g.log.Error("group lookup failed", zap.Uint64("group_id", groupID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
			c.Abort()
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			c.Abort()
			return
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "You must be a member of the group to send messages"})
		c.Abort()
	}
}

// CurrentUser returns the authenticated user from the gin context
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}
