package users

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/chatter/pkg/chatter/apperr"
	"github.com/mikepea/chatter/pkg/chatter/models"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Handler handles user-related requests
type Handler struct {
	service *Service
	log     *zap.Logger
}

// NewHandler creates a new users handler
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisteredUserResponse includes the bearer token (only shown once)
type RegisteredUserResponse struct {
	UserResponse
	Token string `json:"token"`
}

// ToUserResponse converts a user to its public representation.
func ToUserResponse(u models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}

// Create registers a new user
func (h *Handler) Create(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Username)
	if err != nil {
		if apperr.IsClientError(err) {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
			return
		}
		h.log.Error("register user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user": RegisteredUserResponse{
			UserResponse: ToUserResponse(*user),
			Token:        user.Token,
		},
	})
}

// List returns all users, newest first
func (h *Handler) List(c *gin.Context) {
	users, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.log.Error("list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": lo.Map(users, func(u models.User, _ int) UserResponse { return ToUserResponse(u) }),
	})
}

// Get returns a specific user
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		h.log.Error("get user", zap.Uint64("user_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, ToUserResponse(*user))
}

// RegisterRoutes registers user routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
}
