package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-service/internal/models"
	"jobboard-service/internal/repositories"
)

// UserHandler manages profile endpoints.
type UserHandler struct {
	userRepo repositories.UserRepository
}

// NewUserHandler builds a UserHandler.
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// CreateUser registers a profile row. Credentials stay with the
// external auth provider.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		FullName *string `json:"fullName"`
		Email    string  `json:"email"`
		Role     string  `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.Email == "" || req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and role are required"})
		return
	}
	switch req.Role {
	case models.RoleJobSeeker, models.RoleRecruiter, models.RoleAdmin:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	user, err := h.userRepo.Create(c.Request.Context(), req.FullName, req.Email, req.Role, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}
