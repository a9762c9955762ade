package users

import (
	"net/http"

	"marketplace-app/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store store.Store
}

func NewHandler(s store.Store) *Handler {
	return &Handler{store: s}
}

type MeDTO struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Lastname   string `json:"lastname"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
	IsCreator  bool   `json:"is_creator"`
}

func (h *Handler) GetCurrentUser(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized", "error": "Unauthorized"})
		return
	}

	user, err := h.store.Users().FindByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found", "error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User fetched",
		"user": MeDTO{
			ID:         user.ID,
			Name:       user.Name,
			Lastname:   user.Lastname,
			Email:      user.Email,
			Role:       user.Role,
			IsVerified: user.IsVerified,
			IsCreator:  user.IsCreator,
		},
	})
}
