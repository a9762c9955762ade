package admin

import (
	"net/http"

	"marketplace-app/internal/domain/designers"
	"marketplace-app/internal/domain/users"
	"marketplace-app/internal/domain/videos"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type AdminUser struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Lastname   string `json:"lastname"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
	IsCreator  bool   `json:"is_creator"`
}

type AdminStats struct {
	TotalUsers             int64 `json:"total_users"`
	TotalCreators          int64 `json:"total_creators"`
	TotalDesigners         int64 `json:"total_designers"`
	ApprovedDesigners      int64 `json:"approved_designers"`
	PendingUpdateRequests  int64 `json:"pending_update_requests"`
	PendingCreatorRequests int64 `json:"pending_creator_requests"`
	ApprovedVideos         int64 `json:"approved_videos"`
}

func (h *Handler) Dashboard(c *gin.Context) {
	var stats AdminStats

	h.db.Model(&users.User{}).Count(&stats.TotalUsers)
	h.db.Model(&users.User{}).Where("is_creator = ?", true).Count(&stats.TotalCreators)
	h.db.Model(&designers.Designer{}).Count(&stats.TotalDesigners)
	h.db.Model(&designers.Designer{}).Where("is_approved = ?", true).Count(&stats.ApprovedDesigners)
	h.db.Model(&designers.UpdateRequest{}).Where("status = ?", designers.StatusPending).Count(&stats.PendingUpdateRequests)
	h.db.Model(&videos.Video{}).Where("is_approved = ?", false).Count(&stats.PendingCreatorRequests)
	h.db.Model(&videos.Video{}).Where("is_approved = ?", true).Count(&stats.ApprovedVideos)

	c.JSON(http.StatusOK, gin.H{"message": "Dashboard stats", "stats": stats})
}

func (h *Handler) ListAllUsers(c *gin.Context) {
	var rows []users.User
	if err := h.db.Order("created_at DESC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load users", "error": err.Error()})
		return
	}

	out := make([]AdminUser, 0, len(rows))
	for _, u := range rows {
		out = append(out, AdminUser{
			ID:         u.ID,
			Name:       u.Name,
			Lastname:   u.Lastname,
			Email:      u.Email,
			Role:       u.Role,
			IsVerified: u.IsVerified,
			IsCreator:  u.IsCreator,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Users fetched", "users": out})
}

func (h *Handler) GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found", "error": "User not found"})
		return
	}

	var designer designers.Designer
	hasDesigner := h.db.Where("user_id = ?", user.ID).First(&designer).Error == nil

	var userVideos []videos.Video
	h.db.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&userVideos)

	resp := gin.H{
		"message": "User details fetched",
		"user":    user,
		"videos":  userVideos,
	}
	if hasDesigner {
		resp["designer"] = designer
	}
	c.JSON(http.StatusOK, resp)
}
