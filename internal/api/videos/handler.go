package videos

import (
	"errors"
	"net/http"

	"marketplace-app/internal/domain/videos"
	"marketplace-app/internal/store"
	"marketplace-app/internal/workflow"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store  store.Store
	engine *workflow.Engine
}

func NewHandler(s store.Store, e *workflow.Engine) *Handler {
	return &Handler{store: s, engine: e}
}

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized", "error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// ------------------------------
// POST /videos/creator-request
// ------------------------------
func (h *Handler) SubmitCreatorRequest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		DesignerID  *string          `json:"designer_id"`
		TypeOfVideo videos.VideoType `json:"typeOfVideo"`
	}
	// body is optional; an empty application defaults to NormalVideo
	_ = c.ShouldBindJSON(&req)

	v, err := h.engine.SubmitVideoCreatorRequest(c.Request.Context(), userID, workflow.CreatorProfile{
		DesignerID:  req.DesignerID,
		TypeOfVideo: req.TypeOfVideo,
	})
	if err != nil {
		h.fail(c, err, "Failed to submit creator request")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Creator request submitted", "video": v})
}

// ------------------------------
// PUT /videos/review/:videoId (admin)
// ------------------------------
func (h *Handler) ReviewCreatorRequest(c *gin.Context) {
	var req struct {
		Approve *bool `json:"approve" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "error": "approve is required"})
		return
	}

	v, err := h.engine.ReviewVideoCreatorRequest(c.Request.Context(), c.Param("videoId"), *req.Approve)
	if err != nil {
		h.fail(c, err, "Failed to review creator request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Creator request reviewed", "video": v})
}

// ------------------------------
// PATCH /videos/:videoId/approval (admin)
// ------------------------------
func (h *Handler) ToggleApproval(c *gin.Context) {
	v, err := h.engine.ToggleVideoApproval(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		h.fail(c, err, "Failed to toggle video approval")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Video approval toggled", "video": v})
}

// ------------------------------
// POST /videos (creator only)
// ------------------------------
func (h *Handler) AddVideo(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		VideoID     string           `json:"video_id"`
		DesignerID  *string          `json:"designer_id"`
		TypeOfVideo videos.VideoType `json:"typeOfVideo"`
		URLs        []string         `json:"videoUrls" binding:"required"`
		ProductIDs  []string         `json:"product_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "error": "videoUrls is required"})
		return
	}

	v, err := h.engine.AddVideo(c.Request.Context(), userID, workflow.VideoInput{
		VideoID:     req.VideoID,
		DesignerID:  req.DesignerID,
		TypeOfVideo: req.TypeOfVideo,
		URLs:        req.URLs,
		ProductIDs:  req.ProductIDs,
	})
	if err != nil {
		h.fail(c, err, "Failed to add video")
		return
	}

	status := http.StatusCreated
	if req.VideoID != "" {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"message": "Video saved", "video": v})
}

// ------------------------------
// GET /videos
// ------------------------------
func (h *Handler) ListVideos(c *gin.Context) {
	rows, err := h.store.Videos().Find(
		c.Request.Context(),
		store.Filter{"is_approved": true},
		&store.Sort{Field: "created_at", Desc: true},
		nil,
		store.Join{Relation: "User", Fields: []string{"id", "name", "lastname", "is_creator"}},
		store.Join{Relation: "Designer"},
		store.Join{Relation: "Products"},
		store.Join{Relation: "Products.Category"},
		store.Join{Relation: "Comments"},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load videos", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Videos fetched", "videos": rows})
}

// ------------------------------
// POST /videos/:videoId/like
// ------------------------------
func (h *Handler) ToggleLike(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	v, err := h.engine.ToggleLike(c.Request.Context(), c.Param("videoId"), userID)
	if err != nil {
		h.fail(c, err, "Failed to toggle like")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Like toggled", "video": v})
}

// ------------------------------
// POST /videos/:videoId/comments
// ------------------------------
func (h *Handler) AddComment(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "error": "text is required"})
		return
	}

	comment, err := h.engine.AddComment(c.Request.Context(), c.Param("videoId"), userID, req.Text)
	if err != nil {
		h.fail(c, err, "Failed to add comment")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment added", "comment": comment})
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": msg, "error": err.Error()})
	case errors.Is(err, workflow.ErrPendingCreatorRequest),
		errors.Is(err, workflow.ErrNotCreator),
		errors.Is(err, workflow.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": msg, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": msg, "error": err.Error()})
	}
}
