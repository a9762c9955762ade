package designers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"marketplace-app/internal/domain/designers"
	"marketplace-app/internal/media"
	"marketplace-app/internal/store"
	"marketplace-app/internal/workflow"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store    store.Store
	engine   *workflow.Engine
	uploader media.Uploader
}

func NewHandler(s store.Store, e *workflow.Engine, u media.Uploader) *Handler {
	return &Handler{store: s, engine: e, uploader: u}
}

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized", "error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// userJoin projects only the public user columns into populated designers.
var userJoin = store.Join{Relation: "User", Fields: []string{"id", "name", "lastname", "email", "is_creator"}}

// ------------------------------
// POST /designers (multipart: shortDescription, about, logo?, background?)
// ------------------------------
func (h *Handler) CreateDesigner(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	shortDescription := c.PostForm("shortDescription")
	about := c.PostForm("about")
	if shortDescription == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "error": "shortDescription is required"})
		return
	}

	d := designers.Designer{
		UserID:           userID,
		ShortDescription: shortDescription,
		About:            about,
		IsApproved:       false,
	}

	for field, dst := range map[string]*string{
		"logo":       &d.LogoURL,
		"background": &d.BackgroundURL,
	} {
		file, err := c.FormFile(field)
		if err != nil {
			continue
		}
		url, err := h.uploadFile(c, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create designer", "error": "File upload failed"})
			return
		}
		*dst = url
	}

	if err := h.store.Designers().Create(c.Request.Context(), &d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to create designer", "error": "Designer may already exist for this user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Designer created", "designer": d})
}

func (h *Handler) uploadFile(c *gin.Context, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	contentType := file.Header.Get("Content-Type")
	return h.uploader.Upload(c.Request.Context(), data, contentType, "designers")
}

// ------------------------------
// GET /designers
// ------------------------------
func (h *Handler) ListDesigners(c *gin.Context) {
	rows, err := h.store.Designers().Find(
		c.Request.Context(),
		store.Filter{"is_approved": true},
		&store.Sort{Field: "created_at", Desc: true},
		nil,
		userJoin,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load designers", "error": err.Error()})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No designers found", "error": "No designers found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Designers fetched", "designers": rows})
}

// ------------------------------
// GET /designers/:designerId
// ------------------------------
func (h *Handler) GetDesigner(c *gin.Context) {
	d, err := h.store.Designers().FindByID(c.Request.Context(), c.Param("designerId"), userJoin)
	if err != nil {
		h.fail(c, err, "Failed to load designer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Designer fetched", "designer": d})
}

// ------------------------------
// PATCH /designers/:designerId/status (admin)
// ------------------------------
func (h *Handler) SetApprovalStatus(c *gin.Context) {
	var req struct {
		IsApproved *bool `json:"is_approved" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "error": "is_approved is required"})
		return
	}

	id := c.Param("designerId")
	if err := h.store.Designers().UpdateByID(c.Request.Context(), id, map[string]interface{}{
		"is_approved": *req.IsApproved,
	}); err != nil {
		h.fail(c, err, "Failed to update designer status")
		return
	}

	d, err := h.store.Designers().FindByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to load designer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Designer status updated", "designer": d})
}

// ------------------------------
// DELETE /designers/:designerId (admin)
// ------------------------------
func (h *Handler) DeleteDesigner(c *gin.Context) {
	if err := h.store.Designers().DeleteByID(c.Request.Context(), c.Param("designerId")); err != nil {
		h.fail(c, err, "Failed to delete designer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Designer deleted"})
}

// ------------------------------
// POST /designers/:designerId/update-request
// ------------------------------
func (h *Handler) SubmitUpdateRequest(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "error": "requestedUpdates body is required"})
		return
	}

	req, err := h.engine.SubmitUpdateRequest(c.Request.Context(), c.Param("designerId"), updates)
	if err != nil {
		h.fail(c, err, "Failed to submit update request")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Update request submitted", "updateRequest": req})
}

// ------------------------------
// PUT /designers/review/:requestId (admin)
// ------------------------------
func (h *Handler) ReviewUpdateRequest(c *gin.Context) {
	var req struct {
		Status        designers.RequestStatus `json:"status" binding:"required"`
		AdminComments string                  `json:"adminComments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "error": "status is required"})
		return
	}

	out, err := h.engine.ReviewUpdateRequest(c.Request.Context(), c.Param("requestId"), req.Status, req.AdminComments)
	if err != nil {
		h.fail(c, err, "Failed to review update request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Update request reviewed", "updateRequest": out})
}

// ------------------------------
// GET /designers/update-requests/latest (admin)
// ------------------------------
func (h *Handler) LatestUpdateRequests(c *gin.Context) {
	rows, err := h.store.Requests().Find(
		c.Request.Context(),
		nil,
		&store.Sort{Field: "created_at", Desc: true},
		&store.Page{Limit: 50},
		store.Join{Relation: "Designer"},
		store.Join{Relation: "Designer.User", Fields: []string{"id", "name", "lastname", "email"}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load update requests", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Update requests fetched", "updateRequests": rows})
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": msg, "error": err.Error()})
	case errors.Is(err, workflow.ErrAlreadyReviewed),
		errors.Is(err, workflow.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": msg, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": msg, "error": err.Error()})
	}
}
