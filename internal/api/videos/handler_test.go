package videos_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	videosapi "marketplace-app/internal/api/videos"
	"marketplace-app/internal/domain/users"
	"marketplace-app/internal/domain/videos"
	"marketplace-app/internal/store/storetest"
	"marketplace-app/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(mem *storetest.Memory, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := videosapi.NewHandler(mem, workflow.New(mem))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", "admin")
	})
	r.GET("/videos", h.ListVideos)
	r.POST("/videos", h.AddVideo)
	r.POST("/videos/creator-request", h.SubmitCreatorRequest)
	r.PUT("/videos/review/:videoId", h.ReviewCreatorRequest)
	r.PATCH("/videos/:videoId/approval", h.ToggleApproval)
	r.POST("/videos/:videoId/like", h.ToggleLike)
	r.POST("/videos/:videoId/comments", h.AddComment)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatorRequestFlow(t *testing.T) {
	mem := storetest.New()
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com"})
	r := newRouter(mem, u.ID)

	w := do(r, http.MethodPost, "/videos/creator-request", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Video videos.Video `json:"video"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Video.IsApproved)

	// duplicate while pending
	w = do(r, http.MethodPost, "/videos/creator-request", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// admin approves and the user becomes a creator
	w = do(r, http.MethodPut, "/videos/review/"+resp.Video.ID, `{"approve": true}`)
	require.Equal(t, http.StatusOK, w.Code)

	gotU, _ := mem.User(u.ID)
	assert.True(t, gotU.IsCreator)
}

func TestReviewCreatorRequest_MissingVideo(t *testing.T) {
	mem := storetest.New()
	r := newRouter(mem, 1)

	w := do(r, http.MethodPut, "/videos/review/no-such-id", `{"approve": true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddVideo_NonCreatorRejected(t *testing.T) {
	mem := storetest.New()
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com"})
	r := newRouter(mem, u.ID)

	w := do(r, http.MethodPost, "/videos", `{"videoUrls":["https://cdn/v.mp4"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddVideo_Creator(t *testing.T) {
	mem := storetest.New()
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com", IsCreator: true})
	r := newRouter(mem, u.ID)

	w := do(r, http.MethodPost, "/videos", `{"videoUrls":["https://cdn/v.mp4"],"typeOfVideo":"ProductVideo"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, mem.VideoCount())
}

func TestToggleApprovalAndLike(t *testing.T) {
	mem := storetest.New()
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com"})
	v := mem.SeedVideo(videos.Video{UserID: u.ID})
	r := newRouter(mem, u.ID)

	w := do(r, http.MethodPatch, "/videos/"+v.ID+"/approval", "")
	require.Equal(t, http.StatusOK, w.Code)
	got, _ := mem.Video(v.ID)
	assert.True(t, got.IsApproved)

	w = do(r, http.MethodPost, "/videos/"+v.ID+"/like", "")
	require.Equal(t, http.StatusOK, w.Code)
	got, _ = mem.Video(v.ID)
	assert.Equal(t, 1, got.Likes)

	w = do(r, http.MethodPost, "/videos/"+v.ID+"/like", "")
	require.Equal(t, http.StatusOK, w.Code)
	got, _ = mem.Video(v.ID)
	assert.Equal(t, 0, got.Likes)
}

func TestAddComment_Endpoint(t *testing.T) {
	mem := storetest.New()
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com"})
	v := mem.SeedVideo(videos.Video{UserID: u.ID, IsApproved: true})
	r := newRouter(mem, u.ID)

	w := do(r, http.MethodPost, "/videos/"+v.ID+"/comments", `{"text":"nice"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, mem.Comments(), 1)

	w = do(r, http.MethodPost, "/videos/"+v.ID+"/comments", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListVideos_OnlyApproved(t *testing.T) {
	mem := storetest.New()
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com"})
	mem.SeedVideo(videos.Video{UserID: u.ID, IsApproved: true, URLs: []string{"https://cdn/a.mp4"}})
	mem.SeedVideo(videos.Video{UserID: u.ID, IsApproved: false})
	r := newRouter(mem, u.ID)

	w := do(r, http.MethodGet, "/videos", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Videos []videos.Video `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Videos, 1)
}
