package workflow_test

import (
	"context"
	"errors"
	"testing"

	"marketplace-app/internal/domain/designers"
	"marketplace-app/internal/domain/users"
	"marketplace-app/internal/domain/videos"
	"marketplace-app/internal/store/storetest"
	"marketplace-app/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newEngine(t *testing.T) (*workflow.Engine, *storetest.Memory) {
	t.Helper()
	mem := storetest.New()
	return workflow.New(mem), mem
}

func seedDesigner(mem *storetest.Memory) designers.Designer {
	u := mem.SeedUser(users.User{Name: "Mina", Email: "mina@example.com"})
	return mem.SeedDesigner(designers.Designer{
		UserID:           u.ID,
		ShortDescription: "original",
		About:            "about text",
	})
}

func TestSubmitUpdateRequest_DesignerMissing(t *testing.T) {
	engine, mem := newEngine(t)

	_, err := engine.SubmitUpdateRequest(context.Background(), "no-such-id", map[string]interface{}{
		"shortDescription": "new",
	})

	require.ErrorIs(t, err, workflow.ErrNotFound)
	assert.Equal(t, 0, mem.RequestCount(), "no request document may be created")
}

func TestSubmitUpdateRequest_StoresUpdatesVerbatim(t *testing.T) {
	engine, mem := newEngine(t)
	d := seedDesigner(mem)

	req, err := engine.SubmitUpdateRequest(context.Background(), d.ID, map[string]interface{}{
		"shortDescription": "new",
		"unknownField":     42,
	})

	require.NoError(t, err)
	assert.Equal(t, designers.StatusPending, req.Status)
	assert.Equal(t, "new", req.RequestedUpdates["shortDescription"])
	assert.Equal(t, 42, req.RequestedUpdates["unknownField"], "no validation happens at submission")
}

func TestReviewUpdateRequest_ApproveMergesAllowListedFields(t *testing.T) {
	engine, mem := newEngine(t)
	d := seedDesigner(mem)
	req := mem.SeedRequest(designers.UpdateRequest{
		DesignerID: d.ID,
		Status:     designers.StatusPending,
		RequestedUpdates: datatypes.JSONMap{
			"shortDescription": "X",
			"user_id":          uint(99), // identity key, must be ignored
		},
	})

	out, err := engine.ReviewUpdateRequest(context.Background(), req.ID, designers.StatusApproved, "")
	require.NoError(t, err)

	assert.Equal(t, designers.StatusApproved, out.Status)
	assert.Equal(t, "Update request approved", out.AdminComments)

	got, _ := mem.Designer(d.ID)
	assert.Equal(t, "X", got.ShortDescription)
	assert.Equal(t, d.UserID, got.UserID, "identity must not change")
	assert.False(t, got.IsApproved, "approval flag is independent of request status")
}

func TestReviewUpdateRequest_RejectLeavesDesignerUnchanged(t *testing.T) {
	engine, mem := newEngine(t)
	d := seedDesigner(mem)
	req := mem.SeedRequest(designers.UpdateRequest{
		DesignerID:       d.ID,
		Status:           designers.StatusPending,
		RequestedUpdates: datatypes.JSONMap{"shortDescription": "X"},
	})

	out, err := engine.ReviewUpdateRequest(context.Background(), req.ID, designers.StatusRejected, "not good enough")
	require.NoError(t, err)

	assert.Equal(t, designers.StatusRejected, out.Status)
	assert.Equal(t, "not good enough", out.AdminComments)

	got, _ := mem.Designer(d.ID)
	assert.Equal(t, "original", got.ShortDescription)
}

func TestReviewUpdateRequest_AlreadyReviewed(t *testing.T) {
	engine, mem := newEngine(t)
	d := seedDesigner(mem)

	for _, status := range []designers.RequestStatus{designers.StatusApproved, designers.StatusRejected} {
		req := mem.SeedRequest(designers.UpdateRequest{
			DesignerID:       d.ID,
			Status:           status,
			RequestedUpdates: datatypes.JSONMap{"shortDescription": "X"},
		})

		_, err := engine.ReviewUpdateRequest(context.Background(), req.ID, designers.StatusApproved, "")
		require.ErrorIs(t, err, workflow.ErrAlreadyReviewed)

		got, _ := mem.Request(req.ID)
		assert.Equal(t, status, got.Status, "terminal status must not change")
		gotD, _ := mem.Designer(d.ID)
		assert.Equal(t, "original", gotD.ShortDescription)
	}
}

func TestReviewUpdateRequest_MissingRequest(t *testing.T) {
	engine, _ := newEngine(t)
	_, err := engine.ReviewUpdateRequest(context.Background(), "no-such-id", designers.StatusApproved, "")
	require.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestReviewUpdateRequest_InvalidDecision(t *testing.T) {
	engine, _ := newEngine(t)
	_, err := engine.ReviewUpdateRequest(context.Background(), "any", designers.RequestStatus("Maybe"), "")
	require.ErrorIs(t, err, workflow.ErrValidation)
}

func TestReviewUpdateRequest_SkipsEmptyMerge(t *testing.T) {
	engine, mem := newEngine(t)
	d := seedDesigner(mem)
	req := mem.SeedRequest(designers.UpdateRequest{
		DesignerID:       d.ID,
		Status:           designers.StatusPending,
		RequestedUpdates: datatypes.JSONMap{"unknownField": "x"},
	})

	// a designer write would fail, so success proves the merge was skipped
	mem.FailOn["designers.update"] = errors.New("boom")

	out, err := engine.ReviewUpdateRequest(context.Background(), req.ID, designers.StatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, designers.StatusApproved, out.Status)
}

func TestReviewUpdateRequest_TransactionRollsBackDesignerMerge(t *testing.T) {
	engine, mem := newEngine(t)
	d := seedDesigner(mem)
	req := mem.SeedRequest(designers.UpdateRequest{
		DesignerID:       d.ID,
		Status:           designers.StatusPending,
		RequestedUpdates: datatypes.JSONMap{"shortDescription": "X"},
	})

	mem.FailOn["requests.update"] = errors.New("boom")

	_, err := engine.ReviewUpdateRequest(context.Background(), req.ID, designers.StatusApproved, "")
	require.Error(t, err)

	got, _ := mem.Designer(d.ID)
	assert.Equal(t, "original", got.ShortDescription, "designer merge must roll back with the status write")
	gotReq, _ := mem.Request(req.ID)
	assert.Equal(t, designers.StatusPending, gotReq.Status)
}

func TestSubmitVideoCreatorRequest(t *testing.T) {
	engine, mem := newEngine(t)
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com"})

	v, err := engine.SubmitVideoCreatorRequest(context.Background(), u.ID, workflow.CreatorProfile{})
	require.NoError(t, err)
	assert.False(t, v.IsApproved)
	assert.Equal(t, videos.NormalVideo, v.TypeOfVideo)

	// second application while the first is pending
	_, err = engine.SubmitVideoCreatorRequest(context.Background(), u.ID, workflow.CreatorProfile{})
	require.ErrorIs(t, err, workflow.ErrPendingCreatorRequest)
	assert.Equal(t, 1, mem.VideoCount(), "no second document may be created")
}

func TestSubmitVideoCreatorRequest_UserMissing(t *testing.T) {
	engine, _ := newEngine(t)
	_, err := engine.SubmitVideoCreatorRequest(context.Background(), 42, workflow.CreatorProfile{})
	require.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestReviewVideoCreatorRequest_ApproveFlipsBothFlags(t *testing.T) {
	engine, mem := newEngine(t)
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com"})
	v := mem.SeedVideo(videos.Video{UserID: u.ID})

	out, err := engine.ReviewVideoCreatorRequest(context.Background(), v.ID, true)
	require.NoError(t, err)
	assert.True(t, out.IsApproved)

	gotV, _ := mem.Video(v.ID)
	gotU, _ := mem.User(u.ID)
	assert.True(t, gotV.IsApproved)
	assert.True(t, gotU.IsCreator)
}

func TestReviewVideoCreatorRequest_RejectLeavesUserFlag(t *testing.T) {
	engine, mem := newEngine(t)
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com"})
	v := mem.SeedVideo(videos.Video{UserID: u.ID})

	_, err := engine.ReviewVideoCreatorRequest(context.Background(), v.ID, false)
	require.NoError(t, err)

	gotU, _ := mem.User(u.ID)
	assert.False(t, gotU.IsCreator)
}

func TestReviewVideoCreatorRequest_IsAtomic(t *testing.T) {
	engine, mem := newEngine(t)
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com"})
	v := mem.SeedVideo(videos.Video{UserID: u.ID})

	mem.FailOn["users.update"] = errors.New("boom")

	_, err := engine.ReviewVideoCreatorRequest(context.Background(), v.ID, true)
	require.Error(t, err)

	gotV, _ := mem.Video(v.ID)
	gotU, _ := mem.User(u.ID)
	assert.False(t, gotV.IsApproved, "video flag must roll back when the user write fails")
	assert.False(t, gotU.IsCreator)
}

func TestReviewVideoCreatorRequest_VideoMissing(t *testing.T) {
	engine, _ := newEngine(t)
	_, err := engine.ReviewVideoCreatorRequest(context.Background(), "no-such-id", true)
	require.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestToggleVideoApproval(t *testing.T) {
	engine, mem := newEngine(t)
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com"})
	v := mem.SeedVideo(videos.Video{UserID: u.ID, IsApproved: true})

	out, err := engine.ToggleVideoApproval(context.Background(), v.ID)
	require.NoError(t, err)
	assert.False(t, out.IsApproved)

	out, err = engine.ToggleVideoApproval(context.Background(), v.ID)
	require.NoError(t, err)
	assert.True(t, out.IsApproved)
}

func TestToggleLike_RoundTrip(t *testing.T) {
	engine, mem := newEngine(t)
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com"})
	v := mem.SeedVideo(videos.Video{UserID: u.ID, IsApproved: true, Likes: 3, LikedBy: datatypes.JSONSlice[uint]{7}})

	out, err := engine.ToggleLike(context.Background(), v.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Likes)
	assert.True(t, out.HasLike(u.ID))

	out, err = engine.ToggleLike(context.Background(), v.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Likes, "double toggle restores the original count")
	assert.False(t, out.HasLike(u.ID))
	assert.True(t, out.HasLike(7), "other users' likes survive")
}

func TestToggleLike_VideoMissing(t *testing.T) {
	engine, _ := newEngine(t)
	_, err := engine.ToggleLike(context.Background(), "no-such-id", 1)
	require.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestAddVideo_RequiresCreatorFlag(t *testing.T) {
	engine, mem := newEngine(t)
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com"})

	_, err := engine.AddVideo(context.Background(), u.ID, workflow.VideoInput{URLs: []string{"https://cdn/v.mp4"}})
	require.ErrorIs(t, err, workflow.ErrNotCreator)
}

func TestAddVideo_CreatesUnapprovedVideo(t *testing.T) {
	engine, mem := newEngine(t)
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com", IsCreator: true})

	v, err := engine.AddVideo(context.Background(), u.ID, workflow.VideoInput{
		TypeOfVideo: videos.ProductVideo,
		URLs:        []string{"https://cdn/v.mp4"},
	})
	require.NoError(t, err)
	assert.False(t, v.IsApproved, "new content videos still go through moderation")
	assert.Equal(t, videos.ProductVideo, v.TypeOfVideo)
}

func TestAddVideo_AppendsURLsToApprovedVideo(t *testing.T) {
	engine, mem := newEngine(t)
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com", IsCreator: true})
	v := mem.SeedVideo(videos.Video{UserID: u.ID, IsApproved: true, URLs: []string{"https://cdn/a.mp4"}})

	out, err := engine.AddVideo(context.Background(), u.ID, workflow.VideoInput{
		VideoID: v.ID,
		URLs:    []string{"https://cdn/b.mp4"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/a.mp4", "https://cdn/b.mp4"}, []string(out.URLs))
}

func TestAddVideo_AppendToUnapprovedVideoFails(t *testing.T) {
	engine, mem := newEngine(t)
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com", IsCreator: true})
	v := mem.SeedVideo(videos.Video{UserID: u.ID, IsApproved: false})

	_, err := engine.AddVideo(context.Background(), u.ID, workflow.VideoInput{
		VideoID: v.ID,
		URLs:    []string{"https://cdn/b.mp4"},
	})
	require.ErrorIs(t, err, workflow.ErrValidation)
}

func TestAddComment(t *testing.T) {
	engine, mem := newEngine(t)
	u := mem.SeedUser(users.User{Name: "Kai", Email: "kai@example.com"})
	v := mem.SeedVideo(videos.Video{UserID: u.ID, IsApproved: true})

	c, err := engine.AddComment(context.Background(), v.ID, u.ID, "nice one")
	require.NoError(t, err)
	assert.Equal(t, "nice one", c.Text)
	assert.Len(t, mem.Comments(), 1)

	_, err = engine.AddComment(context.Background(), v.ID, u.ID, "")
	require.ErrorIs(t, err, workflow.ErrValidation)

	_, err = engine.AddComment(context.Background(), "no-such-id", u.ID, "hello")
	require.ErrorIs(t, err, workflow.ErrNotFound)
}
