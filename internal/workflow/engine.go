// Package workflow implements the approval state machines for designer
// update requests and video / creator moderation.
package workflow

import (
	"context"
	"fmt"

	"marketplace-app/internal/domain/designers"
	"marketplace-app/internal/domain/videos"
	"marketplace-app/internal/store"

	"gorm.io/datatypes"
)

type Engine struct {
	store store.Store
}

func New(s store.Store) *Engine {
	return &Engine{store: s}
}

// SubmitUpdateRequest files a pending change proposal against an existing
// designer. The proposed updates are stored verbatim; nothing is validated
// against the designer schema until review time.
func (e *Engine) SubmitUpdateRequest(ctx context.Context, designerID string, updates map[string]interface{}) (*designers.UpdateRequest, error) {
	if designerID == "" || len(updates) == 0 {
		return nil, fmt.Errorf("%w: designer id and requestedUpdates are required", ErrValidation)
	}

	if _, err := e.store.Designers().FindByID(ctx, designerID); err != nil {
		return nil, err
	}

	req := designers.UpdateRequest{
		DesignerID:       designerID,
		RequestedUpdates: datatypes.JSONMap(updates),
		Status:           designers.StatusPending,
	}
	if err := e.store.Requests().Create(ctx, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ReviewUpdateRequest decides a pending request. Approval merges the
// allow-listed subset of requestedUpdates onto the designer; both the
// designer patch and the status flip run in one transaction so a crash
// can never leave an approved-looking request with an untouched designer.
func (e *Engine) ReviewUpdateRequest(ctx context.Context, requestID string, decision designers.RequestStatus, comment string) (*designers.UpdateRequest, error) {
	if decision != designers.StatusApproved && decision != designers.StatusRejected {
		return nil, fmt.Errorf("%w: decision must be Approved or Rejected", ErrValidation)
	}

	var out *designers.UpdateRequest
	err := e.store.InTransaction(ctx, func(tx store.Store) error {
		req, err := tx.Requests().FindByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != designers.StatusPending {
			return ErrAlreadyReviewed
		}

		if decision == designers.StatusApproved {
			patch := designers.FilterUpdates(req.RequestedUpdates)
			if len(patch) > 0 {
				if err := tx.Designers().UpdateByID(ctx, req.DesignerID, patch); err != nil {
					return err
				}
			}
		}

		if comment == "" {
			if decision == designers.StatusApproved {
				comment = "Update request approved"
			} else {
				comment = "Update request rejected"
			}
		}

		if err := tx.Requests().UpdateByID(ctx, req.ID, map[string]interface{}{
			"status":         decision,
			"admin_comments": comment,
		}); err != nil {
			return err
		}

		req.Status = decision
		req.AdminComments = comment
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreatorProfile is the payload of a creator application. The resulting
// video document stays URL-less and unapproved until an admin decides.
type CreatorProfile struct {
	DesignerID  *string
	TypeOfVideo videos.VideoType
}

// SubmitVideoCreatorRequest opens a creator application for a user. At
// most one unapproved video per user may exist at a time.
func (e *Engine) SubmitVideoCreatorRequest(ctx context.Context, userID uint, profile CreatorProfile) (*videos.Video, error) {
	if _, err := e.store.Users().FindByID(ctx, userID); err != nil {
		return nil, err
	}

	pending, err := e.store.Videos().Count(ctx, store.Filter{
		"user_id":     userID,
		"is_approved": false,
	})
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, ErrPendingCreatorRequest
	}

	typeOfVideo := profile.TypeOfVideo
	if typeOfVideo == "" {
		typeOfVideo = videos.NormalVideo
	}

	v := videos.Video{
		UserID:      userID,
		DesignerID:  profile.DesignerID,
		TypeOfVideo: typeOfVideo,
		IsApproved:  false,
	}
	if err := e.store.Videos().Create(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ReviewVideoCreatorRequest decides a creator application. The video flag
// and the user's is_creator flag commit together or not at all; a user
// must never end up marked creator without a matching approved video.
func (e *Engine) ReviewVideoCreatorRequest(ctx context.Context, videoID string, approve bool) (*videos.Video, error) {
	var out *videos.Video
	err := e.store.InTransaction(ctx, func(tx store.Store) error {
		v, err := tx.Videos().FindByID(ctx, videoID)
		if err != nil {
			return err
		}

		if err := tx.Videos().UpdateByID(ctx, v.ID, map[string]interface{}{
			"is_approved": approve,
		}); err != nil {
			return err
		}

		if approve {
			if err := tx.Users().UpdateByID(ctx, v.UserID, map[string]interface{}{
				"is_creator": true,
			}); err != nil {
				return err
			}
		}

		v.IsApproved = approve
		out = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleVideoApproval flips a single video's moderation flag. One
// document, no transaction needed.
func (e *Engine) ToggleVideoApproval(ctx context.Context, videoID string) (*videos.Video, error) {
	v, err := e.store.Videos().FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := e.store.Videos().UpdateByID(ctx, v.ID, map[string]interface{}{
		"is_approved": !v.IsApproved,
	}); err != nil {
		return nil, err
	}
	v.IsApproved = !v.IsApproved
	return v, nil
}

// ToggleLike adds or removes a user's like. This is a read-modify-write
// without an optimistic-concurrency guard; two concurrent toggles for
// the same video can lose one of the writes (the store contract has no
// atomic array-union primitive).
func (e *Engine) ToggleLike(ctx context.Context, videoID string, userID uint) (*videos.Video, error) {
	v, err := e.store.Videos().FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if v.HasLike(userID) {
		kept := make([]uint, 0, len(v.LikedBy))
		for _, id := range v.LikedBy {
			if id != userID {
				kept = append(kept, id)
			}
		}
		v.LikedBy = kept
		v.Likes--
	} else {
		v.LikedBy = append(v.LikedBy, userID)
		v.Likes++
	}

	if err := e.store.Videos().UpdateByID(ctx, v.ID, map[string]interface{}{
		"likes":    v.Likes,
		"liked_by": datatypes.JSONSlice[uint](v.LikedBy),
	}); err != nil {
		return nil, err
	}
	return v, nil
}

// VideoInput creates a new content video or, when VideoID is set,
// appends URLs to an existing approved one.
type VideoInput struct {
	VideoID     string
	DesignerID  *string
	TypeOfVideo videos.VideoType
	URLs        []string
	ProductIDs  []string
}

// AddVideo publishes content for a recognized creator.
func (e *Engine) AddVideo(ctx context.Context, userID uint, in VideoInput) (*videos.Video, error) {
	u, err := e.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsCreator {
		return nil, ErrNotCreator
	}
	if len(in.URLs) == 0 {
		return nil, fmt.Errorf("%w: at least one video url is required", ErrValidation)
	}

	if in.VideoID != "" {
		v, err := e.store.Videos().FindByID(ctx, in.VideoID)
		if err != nil {
			return nil, err
		}
		if v.UserID != userID {
			return nil, ErrNotFound
		}
		if !v.IsApproved {
			return nil, fmt.Errorf("%w: urls can only be appended to an approved video", ErrValidation)
		}
		// same lost-update caveat as ToggleLike
		v.URLs = append(v.URLs, in.URLs...)
		if err := e.store.Videos().UpdateByID(ctx, v.ID, map[string]interface{}{
			"urls": v.URLs,
		}); err != nil {
			return nil, err
		}
		return v, nil
	}

	typeOfVideo := in.TypeOfVideo
	if typeOfVideo == "" {
		typeOfVideo = videos.NormalVideo
	}

	v := videos.Video{
		UserID:      userID,
		DesignerID:  in.DesignerID,
		TypeOfVideo: typeOfVideo,
		URLs:        in.URLs,
		IsApproved:  false,
	}
	for _, pid := range in.ProductIDs {
		p, err := e.store.Products().FindByID(ctx, pid)
		if err != nil {
			return nil, err
		}
		v.Products = append(v.Products, *p)
	}
	if err := e.store.Videos().Create(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// AddComment appends a free-text comment to a video.
func (e *Engine) AddComment(ctx context.Context, videoID string, userID uint, text string) (*videos.Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}
	if _, err := e.store.Videos().FindByID(ctx, videoID); err != nil {
		return nil, err
	}
	c := videos.Comment{
		VideoID: videoID,
		UserID:  userID,
		Text:    text,
	}
	if err := e.store.Videos().AddComment(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
