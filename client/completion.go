package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// ContentActions loads course content lists and marks items complete.
//
// Completion is confirm-then-update: the local flag flips only after the
// server acknowledges the mutation, never optimistically. Marking an already
// completed item is a local no-op with no network call.
type ContentActions struct {
	api     *Client
	sess    *Session
	tracker *ProgressTracker

	mu    sync.Mutex
	items map[uint][]ContentItem // keyed by course id
}

// NewContentActions builds the actions component. tracker may not be nil;
// every successful completion triggers a progress refresh through it.
func NewContentActions(api *Client, sess *Session, tracker *ProgressTracker) *ContentActions {
	return &ContentActions{
		api:     api,
		sess:    sess,
		tracker: tracker,
		items:   make(map[uint][]ContentItem),
	}
}

type contentsData struct {
	Contents []ContentItem `json:"contents"`
}

// FetchContents loads the content list for a course and caches it. The cached
// list exists only to drive completion affordances; progress percentages are
// never computed from it.
func (a *ContentActions) FetchContents(ctx context.Context, courseID uint) ([]ContentItem, error) {
	var data contentsData
	path := fmt.Sprintf("/api/courses/student/%d/contents/", courseID)
	if err := a.api.doJSON(ctx, a.sess, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}

	for i := range data.Contents {
		data.Contents[i].ContentType = ParseContentType(string(data.Contents[i].ContentType))
	}

	a.mu.Lock()
	a.items[courseID] = data.Contents
	a.mu.Unlock()
	return data.Contents, nil
}

// Contents returns the cached list for a course.
func (a *ContentActions) Contents(courseID uint) []ContentItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.items[courseID]
}

// completed reports the cached completion flag for an item.
func (a *ContentActions) completed(courseID, contentID uint) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, item := range a.items[courseID] {
		if item.ID == contentID {
			return item.Completed
		}
	}
	return false
}

// markLocal flips the cached flag after server confirmation.
func (a *ContentActions) markLocal(courseID, contentID uint) {
	a.mu.Lock()
	defer a.mu.Unlock()
	items := a.items[courseID]
	for i := range items {
		if items[i].ID == contentID {
			items[i].Completed = true
			return
		}
	}
}

// MarkComplete marks one content item complete. Already-completed items are a
// no-op. On success the local flag is flipped and a progress refresh is
// issued; a failed refresh is left to the next poll to converge. On failure
// the local flag is untouched and the error is returned for display.
func (a *ContentActions) MarkComplete(ctx context.Context, courseID, contentID uint) error {
	if a.completed(courseID, contentID) {
		return nil
	}

	path := fmt.Sprintf("/api/courses/student/%d/complete/", contentID)
	if err := a.api.doJSON(ctx, a.sess, http.MethodPost, path, nil, nil); err != nil {
		// The server is the final arbiter: a conflict means the item was
		// already completed in another session. Converge the cache.
		if IsConflict(err) {
			a.markLocal(courseID, contentID)
			_, _ = a.tracker.Refresh(ctx, courseID)
			return nil
		}
		return err
	}

	a.markLocal(courseID, contentID)
	_, _ = a.tracker.Refresh(ctx, courseID)
	return nil
}
