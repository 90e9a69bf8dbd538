package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchContentsNormalizesTypes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "ok", map[string]interface{}{
			"contents": []map[string]interface{}{
				{"id": 1, "course_id": 4, "content_type": "VIDEO", "title": "Intro"},
				{"id": 2, "course_id": 4, "content_type": "interactive-quiz", "title": "Quiz"},
			},
		})
	}))
	defer srv.Close()

	actions := NewContentActions(New(srv.URL), testSession(), NewProgressTracker(New(srv.URL), testSession()))

	contents, err := actions.FetchContents(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, contents, 2)
	require.Equal(t, ContentVideo, contents[0].ContentType)
	require.Equal(t, ContentOther, contents[1].ContentType, "unrecognized kinds render as OTHER")
}

// Marking an already-completed item is a local no-op: no request leaves.
func TestMarkCompleteIdempotentLocally(t *testing.T) {
	var completeCalls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			atomic.AddInt64(&completeCalls, 1)
		}
		writeEnvelope(w, http.StatusOK, "ok", map[string]interface{}{
			"contents": []ContentItem{{ID: 9, CourseID: 4, Completed: true}},
		})
	}))
	defer srv.Close()

	api := New(srv.URL)
	actions := NewContentActions(api, testSession(), NewProgressTracker(api, testSession()))

	_, err := actions.FetchContents(context.Background(), 4)
	require.NoError(t, err)

	require.NoError(t, actions.MarkComplete(context.Background(), 4, 9))
	require.Zero(t, atomic.LoadInt64(&completeCalls))
}

// Confirm-then-update: the local flag flips only after the server acknowledges,
// and a successful completion triggers a progress refresh.
func TestMarkCompleteConfirmThenUpdate(t *testing.T) {
	var progressFetches int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/courses/student/4/contents/":
			writeEnvelope(w, http.StatusOK, "ok", map[string]interface{}{
				"contents": []ContentItem{{ID: 9, CourseID: 4}},
			})
		case "/api/courses/student/9/complete/":
			writeEnvelope(w, http.StatusOK, "Content marked as completed!", nil)
		case "/api/courses/student/4/progress/":
			atomic.AddInt64(&progressFetches, 1)
			writeEnvelope(w, http.StatusOK, "ok", Progress{CourseID: 4, TotalContent: 1, CompletedContent: 1, ProgressPercentage: 100, IsCompleted: true})
		default:
			writeEnvelope(w, http.StatusNotFound, "not found", nil)
		}
	}))
	defer srv.Close()

	api := New(srv.URL)
	sess := testSession()
	tracker := NewProgressTracker(api, sess)
	actions := NewContentActions(api, sess, tracker)

	_, err := actions.FetchContents(context.Background(), 4)
	require.NoError(t, err)
	require.False(t, actions.Contents(4)[0].Completed)

	require.NoError(t, actions.MarkComplete(context.Background(), 4, 9))
	require.True(t, actions.Contents(4)[0].Completed)
	require.Equal(t, int64(1), atomic.LoadInt64(&progressFetches))

	p, ok := tracker.Current(4)
	require.True(t, ok)
	require.True(t, p.IsCompleted)
}

// A server failure leaves the local flag untouched.
func TestMarkCompleteFailureKeepsLocalState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			writeEnvelope(w, http.StatusInternalServerError, "boom", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "ok", map[string]interface{}{
			"contents": []ContentItem{{ID: 9, CourseID: 4}},
		})
	}))
	defer srv.Close()

	api := New(srv.URL)
	actions := NewContentActions(api, testSession(), NewProgressTracker(api, testSession()))

	_, err := actions.FetchContents(context.Background(), 4)
	require.NoError(t, err)

	err = actions.MarkComplete(context.Background(), 4, 9)
	require.Error(t, err)
	require.False(t, actions.Contents(4)[0].Completed)
}

// The server is the final arbiter: a conflict means another session already
// completed the item, so the cache converges instead of erroring.
func TestMarkCompleteConflictConverges(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/courses/student/4/contents/":
			writeEnvelope(w, http.StatusOK, "ok", map[string]interface{}{
				"contents": []ContentItem{{ID: 9, CourseID: 4}},
			})
		case "/api/courses/student/9/complete/":
			writeEnvelope(w, http.StatusConflict, "Content already marked as completed!", nil)
		case "/api/courses/student/4/progress/":
			writeEnvelope(w, http.StatusOK, "ok", Progress{CourseID: 4, TotalContent: 1, CompletedContent: 1, ProgressPercentage: 100, IsCompleted: true})
		default:
			writeEnvelope(w, http.StatusNotFound, "not found", nil)
		}
	}))
	defer srv.Close()

	api := New(srv.URL)
	sess := testSession()
	tracker := NewProgressTracker(api, sess)
	actions := NewContentActions(api, sess, tracker)

	_, err := actions.FetchContents(context.Background(), 4)
	require.NoError(t, err)

	require.NoError(t, actions.MarkComplete(context.Background(), 4, 9))
	require.True(t, actions.Contents(4)[0].Completed)

	p, ok := tracker.Current(4)
	require.True(t, ok)
	require.True(t, p.IsCompleted)
}
