package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  status < 300,
		"message": message,
		"data":    data,
	})
}

func testSession() *Session {
	return &Session{UserID: 1, Name: "Asha", Role: RoleStudent, Token: "test-token"}
}

func TestFetchProgressAppliesValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/courses/student/3/progress/", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, "ok", Progress{
			CourseID: 3, TotalContent: 4, CompletedContent: 2, ProgressPercentage: 50,
		})
	}))
	defer srv.Close()

	tracker := NewProgressTracker(New(srv.URL), testSession())

	p, err := tracker.FetchProgress(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, 50, p.ProgressPercentage)

	current, ok := tracker.Current(3)
	require.True(t, ok)
	require.Equal(t, p, current)
}

func TestFetchProgressDegradedOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, "boom", nil)
	}))
	defer srv.Close()

	tracker := NewProgressTracker(New(srv.URL), testSession())

	p, err := tracker.FetchProgress(context.Background(), 9)
	require.Error(t, err)
	require.True(t, IsRetryable(err))
	require.Equal(t, Progress{CourseID: 9}, p)

	// Nothing applied, Current stays empty
	_, ok := tracker.Current(9)
	require.False(t, ok)
}

func TestFetchProgressAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, "Invalid or expired token", nil)
	}))
	defer srv.Close()

	tracker := NewProgressTracker(New(srv.URL), testSession())

	_, err := tracker.FetchProgress(context.Background(), 1)
	require.True(t, IsAuth(err))
}

func TestFetchProgressNoSession(t *testing.T) {
	tracker := NewProgressTracker(New("http://127.0.0.1:0"), nil)
	_, err := tracker.FetchProgress(context.Background(), 1)
	require.True(t, IsAuth(err))
}

// A poll response issued before a mutation-triggered refresh must not be
// applied, regardless of which response arrives first.
func TestStaleResponseDiscarded(t *testing.T) {
	tracker := NewProgressTracker(New("http://127.0.0.1:0"), testSession())

	pollSeq := tracker.issue(7)    // old poll goes out first
	refreshSeq := tracker.issue(7) // then the post-completion refresh

	fresh := Progress{CourseID: 7, TotalContent: 4, CompletedContent: 4, ProgressPercentage: 100, IsCompleted: true}
	stale := Progress{CourseID: 7, TotalContent: 4, CompletedContent: 3, ProgressPercentage: 75}

	// Stale poll response lands while the refresh is still in flight: it
	// predates the latest issued fetch and must be dropped, not displayed.
	require.False(t, tracker.apply(7, pollSeq, stale), "response superseded by an in-flight fetch must be discarded")
	_, ok := tracker.Current(7)
	require.False(t, ok, "discarded response must not become the displayed value")

	require.True(t, tracker.apply(7, refreshSeq, fresh))

	// Same stale response arriving after the refresh applied: still dropped.
	require.False(t, tracker.apply(7, pollSeq, stale), "stale poll response must be discarded")

	current, ok := tracker.Current(7)
	require.True(t, ok)
	require.Equal(t, fresh, current, "displayed progress must not regress")
}

func TestSequencesArePerCourse(t *testing.T) {
	tracker := NewProgressTracker(New("http://127.0.0.1:0"), testSession())

	seqA := tracker.issue(1)
	seqB := tracker.issue(2)
	require.Equal(t, uint64(1), seqA)
	require.Equal(t, uint64(1), seqB, "courses keep independent sequence counters")
}

func TestPollStopsOnCancel(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		writeEnvelope(w, http.StatusOK, "ok", Progress{CourseID: 2, TotalContent: 1})
	}))
	defer srv.Close()

	tracker := NewProgressTracker(New(srv.URL), testSession())

	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan Progress, 16)
	done := make(chan struct{})
	go func() {
		tracker.Poll(ctx, 2, 10*time.Millisecond, func(p Progress, err error) {
			if err == nil {
				updates <- p
			}
		})
		close(done)
	}()

	// Wait for at least one update, then cancel
	select {
	case <-updates:
	case <-time.After(2 * time.Second):
		t.Fatal("poll never delivered an update")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poll goroutine did not stop on cancel")
	}

	// No further requests after cancellation settles
	settled := atomic.LoadInt64(&calls)
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, settled, atomic.LoadInt64(&calls))
}

func TestMyCourses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/courses/student/my-courses/", r.URL.Path)
		writeEnvelope(w, http.StatusOK, "ok", []Course{
			{ID: 1, Title: "Algebra", Instructor: "Meera"},
			{ID: 2, Title: "Physics", Instructor: "Ravi"},
		})
	}))
	defer srv.Close()

	tracker := NewProgressTracker(New(srv.URL), testSession())
	courses, err := tracker.MyCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Equal(t, "Algebra", courses[0].Title)
}

// End to end: four completions drive progress to 100% and the course becomes
// eligible for certificate generation exactly once.
func TestFourItemCourseScenario(t *testing.T) {
	type item struct {
		id   uint
		done bool
	}
	items := []*item{{id: 11}, {id: 12}, {id: 13}, {id: 14}}
	progress := func() Progress {
		done := 0
		for _, it := range items {
			if it.done {
				done++
			}
		}
		return Progress{
			CourseID:           5,
			TotalContent:       len(items),
			CompletedContent:   done,
			ProgressPercentage: done * 100 / len(items),
			IsCompleted:        done == len(items),
		}
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/courses/student/5/progress/":
			writeEnvelope(w, http.StatusOK, "ok", progress())
		case r.URL.Path == "/api/courses/student/5/contents/":
			contents := make([]ContentItem, len(items))
			for i, it := range items {
				contents[i] = ContentItem{ID: it.id, CourseID: 5, ContentType: ContentVideo, Completed: it.done}
			}
			writeEnvelope(w, http.StatusOK, "ok", map[string]interface{}{"contents": contents})
		case r.Method == http.MethodPost:
			for _, it := range items {
				if fmt.Sprintf("/api/courses/student/%d/complete/", it.id) == r.URL.Path {
					if it.done {
						writeEnvelope(w, http.StatusConflict, "Content already marked as completed!", nil)
						return
					}
					it.done = true
					writeEnvelope(w, http.StatusOK, "ok", nil)
					return
				}
			}
			writeEnvelope(w, http.StatusNotFound, "not found", nil)
		default:
			writeEnvelope(w, http.StatusNotFound, "not found", nil)
		}
	}))
	defer srv.Close()

	api := New(srv.URL)
	sess := testSession()
	tracker := NewProgressTracker(api, sess)
	actions := NewContentActions(api, sess, tracker)

	_, err := actions.FetchContents(context.Background(), 5)
	require.NoError(t, err)

	for _, it := range items {
		require.NoError(t, actions.MarkComplete(context.Background(), 5, it.id))
	}

	final, ok := tracker.Current(5)
	require.True(t, ok)
	require.Equal(t, Progress{CourseID: 5, TotalContent: 4, CompletedContent: 4, ProgressPercentage: 100, IsCompleted: true}, final)

	require.True(t, Eligible(5, final, nil))
	require.False(t, Eligible(5, final, []uint{5}), "issued course leaves the eligible set")
}
