package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// ProgressTracker is the sole source of truth for per-course progress display.
// It never derives percentages from locally held content lists; every value
// comes from the progress endpoint.
//
// Responses from the periodic poll and from post-mutation refreshes target the
// same per-course slot and can interleave. Each fetch is stamped with a
// monotonically increasing sequence number at issue time, and a response is
// discarded if a newer fetch has been issued since — even one still in
// flight — so a slow poll can never overwrite fresher post-completion state.
type ProgressTracker struct {
	api  *Client
	sess *Session

	mu    sync.Mutex
	slots map[uint]*progressSlot
}

type progressSlot struct {
	issued  uint64 // last sequence handed out for this course
	applied uint64 // sequence of the value currently held
	value   Progress
	valid   bool
}

// NewProgressTracker builds a tracker bound to one session.
func NewProgressTracker(api *Client, sess *Session) *ProgressTracker {
	return &ProgressTracker{
		api:   api,
		sess:  sess,
		slots: make(map[uint]*progressSlot),
	}
}

// slot returns the per-course slot, creating it on first use. Callers hold mu.
func (t *ProgressTracker) slot(courseID uint) *progressSlot {
	s, ok := t.slots[courseID]
	if !ok {
		s = &progressSlot{}
		t.slots[courseID] = s
	}
	return s
}

// issue stamps a new fetch for the course and returns its sequence number.
func (t *ProgressTracker) issue(courseID uint) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.slot(courseID)
	s.issued++
	return s.issued
}

// apply stores a fetched value unless a newer fetch has been issued. It
// reports whether the value was accepted.
func (t *ProgressTracker) apply(courseID uint, seq uint64, p Progress) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.slot(courseID)
	if seq < s.issued {
		return false // a newer fetch supersedes this response, discard
	}
	s.applied = seq
	s.value = p
	s.valid = true
	return true
}

// FetchProgress retrieves the enrollment progress for one course and applies
// it through the sequence gate. On failure it returns a degraded zero value
// together with the error; the previously applied value is left untouched so
// the display does not regress on a flaky poll.
func (t *ProgressTracker) FetchProgress(ctx context.Context, courseID uint) (Progress, error) {
	seq := t.issue(courseID)

	var p Progress
	path := fmt.Sprintf("/api/courses/student/%d/progress/", courseID)
	if err := t.api.doJSON(ctx, t.sess, http.MethodGet, path, nil, &p); err != nil {
		return Progress{CourseID: courseID}, err
	}

	t.apply(courseID, seq, p)
	return p, nil
}

// Refresh is the post-mutation fetch. Identical to FetchProgress; the name
// marks call sites that follow a successful markComplete.
func (t *ProgressTracker) Refresh(ctx context.Context, courseID uint) (Progress, error) {
	return t.FetchProgress(ctx, courseID)
}

// Current returns the last applied value for the course, if any.
func (t *ProgressTracker) Current(courseID uint) (Progress, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[courseID]
	if !ok || !s.valid {
		return Progress{}, false
	}
	return s.value, true
}

// Poll fetches the course progress on a fixed interval until ctx is cancelled.
// It blocks; run it in a goroutine scoped to the owning view. Cancelling ctx
// stops the ticker and guarantees no update callback fires afterwards, so an
// unmounted view never receives state.
func (t *ProgressTracker) Poll(ctx context.Context, courseID uint, interval time.Duration, onUpdate func(Progress, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p, err := t.FetchProgress(ctx, courseID)
			if ctx.Err() != nil {
				return // cancelled mid-request; drop the late response
			}
			if onUpdate != nil {
				onUpdate(p, err)
			}
		}
	}
}

// MyCourses lists the student's enrolled courses.
func (t *ProgressTracker) MyCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := t.api.doJSON(ctx, t.sess, http.MethodGet, "/api/courses/student/my-courses/", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
