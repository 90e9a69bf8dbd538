package client

// CourseState is the client-observed lifecycle of one enrollment. It is
// derived on demand from progress and certificate data, never stored, so the
// "ready to generate" and "already issued" views cannot drift apart.
type CourseState int

const (
	StateNotStarted CourseState = iota
	StateInProgress
	StateCompletedNoCert
	StateCertGenerating
	StateCertReady
)

func (s CourseState) String() string {
	switch s {
	case StateNotStarted:
		return "NOT_STARTED"
	case StateInProgress:
		return "IN_PROGRESS"
	case StateCompletedNoCert:
		return "COMPLETED_NO_CERT"
	case StateCertGenerating:
		return "CERT_GENERATING"
	case StateCertReady:
		return "CERT_READY"
	}
	return "UNKNOWN"
}

// Eligible reports whether a course qualifies for certificate generation:
// fully complete and not already issued. Pure; recomputed whenever either
// input changes.
func Eligible(courseID uint, p Progress, issuedCourseIDs []uint) bool {
	if p.ProgressPercentage != 100 {
		return false
	}
	for _, id := range issuedCourseIDs {
		if id == courseID {
			return false
		}
	}
	return true
}

// DeriveState computes the display state for one course. hasCert wins over
// everything; a pending generate only matters once the course is complete.
func DeriveState(p Progress, hasCert, generatePending bool) CourseState {
	switch {
	case hasCert:
		return StateCertReady
	case p.IsCompleted && generatePending:
		return StateCertGenerating
	case p.IsCompleted:
		return StateCompletedNoCert
	case p.CompletedContent > 0:
		return StateInProgress
	default:
		return StateNotStarted
	}
}
