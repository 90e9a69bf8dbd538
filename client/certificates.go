package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CertificateStore is the client-side cache of issued certificates, keyed by
// certificate id.
//
// Generate is the one operation needing an at-most-once guarantee. The server
// enforces uniqueness; the store's obligation is to never have two generate
// requests for the same course in flight (duplicate click, or the automatic
// on-completion trigger racing a manual one). Concurrent callers are collapsed
// through a singleflight group and share one result.
type CertificateStore struct {
	api  *Client
	sess *Session

	group singleflight.Group

	mu      sync.Mutex
	byID    map[uint]Certificate
	pending map[uint]bool // course ids with an outstanding generate
}

// NewCertificateStore builds an empty store bound to one session.
func NewCertificateStore(api *Client, sess *Session) *CertificateStore {
	return &CertificateStore{
		api:     api,
		sess:    sess,
		byID:    make(map[uint]Certificate),
		pending: make(map[uint]bool),
	}
}

type certificatesData struct {
	Certificates []Certificate `json:"certificates"`
}

type certificateData struct {
	Certificate Certificate `json:"certificate"`
}

// List fetches the authoritative certificate enumeration and replaces the
// cache wholesale. Entries are keyed by id, so a record returned by both a
// generate call and a later list can never appear twice.
func (s *CertificateStore) List(ctx context.Context) ([]Certificate, error) {
	var data certificatesData
	if err := s.api.doJSON(ctx, s.sess, http.MethodGet, "/api/courses/student/certificates/", nil, &data); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.byID = make(map[uint]Certificate, len(data.Certificates))
	for _, cert := range data.Certificates {
		s.byID[cert.ID] = cert
	}
	s.mu.Unlock()
	return data.Certificates, nil
}

// Generate requests a certificate for a completed course. Duplicate calls for
// the same course while one is outstanding share the first call's result. A
// conflict response means the certificate already exists server-side; the
// store reconciles by re-listing, and either way ends with exactly one entry
// for the course.
func (s *CertificateStore) Generate(ctx context.Context, courseID uint) (Certificate, error) {
	v, err, _ := s.group.Do(strconv.FormatUint(uint64(courseID), 10), func() (interface{}, error) {
		s.setPending(courseID, true)
		defer s.setPending(courseID, false)
		return s.generate(ctx, courseID)
	})
	if err != nil {
		return Certificate{}, err
	}
	return v.(Certificate), nil
}

func (s *CertificateStore) generate(ctx context.Context, courseID uint) (Certificate, error) {
	var data certificateData
	path := fmt.Sprintf("/api/courses/student/%d/generate-certificate/", courseID)
	err := s.api.doJSON(ctx, s.sess, http.MethodPost, path, nil, &data)
	if err == nil {
		s.mu.Lock()
		s.byID[data.Certificate.ID] = data.Certificate
		s.mu.Unlock()
		return data.Certificate, nil
	}

	if IsConflict(err) {
		// Already issued (racing trigger, or another session). The list is
		// authoritative; reconcile from it.
		if _, listErr := s.List(ctx); listErr != nil {
			return Certificate{}, listErr
		}
		if cert, ok := s.ByCourse(courseID); ok {
			return cert, nil
		}
	}
	return Certificate{}, err
}

func (s *CertificateStore) setPending(courseID uint, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v {
		s.pending[courseID] = true
	} else {
		delete(s.pending, courseID)
	}
}

// GeneratePending reports whether a generate call for the course is
// outstanding. Views disable the generate affordance while this is true.
func (s *CertificateStore) GeneratePending(courseID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[courseID]
}

// ByCourse returns the cached certificate for a course, if issued.
func (s *CertificateStore) ByCourse(courseID uint) (Certificate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cert := range s.byID {
		if cert.CourseID == courseID {
			return cert, true
		}
	}
	return Certificate{}, false
}

// Certificates returns the cached records.
func (s *CertificateStore) Certificates() []Certificate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Certificate, 0, len(s.byID))
	for _, cert := range s.byID {
		out = append(out, cert)
	}
	return out
}

// IssuedCourseIDs returns the course ids with a cached certificate.
func (s *CertificateStore) IssuedCourseIDs() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint, 0, len(s.byID))
	for _, cert := range s.byID {
		out = append(out, cert.CourseID)
	}
	return out
}

// Download retrieves the certificate document. Success requires the full body
// to arrive non-empty; a 2xx response with zero bytes is a failure and must
// not drive a "downloaded" state.
func (s *CertificateStore) Download(ctx context.Context, certificateID uint) ([]byte, error) {
	path := fmt.Sprintf("/api/courses/student/certificates/%d/download/", certificateID)
	body, err := s.api.doRaw(ctx, s.sess, path)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, &APIError{Kind: ErrEmptyPayload, Status: http.StatusOK, Message: "certificate download was empty"}
	}
	return body, nil
}
