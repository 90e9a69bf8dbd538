package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateCachesCertificate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/courses/student/7/generate-certificate/", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		writeEnvelope(w, http.StatusCreated, "Certificate generated successfully!", map[string]interface{}{
			"certificate": Certificate{ID: 42, CourseID: 7, StudentName: "Asha", CourseTitle: "Algebra"},
		})
	}))
	defer srv.Close()

	store := NewCertificateStore(New(srv.URL), testSession())

	cert, err := store.Generate(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, uint(42), cert.ID)

	cached, ok := store.ByCourse(7)
	require.True(t, ok)
	require.Equal(t, cert, cached)
	require.False(t, store.GeneratePending(7))
}

// Two concurrent generate calls for the same course collapse into a single
// request and leave exactly one cached certificate.
func TestConcurrentGenerateCollapses(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		time.Sleep(50 * time.Millisecond) // hold the first call open
		writeEnvelope(w, http.StatusCreated, "ok", map[string]interface{}{
			"certificate": Certificate{ID: 99, CourseID: 7},
		})
	}))
	defer srv.Close()

	store := NewCertificateStore(New(srv.URL), testSession())

	var wg sync.WaitGroup
	results := make([]Certificate, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = store.Generate(context.Background(), 7)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	require.Equal(t, results[0], results[1], "both callers share one result")
	require.Equal(t, int64(1), atomic.LoadInt64(&hits), "only one request reaches the server")
	require.Len(t, store.Certificates(), 1)
}

// A conflict on generate means the certificate already exists; the store
// reconciles from the authoritative list and still presents one entry.
func TestGenerateConflictReconciles(t *testing.T) {
	existing := Certificate{ID: 5, CourseID: 3, StudentName: "Asha", CourseTitle: "Physics"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/courses/student/3/generate-certificate/":
			writeEnvelope(w, http.StatusConflict, "Certificate already exists!", nil)
		case "/api/courses/student/certificates/":
			writeEnvelope(w, http.StatusOK, "ok", map[string]interface{}{
				"certificates": []Certificate{existing},
			})
		default:
			writeEnvelope(w, http.StatusNotFound, "not found", nil)
		}
	}))
	defer srv.Close()

	store := NewCertificateStore(New(srv.URL), testSession())

	cert, err := store.Generate(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, existing, cert)
	require.Len(t, store.Certificates(), 1)
}

func TestGenerateIncompleteCourseFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, "Course is not completed yet!", nil)
	}))
	defer srv.Close()

	store := NewCertificateStore(New(srv.URL), testSession())

	_, err := store.Generate(context.Background(), 3)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrValidation, apiErr.Kind)
	require.Empty(t, store.Certificates())
}

// A record returned by generate and again by a later list dedupes by id.
func TestListDedupesById(t *testing.T) {
	cert := Certificate{ID: 8, CourseID: 2}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/courses/student/2/generate-certificate/":
			writeEnvelope(w, http.StatusCreated, "ok", map[string]interface{}{"certificate": cert})
		case "/api/courses/student/certificates/":
			writeEnvelope(w, http.StatusOK, "ok", map[string]interface{}{"certificates": []Certificate{cert}})
		default:
			writeEnvelope(w, http.StatusNotFound, "not found", nil)
		}
	}))
	defer srv.Close()

	store := NewCertificateStore(New(srv.URL), testSession())

	_, err := store.Generate(context.Background(), 2)
	require.NoError(t, err)
	_, err = store.List(context.Background())
	require.NoError(t, err)

	require.Len(t, store.Certificates(), 1)
	require.Equal(t, []uint{2}, store.IssuedCourseIDs())
}

func TestDownload(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake body")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/courses/student/certificates/5/download/", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	}))
	defer srv.Close()

	store := NewCertificateStore(New(srv.URL), testSession())

	body, err := store.Download(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, pdf, body)
}

// A 2xx download with zero bytes is a failure, never a success.
func TestDownloadEmptyBodyFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewCertificateStore(New(srv.URL), testSession())

	_, err := store.Download(context.Background(), 5)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrEmptyPayload, apiErr.Kind)
}
