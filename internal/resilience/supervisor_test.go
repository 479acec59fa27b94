package resilience

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSupervisor() (*Supervisor, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewSupervisor(log.New(&buf), NewMessageClassifier()), &buf
}

func TestSupervisor_GoRecoversPanic(t *testing.T) {
	s, buf := newTestSupervisor()

	s.Go("worker", func() error {
		panic("boom")
	})
	s.Wait()

	assert.Equal(t, int64(1), s.Faults())
	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), string(ChannelAsync))
}

func TestSupervisor_GoReportsReturnedError(t *testing.T) {
	s, buf := newTestSupervisor()

	s.Go("worker", func() error {
		return errors.New("read: connection reset by peer")
	})
	s.Wait()

	assert.Equal(t, int64(1), s.Faults())
	assert.Contains(t, buf.String(), "transient fault")
}

func TestSupervisor_GoNilErrorIsNotAFault(t *testing.T) {
	s, _ := newTestSupervisor()

	s.Go("worker", func() error { return nil })
	s.Wait()

	assert.Zero(t, s.Faults())
}

func TestSupervisor_Guard(t *testing.T) {
	s, buf := newTestSupervisor()

	err := s.Guard("sync", func() {
		panic(errors.New("nil map write"))
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil map write")
	assert.Equal(t, int64(1), s.Faults())
	assert.Contains(t, buf.String(), "fault, continuing")

	assert.NoError(t, s.Guard("sync", func() {}))
	assert.Equal(t, int64(1), s.Faults())
}

func TestSupervisor_UsesInjectedClassifier(t *testing.T) {
	var buf bytes.Buffer
	s := NewSupervisor(log.New(&buf), ClassifierFunc(func(error) bool { return true }))

	s.Report(ChannelAsync, "job", errors.New("disk full"))

	assert.Contains(t, buf.String(), "transient fault")
}

func TestSupervisor_Middleware(t *testing.T) {
	s, _ := newTestSupervisor()

	var faultErr error
	handler := s.Middleware(func(w http.ResponseWriter, _ *http.Request, err error) {
		faultErr = err
		w.WriteHeader(http.StatusInternalServerError)
	})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("handler exploded")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/songs", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Error(t, faultErr)
	assert.Contains(t, faultErr.Error(), "handler exploded")
	assert.Equal(t, int64(1), s.Faults())
}

func TestSupervisor_MiddlewareRepanicsAbort(t *testing.T) {
	s, _ := newTestSupervisor()
	handler := s.Middleware(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Zero(t, s.Faults())
}
