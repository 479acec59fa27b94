package resilience

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"
)

// Channel names the path a fault arrived through.
type Channel string

const (
	// ChannelAsync carries failures from background work nobody waits on.
	ChannelAsync Channel = "unrouted-async"
	// ChannelSync carries panics raised while serving a request.
	ChannelSync Channel = "uncaught-sync"
)

// Supervisor observes process-level faults. It logs every fault, classifies
// it with the injected Classifier and never terminates the process.
// Construct one per process and share it.
type Supervisor struct {
	logger     *log.Logger
	classifier Classifier
	faults     atomic.Int64
	wg         sync.WaitGroup
}

// NewSupervisor creates a Supervisor.
func NewSupervisor(logger *log.Logger, classifier Classifier) *Supervisor {
	if logger == nil {
		logger = log.Default()
	}
	if classifier == nil {
		classifier = NewMessageClassifier()
	}
	return &Supervisor{
		logger:     logger,
		classifier: classifier,
	}
}

// Go runs fn in a new goroutine. A returned error or a panic is reported on
// ChannelAsync instead of crashing the process.
func (s *Supervisor) Go(name string, fn func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if v := recover(); v != nil {
				s.Report(ChannelAsync, name, panicError(v))
			}
		}()
		if err := fn(); err != nil {
			s.Report(ChannelAsync, name, err)
		}
	}()
}

// Wait blocks until every goroutine started with Go has returned.
func (s *Supervisor) Wait() {
	s.wg.Wait()
}

// Guard runs fn and converts a panic into a reported error.
func (s *Supervisor) Guard(name string, fn func()) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = panicError(v)
			s.Report(ChannelSync, name, err)
		}
	}()
	fn()
	return nil
}

// Middleware recovers handler panics, reports them on ChannelSync and lets
// onFault write the response.
func (s *Supervisor) Middleware(onFault func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				err := panicError(v)
				s.Report(ChannelSync, r.Method+" "+r.URL.Path, err)
				if onFault != nil {
					onFault(w, r, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Report logs a fault. Transient connectivity faults are logged as warnings
// since the store is expected to recover on its own.
func (s *Supervisor) Report(ch Channel, name string, err error) {
	if err == nil {
		return
	}
	s.faults.Add(1)
	incident := uuid.New()
	if s.classifier.IsTransient(err) {
		s.logger.Warn("transient fault, continuing",
			"channel", ch, "source", name, "incident", incident, "err", err)
		return
	}
	s.logger.Error("fault, continuing",
		"channel", ch, "source", name, "incident", incident, "err", err)
}

// Faults returns the number of faults reported so far.
func (s *Supervisor) Faults() int64 {
	return s.faults.Load()
}

// panicError turns a recovered value into an error carrying a stack trace.
func panicError(v any) error {
	var err error
	switch x := v.(type) {
	case error:
		err = x
	case string:
		err = errors.New(x)
	default:
		err = fmt.Errorf("%v", x)
	}
	return xerrors.New(fmt.Errorf("panic: %w", err))
}
