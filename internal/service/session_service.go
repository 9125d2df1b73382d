package service

import (
	"context"
	"eamcetpro_backend/internal/model"
	"eamcetpro_backend/internal/util"
	"eamcetpro_backend/pkg/logger"
	"eamcetpro_backend/pkg/monitoring"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// liveSession couples a tracker with its clock driver.
type liveSession struct {
	id      string
	tracker *SessionTracker
	catalog *Catalog
	stop    chan struct{}
}

// SessionService keeps every in-progress attempt in memory and drives the
// per-second countdowns. One goroutine per live attempt ticks its tracker;
// when the clock runs out the attempt is force-submitted through the same
// path a manual submit takes, with the tracker's one-shot flag deciding the
// winner if both race.
type SessionService struct {
	mu       sync.Mutex
	sessions map[string]*liveSession

	Catalog *CatalogService
	Exam    *ExamService
}

func NewSessionService(catalog *CatalogService, exam *ExamService) *SessionService {
	return &SessionService{
		sessions: make(map[string]*liveSession),
		Catalog:  catalog,
		Exam:     exam,
	}
}

// Start creates a tracker for one attempt and begins its countdown.
func (s *SessionService) Start(ctx context.Context, userID, testID uint) (string, *SessionTracker, error) {
	catalog, err := s.Catalog.LoadCatalog(ctx, testID)
	if err != nil {
		return "", nil, err
	}

	tracker := NewSessionTracker(testID, userID, catalog.TotalQuestions(), catalog.Test.DurationMinutes)
	sess := &liveSession{
		id:      uuid.New().String(),
		tracker: tracker,
		catalog: catalog,
		stop:    make(chan struct{}),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	go s.runClock(sess)

	return sess.id, tracker, nil
}

func (s *SessionService) runClock(sess *liveSession) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sess.stop:
			return
		case <-ticker.C:
			if sess.tracker.Tick() {
				s.autoSubmit(sess)
				return
			}
		}
	}
}

func (s *SessionService) autoSubmit(sess *liveSession) {
	if !sess.tracker.MarkSubmitted() {
		return
	}
	monitoring.SubmissionCounter.WithLabelValues("timeout").Inc()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.Exam.SubmitResult(ctx,
		sess.tracker.UserID(),
		sess.tracker.TestID(),
		sess.tracker.FinalAnswers(),
		sess.tracker.TimeTaken(sess.catalog.Test.DurationMinutes),
	)
	if err != nil {
		logger.Log.Error("forced submit on timeout failed",
			zap.String("sessionID", sess.id),
			zap.Uint("userID", sess.tracker.UserID()),
			zap.Error(err))
	}

	s.remove(sess.id)
}

// Get returns the tracker for a session owned by userID.
func (s *SessionService) Get(sessionID string, userID uint) (*SessionTracker, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok || sess.tracker.UserID() != userID {
		return nil, util.ErrSessionNotFound
	}
	return sess.tracker, nil
}

// Submit is the manual submission path. The tracker's one-shot flag excludes
// the timeout path; whoever flips it first performs the single submission.
func (s *SessionService) Submit(ctx context.Context, sessionID string, userID uint) (*model.Result, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok || sess.tracker.UserID() != userID {
		return nil, util.ErrSessionNotFound
	}

	if !sess.tracker.MarkSubmitted() {
		return nil, util.ErrSessionSubmitted
	}
	close(sess.stop)
	monitoring.SubmissionCounter.WithLabelValues("manual").Inc()

	result, err := s.Exam.SubmitResult(ctx,
		userID,
		sess.tracker.TestID(),
		sess.tracker.FinalAnswers(),
		sess.tracker.TimeTaken(sess.catalog.Test.DurationMinutes),
	)
	if err != nil {
		return nil, err
	}

	s.remove(sessionID)
	return result, nil
}

func (s *SessionService) remove(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Stop tears down every live countdown; used on server shutdown.
func (s *SessionService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		select {
		case <-sess.stop:
		default:
			close(sess.stop)
		}
		delete(s.sessions, id)
	}
}
