package controller

import (
	"context"
	"sync"
	"time"

	"github.com/Astemirdum/restaurant-service/restaurant/internal/errs"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type session struct {
	page     *Page
	lastSeen time.Time
}

// Sessions keeps one Page per visitor, dropping pages idle longer than ttl.
type Sessions struct {
	svc       ReservationService
	validator Validator
	ttl       time.Duration
	log       *zap.Logger
	now       func() time.Time

	mu    sync.Mutex
	pages map[string]*session
}

func NewSessions(svc ReservationService, v Validator, ttl time.Duration, log *zap.Logger) *Sessions {
	return &Sessions{
		svc:       svc,
		validator: v,
		ttl:       ttl,
		log:       log.Named("sessions"),
		now:       time.Now,
		pages:     make(map[string]*session),
	}
}

func (s *Sessions) Open() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.pages[id] = &session{page: NewPage(s.svc, s.validator), lastSeen: s.now()}
	n := len(s.pages)
	s.mu.Unlock()

	metrics.ActiveSessions.Inc()
	s.log.Debug("session opened", zap.String("sid", id), zap.Int("active", n))
	return id
}

func (s *Sessions) Get(id string) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.pages[id]
	if !ok {
		return nil, errs.ErrSessionNotFound
	}
	now := s.now()
	if s.expired(sess, now) {
		s.remove(id)
		return nil, errs.ErrSessionNotFound
	}
	sess.lastSeen = now
	return sess.page, nil
}

func (s *Sessions) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pages[id]; !ok {
		return errs.ErrSessionNotFound
	}
	s.remove(id)
	return nil
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Sweep drops expired sessions and reports how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.pages {
		if s.expired(sess, now) {
			s.remove(id)
			removed++
		}
	}
	return removed
}

// Run sweeps periodically until ctx is done.
func (s *Sessions) Run(ctx context.Context) {
	if s.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Debug("expired sessions removed", zap.Int("count", n))
			}
		}
	}
}

func (s *Sessions) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}

// remove must be called with mu held.
func (s *Sessions) remove(id string) {
	delete(s.pages, id)
	metrics.ActiveSessions.Dec()
}
