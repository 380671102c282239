// Package session owns per-page-session state: the saved-words list and
// the current-results snapshot. State lives for the session only; nothing
// is persisted.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/rhymebook-backend/internal/domain"
	"github.com/heartmarshall/rhymebook-backend/pkg/ctxutil"
)

// Service manages page sessions. Sessions are created lazily on first use
// and expire after an idle TTL via a background cleanup goroutine.
type Service struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*state

	maxSavedWords int
	idleTTL       time.Duration
	stop          chan struct{}

	log *slog.Logger
}

// state is the mutable state of one page session. All access goes through
// the Service mutex.
type state struct {
	saved    []string
	seq      uint64
	snapshot Snapshot
	lastSeen time.Time
}

// NewService creates a session Service and starts its cleanup goroutine.
// Call Stop() on shutdown.
func NewService(
	log *slog.Logger,
	maxSavedWords int,
	idleTTL time.Duration,
	cleanupInterval time.Duration,
) *Service {
	s := &Service{
		sessions:      make(map[uuid.UUID]*state),
		maxSavedWords: maxSavedWords,
		idleTTL:       idleTTL,
		stop:          make(chan struct{}),
		log:           log.With("service", "session"),
	}
	go s.cleanup(cleanupInterval)
	return s
}

// Stop terminates the background cleanup goroutine.
func (s *Service) Stop() {
	close(s.stop)
}

// get returns the session state for the ID carried in the context,
// creating it on first use. The session middleware always sets an ID, so a
// missing one is a transport wiring error.
func (s *Service) get(ctx context.Context) (*state, error) {
	id, ok := ctxutil.SessionIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	st, exists := s.sessions[id]
	if !exists {
		st = &state{snapshot: Snapshot{Status: StatusIdle}}
		s.sessions[id] = st
		s.log.DebugContext(ctx, "session created", slog.String("session_id", id.String()))
	}
	st.lastSeen = time.Now()
	return st, nil
}

func (s *Service) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, st := range s.sessions {
				if now.Sub(st.lastSeen) > s.idleTTL {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
