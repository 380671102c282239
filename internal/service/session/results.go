package session

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/rhymebook-backend/internal/domain"
)

// Status is the lifecycle of the session's current-results view.
type Status string

const (
	// StatusIdle means no lookup has been made yet.
	StatusIdle Status = "idle"
	// StatusLoading is the transient placeholder while a lookup is in flight.
	StatusLoading Status = "loading"
	// StatusReady means the latest lookup returned at least one match.
	StatusReady Status = "ready"
	// StatusEmpty means the latest lookup returned no matches.
	StatusEmpty Status = "empty"
)

// Snapshot is the session's current-results view. Groups is set for rhyme
// lookups, Words for means-like lookups; never both.
type Snapshot struct {
	Status  Status
	Seq     uint64
	Heading string
	Groups  []domain.SyllableGroup
	Words   []domain.WordMatch
	Total   int
}

// BeginLookup registers a new lookup for the session and moves the
// current-results view to the loading placeholder. The returned sequence
// number must be passed back to CompleteLookup.
func (s *Service) BeginLookup(ctx context.Context, heading string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.get(ctx)
	if err != nil {
		return 0, err
	}

	st.seq++
	st.snapshot = Snapshot{
		Status:  StatusLoading,
		Seq:     st.seq,
		Heading: heading,
	}
	return st.seq, nil
}

// CompleteLookup records the outcome of the lookup started with the given
// sequence number. A completion for anything but the latest started lookup
// is stale and is discarded, so a slow early response can never overwrite
// a newer one. Returns whether the snapshot was applied.
func (s *Service) CompleteLookup(ctx context.Context, seq uint64, snap Snapshot) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.get(ctx)
	if err != nil {
		return false, err
	}

	if seq != st.seq {
		s.log.DebugContext(ctx, "stale lookup discarded",
			slog.Uint64("seq", seq),
			slog.Uint64("latest", st.seq),
		)
		return false, nil
	}

	snap.Seq = seq
	if snap.Status == "" {
		snap.Status = StatusReady
		if snap.Total == 0 {
			snap.Status = StatusEmpty
		}
	}
	st.snapshot = snap
	return true, nil
}

// CurrentResults returns the session's current-results view: the loading
// placeholder while a lookup is in flight, otherwise the latest applied
// outcome.
func (s *Service) CurrentResults(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.get(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return st.snapshot, nil
}
