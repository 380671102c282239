package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/rhymebook-backend/internal/domain"
	"github.com/heartmarshall/rhymebook-backend/pkg/ctxutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(logger, 500, 30*time.Minute, time.Minute)
	t.Cleanup(svc.Stop)
	return svc
}

func sessionCtx(t *testing.T) context.Context {
	t.Helper()
	return ctxutil.WithSessionID(context.Background(), uuid.New())
}

func TestSaveWord_AppendsInSaveOrder(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := sessionCtx(t)

	if _, err := svc.SaveWord(ctx, "cat"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	saved, err := svc.SaveWord(ctx, "hat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(saved.Words) != 2 || saved.Words[0] != "cat" || saved.Words[1] != "hat" {
		t.Errorf("Words = %v, want [cat hat]", saved.Words)
	}
	if saved.Joined != "cat, hat" {
		t.Errorf("Joined = %q, want %q", saved.Joined, "cat, hat")
	}
}

func TestSaveWord_DuplicatesPermitted(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := sessionCtx(t)

	svc.SaveWord(ctx, "cat")
	saved, err := svc.SaveWord(ctx, "cat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved.Words) != 2 {
		t.Errorf("len(Words) = %d, want 2 (duplicates permitted)", len(saved.Words))
	}
}

func TestSaveWord_EmptyWord(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.SaveWord(sessionCtx(t), "   ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestSaveWord_ListFull(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(logger, 2, 30*time.Minute, time.Minute)
	t.Cleanup(svc.Stop)
	ctx := sessionCtx(t)

	svc.SaveWord(ctx, "one")
	svc.SaveWord(ctx, "two")
	_, err := svc.SaveWord(ctx, "three")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation when list is full", err)
	}
}

func TestSaveWord_MissingSessionID(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.SaveWord(context.Background(), "cat")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestSaved_SessionsAreIsolated(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctxA := sessionCtx(t)
	ctxB := sessionCtx(t)

	svc.SaveWord(ctxA, "cat")

	saved, err := svc.Saved(ctxB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved.Words) != 0 {
		t.Errorf("session B saw %v, want empty", saved.Words)
	}
}

func TestBeginLookup_SetsLoadingPlaceholder(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := sessionCtx(t)

	seq, err := svc.BeginLookup(ctx, "Words that rhyme with bat:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap, err := svc.CurrentResults(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Status != StatusLoading {
		t.Errorf("Status = %q, want loading", snap.Status)
	}
	if snap.Seq != seq {
		t.Errorf("Seq = %d, want %d", snap.Seq, seq)
	}
	if snap.Heading != "Words that rhyme with bat:" {
		t.Errorf("Heading = %q", snap.Heading)
	}
}

func TestCompleteLookup_AppliesLatest(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := sessionCtx(t)

	seq, _ := svc.BeginLookup(ctx, "Words that rhyme with bat:")
	applied, err := svc.CompleteLookup(ctx, seq, Snapshot{
		Heading: "Words that rhyme with bat:",
		Groups:  []domain.SyllableGroup{{Syllables: 1, Words: []domain.WordMatch{{Word: "cat"}}}},
		Total:   1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !applied {
		t.Fatal("expected snapshot to be applied")
	}

	snap, _ := svc.CurrentResults(ctx)
	if snap.Status != StatusReady {
		t.Errorf("Status = %q, want ready", snap.Status)
	}
	if snap.Total != 1 || len(snap.Groups) != 1 {
		t.Errorf("snapshot = %+v, want one group", snap)
	}
}

func TestCompleteLookup_EmptyResultGetsEmptyStatus(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := sessionCtx(t)

	seq, _ := svc.BeginLookup(ctx, "Words that rhyme with orange:")
	applied, err := svc.CompleteLookup(ctx, seq, Snapshot{
		Heading: "Words that rhyme with orange:",
		Total:   0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !applied {
		t.Fatal("expected snapshot to be applied")
	}

	snap, _ := svc.CurrentResults(ctx)
	if snap.Status != StatusEmpty {
		t.Errorf("Status = %q, want empty", snap.Status)
	}
}

func TestCompleteLookup_StaleResponseDiscarded(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := sessionCtx(t)

	seqOld, _ := svc.BeginLookup(ctx, "Words that rhyme with bat:")
	seqNew, _ := svc.BeginLookup(ctx, "Words that rhyme with cart:")

	// The slower earlier lookup lands after the newer one started.
	applied, err := svc.CompleteLookup(ctx, seqOld, Snapshot{Heading: "Words that rhyme with bat:", Total: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied {
		t.Fatal("stale completion must be discarded")
	}

	snap, _ := svc.CurrentResults(ctx)
	if snap.Status != StatusLoading || snap.Heading != "Words that rhyme with cart:" {
		t.Errorf("snapshot = %+v, want loading placeholder of the newer lookup", snap)
	}

	// The newer lookup still completes normally.
	applied, _ = svc.CompleteLookup(ctx, seqNew, Snapshot{Heading: "Words that rhyme with cart:", Total: 2})
	if !applied {
		t.Fatal("latest completion must be applied")
	}
}

func TestCurrentResults_IdleBeforeFirstLookup(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	snap, err := svc.CurrentResults(sessionCtx(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Status != StatusIdle {
		t.Errorf("Status = %q, want idle", snap.Status)
	}
}

func TestCleanup_ExpiresIdleSessions(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(logger, 500, 10*time.Millisecond, 10*time.Millisecond)
	t.Cleanup(svc.Stop)
	ctx := sessionCtx(t)

	svc.SaveWord(ctx, "cat")
	time.Sleep(100 * time.Millisecond)

	// The session expired; a fresh one is created lazily with no saved words.
	saved, err := svc.Saved(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved.Words) != 0 {
		t.Errorf("Words = %v, want empty after expiry", saved.Words)
	}
}
