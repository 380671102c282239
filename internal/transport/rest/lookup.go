package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/rhymebook-backend/internal/domain"
	"github.com/heartmarshall/rhymebook-backend/internal/service/lookup"
	"github.com/heartmarshall/rhymebook-backend/internal/service/session"
)

// lookupService defines the minimal interface needed by LookupHandler.
type lookupService interface {
	Rhymes(ctx context.Context, input lookup.Input) (*lookup.RhymeResult, error)
	MeansLike(ctx context.Context, input lookup.Input) (*lookup.MeansLikeResult, error)
}

// resultTracker is the slice of the session service that tracks the
// current-results view.
type resultTracker interface {
	BeginLookup(ctx context.Context, heading string) (uint64, error)
	CompleteLookup(ctx context.Context, seq uint64, snap session.Snapshot) (bool, error)
	CurrentResults(ctx context.Context) (session.Snapshot, error)
}

// LookupHandler serves word lookup REST endpoints.
type LookupHandler struct {
	svc     lookupService
	results resultTracker
	log     *slog.Logger
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(svc lookupService, results resultTracker, logger *slog.Logger) *LookupHandler {
	return &LookupHandler{svc: svc, results: results, log: logger.With("handler", "lookup")}
}

type wordMatchResponse struct {
	Word         string `json:"word"`
	Score        int    `json:"score"`
	NumSyllables int    `json:"numSyllables,omitempty"`
}

type syllableGroupResponse struct {
	Syllables int                 `json:"syllables"`
	Words     []wordMatchResponse `json:"words"`
}

type rhymesResponse struct {
	Query   string                  `json:"query"`
	Heading string                  `json:"heading"`
	Total   int                     `json:"total"`
	Groups  []syllableGroupResponse `json:"groups"`
}

type meansLikeResponse struct {
	Query   string              `json:"query"`
	Heading string              `json:"heading"`
	Total   int                 `json:"total"`
	Words   []wordMatchResponse `json:"words"`
}

type resultsResponse struct {
	Status  string                  `json:"status"`
	Heading string                  `json:"heading,omitempty"`
	Total   int                     `json:"total"`
	Groups  []syllableGroupResponse `json:"groups,omitempty"`
	Words   []wordMatchResponse     `json:"words,omitempty"`
}

// Rhymes handles GET /api/lookup/rhymes?word=X.
func (h *LookupHandler) Rhymes(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")

	seq, err := h.begin(r, "Words that rhyme with "+domain.NormalizeWord(word)+":")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	result, err := h.svc.Rhymes(r.Context(), lookup.Input{Word: word})
	if err != nil {
		h.finishFailed(r, seq, err)
		h.handleError(w, r, err)
		return
	}

	h.finish(r, seq, session.Snapshot{
		Heading: result.Heading,
		Groups:  result.Groups,
		Total:   result.Total,
	})

	writeJSON(w, http.StatusOK, toRhymesResponse(result))
}

// MeansLike handles GET /api/lookup/means-like?word=X.
func (h *LookupHandler) MeansLike(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")

	seq, err := h.begin(r, "Words with a meaning similar to "+domain.NormalizeWord(word)+":")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	result, err := h.svc.MeansLike(r.Context(), lookup.Input{Word: word})
	if err != nil {
		h.finishFailed(r, seq, err)
		h.handleError(w, r, err)
		return
	}

	h.finish(r, seq, session.Snapshot{
		Heading: result.Heading,
		Words:   result.Words,
		Total:   result.Total,
	})

	writeJSON(w, http.StatusOK, toMeansLikeResponse(result))
}

// Results handles GET /api/results: the session's current-results view,
// including the transient loading placeholder while a lookup is in flight.
func (h *LookupHandler) Results(w http.ResponseWriter, r *http.Request) {
	snap, err := h.results.CurrentResults(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toResultsResponse(snap))
}

// begin marks the lookup as in flight on the session. The returned sequence
// number must be handed back to finish or finishFailed.
func (h *LookupHandler) begin(r *http.Request, heading string) (uint64, error) {
	return h.results.BeginLookup(r.Context(), heading)
}

// finish applies the lookup outcome to the session's current-results view.
// A stale completion (a newer lookup began meanwhile) is discarded by the
// session service; the direct HTTP response still carries this result.
func (h *LookupHandler) finish(r *http.Request, seq uint64, snap session.Snapshot) {
	applied, err := h.results.CompleteLookup(r.Context(), seq, snap)
	if err != nil {
		h.log.ErrorContext(r.Context(), "complete lookup", slog.String("error", err.Error()))
		return
	}
	if !applied {
		h.log.DebugContext(r.Context(), "stale lookup result not rendered", slog.Uint64("seq", seq))
	}
}

// finishFailed clears the loading placeholder after a failed lookup; the
// rendered state shows no results rather than loading forever.
func (h *LookupHandler) finishFailed(r *http.Request, seq uint64, cause error) {
	h.log.ErrorContext(r.Context(), "lookup failed", slog.String("error", cause.Error()))
	h.finish(r, seq, session.Snapshot{Status: session.StatusEmpty})
}

func (h *LookupHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusBadGateway, "word service unavailable")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toRhymesResponse(result *lookup.RhymeResult) rhymesResponse {
	groups := make([]syllableGroupResponse, 0, len(result.Groups))
	for _, g := range result.Groups {
		groups = append(groups, syllableGroupResponse{
			Syllables: g.Syllables,
			Words:     toWordMatches(g.Words),
		})
	}
	return rhymesResponse{
		Query:   result.Query,
		Heading: result.Heading,
		Total:   result.Total,
		Groups:  groups,
	}
}

func toMeansLikeResponse(result *lookup.MeansLikeResult) meansLikeResponse {
	return meansLikeResponse{
		Query:   result.Query,
		Heading: result.Heading,
		Total:   result.Total,
		Words:   toWordMatches(result.Words),
	}
}

func toResultsResponse(snap session.Snapshot) resultsResponse {
	resp := resultsResponse{
		Status:  string(snap.Status),
		Heading: snap.Heading,
		Total:   snap.Total,
	}
	for _, g := range snap.Groups {
		resp.Groups = append(resp.Groups, syllableGroupResponse{
			Syllables: g.Syllables,
			Words:     toWordMatches(g.Words),
		})
	}
	if len(snap.Words) > 0 {
		resp.Words = toWordMatches(snap.Words)
	}
	return resp
}

func toWordMatches(words []domain.WordMatch) []wordMatchResponse {
	out := make([]wordMatchResponse, 0, len(words))
	for _, m := range words {
		out = append(out, wordMatchResponse{
			Word:         m.Word,
			Score:        m.Score,
			NumSyllables: m.NumSyllables,
		})
	}
	return out
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
