package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-league-snapshot/internal/domain/leaguehistory"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/logging"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/usecase"
)

// SnapshotBuilder is the usecase surface the handler depends on.
type SnapshotBuilder interface {
	Build(ctx context.Context, input usecase.BuildInput) (leaguehistory.Snapshot, error)
	Roster() []leaguehistory.Participant
}

type Handler struct {
	snapshots SnapshotBuilder
	logger    *logging.Logger
}

func NewHandler(snapshots SnapshotBuilder, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		snapshots: snapshots,
		logger:    logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetSnapshot runs a fresh aggregation pass; responses are never cached.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSnapshot")
	defer span.End()

	w.Header().Set("Cache-Control", "no-store")

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.snapshots.Build(ctx, usecase.BuildInput{RecordLimit: limit})
	if err != nil {
		h.logger.ErrorContext(ctx, "build snapshot failed", "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshot)
}

func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoster")
	defer span.End()

	roster := h.snapshots.Roster()
	items := make([]participantDTO, 0, len(roster))
	for _, p := range roster {
		items = append(items, participantDTO{Name: p.Name, EntryID: p.EntryID})
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

type participantDTO struct {
	Name    string `json:"name"`
	EntryID string `json:"entry_id"`
}

func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > leaguehistory.MaxRecordLimit {
		return 0, fmt.Errorf("%w: limit must be an integer between 1 and %d", usecase.ErrInvalidInput, leaguehistory.MaxRecordLimit)
	}
	return limit, nil
}
