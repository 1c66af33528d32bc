package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/naka-gawa/w3c-ie-stats/internal/aggregate"
	"github.com/naka-gawa/w3c-ie-stats/internal/snapshot"
	"github.com/naka-gawa/w3c-ie-stats/internal/usecase"
	"go.uber.org/zap"
)

type handler struct {
	snap   *snapshot.Snapshot
	logger *zap.Logger
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handler) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.snap.Summary())
}

func (h *handler) handleExperts(w http.ResponseWriter, r *http.Request) {
	q, err := expertQuery(r)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("group")); raw != "" {
		id, err := parseGroupID(raw)
		if err != nil {
			writeValidationError(w, err)
			return
		}
		q.GroupID = id
	}
	writeJSON(w, http.StatusOK, usecase.QueryExperts(h.snap, q))
}

func (h *handler) handleExpert(w http.ResponseWriter, r *http.Request) {
	q, err := expertQuery(r)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	q.Token = chi.URLParam(r, "token")
	q.Histogram = true

	res := usecase.QueryExperts(h.snap, q)
	if res.NotFound {
		writeNotFound(w, res.Notice)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) handleGroups(w http.ResponseWriter, r *http.Request) {
	by, err := aggregate.ParseGroupSort(r.URL.Query().Get("sort"))
	if err != nil {
		writeValidationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"groups": h.snap.GroupsSortedBy(by),
	})
}

func (h *handler) handleGroupExperts(w http.ResponseWriter, r *http.Request) {
	id, err := parseGroupID(chi.URLParam(r, "id"))
	if err != nil {
		writeValidationError(w, err)
		return
	}
	q, err := expertQuery(r)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	q.GroupID = id
	writeJSON(w, http.StatusOK, usecase.QueryExperts(h.snap, q))
}

func (h *handler) handleAffiliations(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, usecase.QueryAffiliations(h.snap, search, ""))
}

func (h *handler) handleAffiliation(w http.ResponseWriter, r *http.Request) {
	res := usecase.QueryAffiliations(h.snap, "", chi.URLParam(r, "token"))
	if res.NotFound {
		writeNotFound(w, res.Notice)
		return
	}
	writeJSON(w, http.StatusOK, res.Affiliations[0])
}

// expertQuery reads the query parameters shared by the expert endpoints.
func expertQuery(r *http.Request) (usecase.ExpertQuery, error) {
	values := r.URL.Query()
	since, err := usecase.ParseSince(values.Get("since"))
	if err != nil {
		return usecase.ExpertQuery{}, err
	}
	histogram := false
	if raw := values.Get("histogram"); raw != "" {
		histogram, err = strconv.ParseBool(raw)
		if err != nil {
			return usecase.ExpertQuery{}, fmt.Errorf("invalid histogram flag %q", raw)
		}
	}
	return usecase.ExpertQuery{
		Search:    strings.TrimSpace(values.Get("q")),
		Since:     since,
		Histogram: histogram,
	}, nil
}

func parseGroupID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid group id %q", raw)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}

func writeValidationError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
}

func writeNotFound(w http.ResponseWriter, notice string) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"notice": notice,
		"error": map[string]any{
			"code":    "NOT_FOUND",
			"message": notice,
		},
	})
}
