package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cashflow/internal/core"
	"cashflow/internal/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondDomainError maps domain errors onto HTTP statuses.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrImportBlocked):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusBadRequest, err.Error())
	}
}

// parseInterval resolves the requested date interval. Accepts either
// from/to dates, a month key, or nothing (the current calendar month).
func parseInterval(r *http.Request) (start, end time.Time, err error) {
	q := r.URL.Query()

	if monthKey := q.Get("month"); monthKey != "" {
		return core.MonthInterval(monthKey)
	}

	from, to := q.Get("from"), q.Get("to")
	if from != "" || to != "" {
		start, err = core.ParseDate(from)
		if err != nil {
			return
		}
		end, err = core.ParseDate(to)
		return
	}

	return core.MonthInterval(core.MonthKey(time.Now()))
}

func decodeBody(r *http.Request, dest any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}
