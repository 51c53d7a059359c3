package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"outlay/internal/backup"
	"outlay/internal/core"
	"outlay/internal/report"
)

var (
	errParseNumber   = errors.New("must be a number")
	errParseDate     = errors.New("must be a date (YYYY-MM-DD)")
	errParsePositive = errors.New("must be a positive integer")
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP statuses. Validation and import
// problems are the client's fault, a missing record is 404, and gateway
// failures surface as 502 so callers can tell them from handler bugs.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case core.IsValidation(err), backup.IsImport(err):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, core.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case core.IsPersistence(err):
		writeJSON(w, http.StatusBadGateway, errorBody{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &core.ValidationError{Field: "body", Reason: fmt.Errorf("invalid JSON: %w", err)}
	}
	return nil
}

// parseCriteria reads filter parameters from the query string. Date bounds
// accept YYYY-MM-DD; the upper bound is widened to the end of its day so a
// same-day range matches.
func parseCriteria(q url.Values) (report.Criteria, error) {
	var c report.Criteria

	c.TextQuery = strings.TrimSpace(q.Get("q"))
	c.Category = strings.TrimSpace(q.Get("category"))

	if raw := q.Get("minAmount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c, &core.ValidationError{Field: "minAmount", Reason: errParseNumber}
		}
		c.MinAmount = &v
	}
	if raw := q.Get("maxAmount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c, &core.ValidationError{Field: "maxAmount", Reason: errParseNumber}
		}
		c.MaxAmount = &v
	}
	if raw := q.Get("from"); raw != "" {
		t, err := core.ParseDate(raw)
		if err != nil {
			return c, &core.ValidationError{Field: "from", Reason: errParseDate}
		}
		c.DateFrom = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := core.ParseDate(raw)
		if err != nil {
			return c, &core.ValidationError{Field: "to", Reason: errParseDate}
		}
		end := report.EndOfDay(t)
		c.DateTo = &end
	}

	return c, nil
}

func parsePositiveInt(q url.Values, key string, fallback int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, &core.ValidationError{Field: key, Reason: errParsePositive}
	}
	return v, nil
}

// cacheKey builds a canonical key for a report query.
func cacheKey(c report.Criteria, page, pageSize int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "q=%s|cat=%s|p=%d|ps=%d", c.TextQuery, c.Category, page, pageSize)
	if c.MinAmount != nil {
		fmt.Fprintf(&b, "|min=%v", *c.MinAmount)
	}
	if c.MaxAmount != nil {
		fmt.Fprintf(&b, "|max=%v", *c.MaxAmount)
	}
	if c.DateFrom != nil {
		fmt.Fprintf(&b, "|from=%d", c.DateFrom.Unix())
	}
	if c.DateTo != nil {
		fmt.Fprintf(&b, "|to=%d", c.DateTo.Unix())
	}
	return b.String()
}
