package http

import (
	"io"
	"net/http"

	"outlay/internal/backup"
	"outlay/internal/core"
	"outlay/internal/export"
	"outlay/internal/report"
)

// maxBackupBytes caps an uploaded backup document at 32 MiB.
const maxBackupBytes = 32 << 20

// expenseRequest is the wire shape for create and update. Dates come in as
// strings (YYYY-MM-DD or RFC 3339) rather than raw time.Time JSON.
type expenseRequest struct {
	Title    *string  `json:"title"`
	Amount   *float64 `json:"amount"`
	Category *string  `json:"category"`
	Date     *string  `json:"date"`
	Notes    *string  `json:"notes"`
}

func (req expenseRequest) patch() (core.Patch, error) {
	p := core.Patch{
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
		Notes:    req.Notes,
	}
	if req.Date != nil {
		t, err := core.ParseDate(*req.Date)
		if err != nil {
			return core.Patch{}, &core.ValidationError{Field: "date", Reason: errParseDate}
		}
		p.Date = &t
	}
	return p, nil
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.List())
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	patch, err := req.patch()
	if err != nil {
		writeError(w, err)
		return
	}
	draft := patch.Apply(core.Expense{})

	created, err := s.store.Add(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		return
	}

	s.purgeCaches()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req expenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	patch, err := req.patch()
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := s.store.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	s.purgeCaches()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	s.purgeCaches()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	const key = "stats"
	if stats, ok := s.statsCache.Get(key); ok {
		writeJSON(w, http.StatusOK, stats)
		return
	}

	stats := s.store.Statistics()
	s.statsCache.Set(key, stats)
	writeJSON(w, http.StatusOK, stats)
}

// reportResponse bundles one page of a filtered collection with the figures
// the report screen renders alongside it.
type reportResponse struct {
	report.Page
	Summary    report.Summary `json:"summary"`
	RangeLabel string         `json:"rangeLabel"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := parsePositiveInt(r.URL.Query(), "page", 1)
	if err != nil {
		writeError(w, err)
		return
	}
	pageSize, err := parsePositiveInt(r.URL.Query(), "pageSize", 10)
	if err != nil {
		writeError(w, err)
		return
	}

	key := cacheKey(criteria, page, pageSize)
	if resp, ok := s.reportCache.Get(key); ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	filtered := report.Filter(s.store.List(), criteria)
	page = report.ClampPage(page, len(filtered), pageSize)
	paged := report.Paginate(filtered, page, pageSize)

	resp := reportResponse{
		Page:       paged,
		Summary:    report.Summarize(filtered),
		RangeLabel: paged.RangeLabel(),
	}
	s.reportCache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPrefs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Preferences())
}

func (s *Server) handleUpdatePrefs(w http.ResponseWriter, r *http.Request) {
	var prefs core.Preferences
	if err := decodeBody(r, &prefs); err != nil {
		writeError(w, err)
		return
	}

	updated, err := s.store.UpdatePreferences(r.Context(), prefs)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, "csv", export.ContentTypeCSV, export.ToCSV)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, "pdf", export.ContentTypePDF, export.ToPDF)
}

// handleExport filters with the same criteria as the report screen and
// streams the serialized set. An empty filtered set is a no-op: 204, no file.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, ext, contentType string, serialize func([]core.Expense) ([]byte, error)) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	filtered := report.Filter(s.store.List(), criteria)
	if len(filtered) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	data, err := serialize(filtered)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(ext, s.now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleBackupExport(w http.ResponseWriter, r *http.Request) {
	data, err := backup.Export(s.store.List(), s.store.Preferences(), s.now())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses-backup-`+s.now().Format("20060102-1504")+`.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleBackupImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBackupBytes))
	if err != nil {
		writeError(w, err)
		return
	}

	file, err := backup.Import(body)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.store.Replace(r.Context(), file.Expenses, file.Prefs); err != nil {
		writeError(w, err)
		return
	}

	s.purgeCaches()
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(file.Expenses)})
}
