package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"fleettrack-backend/internal/service"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// QuickSummary serves the admin dashboard rollup.
func (h *ReportHandler) QuickSummary(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.reports.QuickSummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// PeriodReport serves ?period=week|month|...|custom with optional
// start/end (yyyy-mm-dd) and granularity=day|week|month.
func (h *ReportHandler) PeriodReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.reports.PeriodReport(r.Context(),
		q.Get("period"), q.Get("start"), q.Get("end"), q.Get("granularity"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// PeriodReportPDF serves the same aggregation as a PDF download.
func (h *ReportHandler) PeriodReportPDF(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	content, filename, err := h.reports.PeriodReportPDF(r.Context(),
		q.Get("period"), q.Get("start"), q.Get("end"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// UserPeriodReport scopes the period aggregation to one driver.
func (h *ReportHandler) UserPeriodReport(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	q := r.URL.Query()
	report, err := h.reports.UserPeriodReport(r.Context(), code,
		q.Get("period"), q.Get("start"), q.Get("end"), q.Get("granularity"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// UserDetail serves the per-vehicle drill-down for one driver.
func (h *ReportHandler) UserDetail(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	report, err := h.reports.UserDetailReport(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
