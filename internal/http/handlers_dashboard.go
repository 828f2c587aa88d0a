package http

import (
	"log/slog"
	"net/http"

	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/core"
	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/export"
	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/log"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	view := s.ledger.ViewMonth()
	writeJSON(w, http.StatusOK, summaryResponse{
		MonthLabel: view.Label(),
		Year:       view.Year,
		Month:      view.Month,
		Totals:     toTotalsResponse(s.ledger.Totals()),
		Expenses:   toShareResponses(s.ledger.CategoryBreakdown(core.Expense)),
		Income:     toShareResponses(s.ledger.CategoryBreakdown(core.Income)),
	})
}

func (s *Server) handleChangeMonth(w http.ResponseWriter, r *http.Request) {
	var req changeMonthRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	s.ledger.ChangeMonth(req.Step)
	view := s.ledger.ViewMonth()
	slog.InfoContext(r.Context(), "Viewing month changed",
		"step", req.Step,
		log.FieldYear, view.Year,
		log.FieldMonth, view.Month)
	writeJSON(w, http.StatusOK, map[string]any{
		"month_label": view.Label(),
		"year":        view.Year,
		"month":       view.Month,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="financas_export.csv"`)
	if err := export.WriteCSV(w, s.ledger.Transactions()); err != nil {
		// Headers are gone by now; log instead of rewriting the status.
		slog.ErrorContext(r.Context(), "CSV export failed", log.FieldError, err)
	}
}
