package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/core"
	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

type transactionResponse struct {
	ID          string               `json:"id"`
	Description string               `json:"description"`
	AmountCents int64                `json:"amount_cents"`
	Amount      string               `json:"amount"`
	Category    string               `json:"category"`
	Label       string               `json:"category_label"`
	Date        string               `json:"date"`
	Type        string               `json:"type"`
	CardID      string               `json:"card_id,omitempty"`
	Installment *installmentResponse `json:"installment,omitempty"`
}

type installmentResponse struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type totalsResponse struct {
	IncomeCents  int64  `json:"income_cents"`
	ExpenseCents int64  `json:"expense_cents"`
	BalanceCents int64  `json:"balance_cents"`
	Income       string `json:"income"`
	Expense      string `json:"expense"`
	Balance      string `json:"balance"`
}

type categoryShareResponse struct {
	Category    string  `json:"category"`
	Label       string  `json:"label"`
	Color       string  `json:"color"`
	AmountCents int64   `json:"amount_cents"`
	Amount      string  `json:"amount"`
	Percentage  float64 `json:"percentage"`
}

type summaryResponse struct {
	MonthLabel string                  `json:"month_label"`
	Year       int                     `json:"year"`
	Month      int                     `json:"month"`
	Totals     totalsResponse          `json:"totals"`
	Expenses   []categoryShareResponse `json:"expenses_by_category"`
	Income     []categoryShareResponse `json:"income_by_category"`
}

type cardStatusResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	LastDigits     string  `json:"last_digits"`
	LimitCents     int64   `json:"limit_cents"`
	ClosingDay     int     `json:"closing_day"`
	DueDay         int     `json:"due_day"`
	Color          string  `json:"color"`
	UsedCents      int64   `json:"used_cents"`
	AvailableCents int64   `json:"available_cents"`
	UsedPercentage float64 `json:"used_percentage"`
}

type invoiceResponse struct {
	CardID       string                `json:"card_id"`
	Month        int                   `json:"month"`
	Year         int                   `json:"year"`
	Transactions []transactionResponse `json:"transactions"`
	TotalCents   int64                 `json:"total_cents"`
	IsPaid       bool                  `json:"is_paid"`
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:          tx.ID,
		Description: tx.Description,
		AmountCents: tx.Amount.Cents,
		Amount:      tx.Amount.Format(),
		Category:    string(tx.Category),
		Label:       tx.Category.Label(),
		Date:        tx.Date.ISO(),
		Type:        string(tx.Type),
		CardID:      tx.CardID,
	}
	if tx.Installment != nil {
		resp.Installment = &installmentResponse{
			Current: tx.Installment.Current,
			Total:   tx.Installment.Total,
		}
	}
	return resp
}

func toTransactionResponses(txs []core.Transaction) []transactionResponse {
	out := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = toTransactionResponse(tx)
	}
	return out
}

func toTotalsResponse(t core.Totals) totalsResponse {
	return totalsResponse{
		IncomeCents:  t.Income.Cents,
		ExpenseCents: t.Expense.Cents,
		BalanceCents: t.Balance.Cents,
		Income:       t.Income.Format(),
		Expense:      t.Expense.Format(),
		Balance:      t.Balance.Format(),
	}
}

func toShareResponses(shares []core.CategoryShare) []categoryShareResponse {
	out := make([]categoryShareResponse, len(shares))
	for i, s := range shares {
		cfg := s.Category.Config()
		out[i] = categoryShareResponse{
			Category:    string(s.Category),
			Label:       cfg.Label,
			Color:       cfg.Color,
			AmountCents: s.Amount.Cents,
			Amount:      s.Amount.Format(),
			Percentage:  s.Percentage,
		}
	}
	return out
}

func toCardStatusResponse(st core.CardStatus) cardStatusResponse {
	return cardStatusResponse{
		ID:             st.Card.ID,
		Name:           st.Card.Name,
		LastDigits:     st.Card.LastDigits,
		LimitCents:     st.Card.Limit.Cents,
		ClosingDay:     st.Card.ClosingDay,
		DueDay:         st.Card.DueDay,
		Color:          st.Card.Color,
		UsedCents:      st.Used.Cents,
		AvailableCents: st.Available.Cents,
		UsedPercentage: st.UsedPercentage,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", log.FieldError, err)
	}
}

// writeError maps engine errors onto HTTP statuses: validation failures
// to 422, missing records to 404, everything else (persistence faults
// included) to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case core.IsValidation(err):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		slog.ErrorContext(r.Context(), "Request failed", log.FieldError, err, log.FieldPath, r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
