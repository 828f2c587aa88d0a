package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/core"
	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/log"
)

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	statuses := s.cards.Statuses()
	out := make([]cardStatusResponse, len(statuses))
	for i, st := range statuses {
		out[i] = toCardStatusResponse(st)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	in, err := req.toInput()
	if err != nil {
		writeError(w, r, err)
		return
	}

	card, err := s.cards.AddCard(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Card created", log.FieldCardID, card.ID, "name", card.Name)
	for _, st := range s.cards.Statuses() {
		if st.Card.ID == card.ID {
			writeJSON(w, http.StatusCreated, toCardStatusResponse(st))
			return
		}
	}
	writeJSON(w, http.StatusCreated, toCardStatusResponse(core.CardStatus{Card: card, Available: card.Limit}))
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeBadRequest(w, "missing card id")
		return
	}

	if err := s.cards.RemoveCard(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCardInvoice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeBadRequest(w, "missing card id")
		return
	}

	now := time.Now()
	month := int(now.Month())
	year := now.Year()
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			writeBadRequest(w, "invalid month")
			return
		}
		month = m
	}
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			writeBadRequest(w, "invalid year")
			return
		}
		year = y
	}

	inv := s.cards.Invoice(id, month, year)
	writeJSON(w, http.StatusOK, invoiceResponse{
		CardID:       inv.CardID,
		Month:        inv.Month,
		Year:         inv.Year,
		Transactions: toTransactionResponses(inv.Transactions),
		TotalCents:   inv.TotalAmount.Cents,
		IsPaid:       inv.IsPaid,
	})
}
