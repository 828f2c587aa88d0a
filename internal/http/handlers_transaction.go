package http

import (
	"log/slog"
	"net/http"

	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/log"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs := s.ledger.FilteredTransactions()
	writeJSON(w, http.StatusOK, toTransactionResponses(txs))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	in, err := req.toInput()
	if err != nil {
		writeError(w, r, err)
		return
	}

	ids, err := s.ledger.AddTransaction(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Transaction created",
		"ids", ids,
		"description", in.Description,
		log.FieldInstallments, len(ids))
	writeJSON(w, http.StatusCreated, map[string]any{"ids": ids})
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeBadRequest(w, "missing transaction id")
		return
	}

	var req transactionPatchRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.ledger.UpdateTransaction(r.Context(), id, patch); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeBadRequest(w, "missing transaction id")
		return
	}

	// Deleting an unknown id is a no-op, matching filter-based removal.
	if err := s.ledger.RemoveTransaction(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
