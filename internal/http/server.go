// Package http exposes the engine over a JSON API: transactions, the
// viewing cursor, monthly summaries, credit cards and the CSV export.
package http

import (
	"net/http"
	"time"

	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/middleware/trace"
	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/services"
)

type Server struct {
	http.Server
	ledger *services.Ledger
	cards  *services.CardService
}

func NewServer(addr string, ledger *services.Ledger, cards *services.CardService) *Server {
	s := &Server{
		ledger: ledger,
		cards:  cards,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("POST /api/view", s.handleChangeMonth)
	mux.HandleFunc("GET /api/export", s.handleExport)

	mux.HandleFunc("GET /api/cards", s.handleListCards)
	mux.HandleFunc("POST /api/cards", s.handleCreateCard)
	mux.HandleFunc("DELETE /api/cards/{id}", s.handleDeleteCard)
	mux.HandleFunc("GET /api/cards/{id}/invoice", s.handleCardInvoice)

	s.Addr = addr
	s.Handler = trace.Middleware(mux)
	s.ReadTimeout = 10 * time.Second
	s.WriteTimeout = 10 * time.Second
	s.IdleTimeout = 60 * time.Second
	s.MaxHeaderBytes = 1 << 16 // 64KB

	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
