package httpapi

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Routes registers every endpoint on a new ServeMux
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.health)

	mux.HandleFunc("GET /api/tickets", h.listTickets)
	mux.HandleFunc("POST /api/tickets", h.createTicket)
	mux.HandleFunc("GET /api/tickets/{id}", h.getTicket)
	mux.HandleFunc("PUT /api/tickets/{id}", h.updateTicket)
	mux.HandleFunc("DELETE /api/tickets/{id}", h.deleteTicket)
	mux.HandleFunc("POST /api/tickets/{id}/close", h.closeTicket)
	mux.HandleFunc("POST /api/tickets/{id}/reopen", h.reopenTicket)

	mux.HandleFunc("GET /api/reports/sla", h.slaReport)

	mux.HandleFunc("GET /api/business-hours/duration", h.workingDuration)
	mux.HandleFunc("GET /api/business-hours/out-of-hours", h.outOfHours)

	return mux
}

// NewRouter wraps the routes with request ID, logging and panic recovery
func NewRouter(h *Handler, logger zerolog.Logger) http.Handler {
	return withRequestID(withLogging(logger, withRecovery(h.Routes())))
}
