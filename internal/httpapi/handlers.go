package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"ops-dashboard/internal/api"
	"ops-dashboard/internal/domain"
	"ops-dashboard/internal/errors"
	"ops-dashboard/internal/services"
)

// Handler serves the dashboard HTTP API. It keeps no state between requests.
type Handler struct {
	api         api.BusinessAPI
	placeholder string
}

// NewHandler creates a handler. placeholder is shown in place of a working
// duration that cannot be computed.
func NewHandler(businessAPI api.BusinessAPI, placeholder string) *Handler {
	return &Handler{api: businessAPI, placeholder: placeholder}
}

type closeRequest struct {
	ClosedAt string `json:"closed_at"`
}

type durationResponse struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Duration   string  `json:"duration"`
	Minutes    float64 `json:"minutes"`
	Computable bool    `json:"computable"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) listTickets(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filterFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tickets, err := h.api.ListTickets(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if tickets == nil {
		tickets = []*domain.ManualTicket{}
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (h *Handler) createTicket(w http.ResponseWriter, r *http.Request) {
	var input services.TicketInput
	if err := decodeJSON(w, r, &input, false); err != nil {
		writeError(w, r, err)
		return
	}

	ticket, err := h.api.CreateTicket(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

func (h *Handler) getTicket(w http.ResponseWriter, r *http.Request) {
	id, err := ticketID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ticket, err := h.api.GetTicket(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (h *Handler) updateTicket(w http.ResponseWriter, r *http.Request) {
	id, err := ticketID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var input services.TicketInput
	if err := decodeJSON(w, r, &input, false); err != nil {
		writeError(w, r, err)
		return
	}

	ticket, err := h.api.UpdateTicket(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (h *Handler) deleteTicket(w http.ResponseWriter, r *http.Request) {
	id, err := ticketID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.api.DeleteTicket(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) closeTicket(w http.ResponseWriter, r *http.Request) {
	id, err := ticketID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req closeRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}

	ticket, err := h.api.CloseTicket(r.Context(), id, req.ClosedAt)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (h *Handler) reopenTicket(w http.ResponseWriter, r *http.Request) {
	id, err := ticketID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ticket, err := h.api.ReopenTicket(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (h *Handler) slaReport(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filterFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	report, err := h.api.SLAReport(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	for _, row := range report.Rows {
		if !row.Computable {
			row.WorkingDuration = h.placeholder
		}
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) workingDuration(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result := h.api.WorkingDuration(q.Get("start"), q.Get("end"))

	resp := durationResponse{
		Start:      result.Start,
		End:        result.End,
		Duration:   result.Duration,
		Minutes:    result.Minutes,
		Computable: result.Computable,
	}
	if !result.Computable {
		resp.Duration = h.placeholder
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) outOfHours(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.api.IsOutOfHours(r.URL.Query().Get("at")))
}

func (h *Handler) filterFromQuery(r *http.Request) (domain.TicketFilter, error) {
	q := r.URL.Query()
	params := api.FilterParams{
		Service:  q.Get("service"),
		Operator: q.Get("operator"),
		Text:     q.Get("q"),
		From:     q.Get("from"),
		To:       q.Get("to"),
	}
	if raw := strings.TrimSpace(q.Get("open")); raw != "" {
		open, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.TicketFilter{}, errors.NewInvalidInputError("open", raw, "must be true or false")
		}
		params.OpenOnly = open
	}
	return h.api.ParseFilter(params)
}

func ticketID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewInvalidInputError("id", raw, "must be a number")
	}
	return id, nil
}
