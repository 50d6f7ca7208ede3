package handlers

import (
	"errors"
	"net/http"

	"github.com/citynights/server/internal/api/pagination"
	"github.com/citynights/server/internal/api/problem"
	"github.com/citynights/server/internal/domain/cityconfig"
	"github.com/citynights/server/internal/domain/venues"
	"github.com/citynights/server/internal/metrics"
)

type VenuesHandler struct {
	Service *venues.Service
	Env     string
}

func NewVenuesHandler(service *venues.Service, env string) *VenuesHandler {
	return &VenuesHandler{Service: service, Env: env}
}

type venueListResponse struct {
	Items      []map[string]any `json:"items"`
	NextCursor string           `json:"next_cursor"`
}

func (h *VenuesHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Internal(w, r, nil, h.env())
		return
	}

	filters, paginationArgs, err := venues.ParseFilters(r.URL.Query())
	if err != nil {
		problem.BadRequest(w, r, err, h.Env)
		return
	}

	result, err := h.Service.List(r.Context(), filters, paginationArgs)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			problem.BadRequest(w, r, err, h.Env)
			return
		}
		problem.Internal(w, r, err, h.Env)
		return
	}

	if result.Venues == nil {
		result.Venues = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, venueListResponse{Items: result.Venues, NextCursor: result.NextCursor})
}

func (h *VenuesHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Internal(w, r, nil, h.env())
		return
	}

	id, ok := ValidateAndExtractULID(w, r, "id", h.Env)
	if !ok {
		return
	}

	view, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, venues.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		// A stored venue naming an unconfigured city is a data integrity
		// problem, not a client error.
		problem.Internal(w, r, err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *VenuesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Internal(w, r, nil, h.env())
		return
	}

	payload, err := decodeBody(r)
	if err != nil {
		problem.BadRequest(w, r, err, h.Env)
		return
	}

	view, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		metrics.VenueOperationsTotal.WithLabelValues("create", "error").Inc()
		h.writeMutationError(w, r, err)
		return
	}

	metrics.VenueOperationsTotal.WithLabelValues("create", "success").Inc()
	writeJSON(w, http.StatusCreated, view)
}

func (h *VenuesHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Internal(w, r, nil, h.env())
		return
	}

	id, ok := ValidateAndExtractULID(w, r, "id", h.Env)
	if !ok {
		return
	}

	payload, err := decodeBody(r)
	if err != nil {
		problem.BadRequest(w, r, err, h.Env)
		return
	}

	view, err := h.Service.Update(r.Context(), id, payload)
	if err != nil {
		metrics.VenueOperationsTotal.WithLabelValues("update", "error").Inc()
		h.writeMutationError(w, r, err)
		return
	}

	metrics.VenueOperationsTotal.WithLabelValues("update", "success").Inc()
	writeJSON(w, http.StatusOK, view)
}

func (h *VenuesHandler) SetFacebookEvents(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Internal(w, r, nil, h.env())
		return
	}

	id, ok := ValidateAndExtractULID(w, r, "id", h.Env)
	if !ok {
		return
	}

	payload, err := decodeBody(r)
	if err != nil {
		problem.BadRequest(w, r, err, h.Env)
		return
	}

	rawEvents, ok := payload["events"].([]any)
	if !ok {
		problem.BadRequest(w, r, errors.New("events: must be an array"), h.Env)
		return
	}
	incoming := make([]map[string]any, 0, len(rawEvents))
	for _, item := range rawEvents {
		event, ok := item.(map[string]any)
		if !ok {
			problem.BadRequest(w, r, errors.New("events: items must be objects"), h.Env)
			return
		}
		incoming = append(incoming, event)
	}

	view, err := h.Service.SetFacebookEvents(r.Context(), id, incoming)
	if err != nil {
		metrics.VenueOperationsTotal.WithLabelValues("set_facebook_events", "error").Inc()
		h.writeMutationError(w, r, err)
		return
	}

	metrics.VenueOperationsTotal.WithLabelValues("set_facebook_events", "success").Inc()
	writeJSON(w, http.StatusOK, view)
}

func (h *VenuesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Internal(w, r, nil, h.env())
		return
	}

	id, ok := ValidateAndExtractULID(w, r, "id", h.Env)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, venues.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		metrics.VenueOperationsTotal.WithLabelValues("delete", "error").Inc()
		problem.Internal(w, r, err, h.Env)
		return
	}

	metrics.VenueOperationsTotal.WithLabelValues("delete", "success").Inc()
	w.WriteHeader(http.StatusNoContent)
}

// writeMutationError maps service errors from write paths. An unconfigured
// city is the client's mistake here, unlike on reads.
func (h *VenuesHandler) writeMutationError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr venues.ValidationError
	switch {
	case errors.Is(err, venues.ErrNotFound):
		problem.NotFound(w, r, err, h.Env)
	case errors.As(err, &validationErr):
		problem.BadRequest(w, r, err, h.Env)
	case errors.Is(err, cityconfig.ErrConfigNotFound):
		problem.BadRequest(w, r, err, h.Env)
	default:
		problem.Internal(w, r, err, h.Env)
	}
}

func (h *VenuesHandler) env() string {
	if h == nil {
		return ""
	}
	return h.Env
}
