package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gyaneshwarpardhi/crmrelay/internal/event"
	"github.com/gyaneshwarpardhi/crmrelay/internal/metrics"
	"github.com/gyaneshwarpardhi/crmrelay/internal/slack"
)

// errNullBody is reported when the body decodes to JSON null.
var errNullBody = errors.New("payload is null")

// relay serves every configured webhook path: parse, render, deliver once.
func (h *Handler) relay(w http.ResponseWriter, r *http.Request) {
	st := h.state.Load()
	route, ok := st.cfg.Route(r.URL.Path)
	if !ok {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	setCORS(w)

	kind := route.EventKind()
	log := h.logger.With("request_id", requestID(r.Context()), "route", route.ID, "kind", string(kind))
	outcome := func(o string) { metrics.RequestsTotal.WithLabelValues(string(kind), o).Inc() }

	switch r.Method {
	case http.MethodOptions:
		outcome(metrics.OutcomePreflight)
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		outcome(metrics.OutcomeBadMethod)
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	payload, err := decodePayload(http.MaxBytesReader(w, r.Body, st.cfg.MaxBodyBytes))
	if err != nil {
		outcome(metrics.OutcomeBadBody)
		log.Error("decode webhook body", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	renderer, err := st.renderers.Get(kind)
	if err != nil {
		outcome(metrics.OutcomeInternal)
		log.Error("render notification", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	id := requestID(r.Context())
	if id == "" {
		id = uuid.New().String()
	}
	ev := &event.Event{ID: id, Kind: kind, ReceivedAt: h.now(), Payload: payload}
	msg := renderer.Render(ev, ev.ReceivedAt)

	if !route.Configured() {
		outcome(metrics.OutcomeNotConfigured)
		log.Error("slack webhook url not configured", "env", route.WebhookEnv)
		writeError(w, http.StatusInternalServerError, msgNotConfigured)
		return
	}

	ctx := r.Context()
	if st.cfg.DeliveryLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, st.cfg.DeliveryLimit)
		defer cancel()
	}
	start := time.Now()
	err = h.poster.Post(ctx, route.URL, msg)
	metrics.DeliveryDuration.WithLabelValues(string(kind)).Observe(float64(time.Since(start).Milliseconds()))

	var de *slack.DeliveryError
	switch {
	case err == nil:
		metrics.DeliveriesTotal.WithLabelValues(string(kind), "2xx").Inc()
	case errors.As(err, &de):
		metrics.DeliveriesTotal.WithLabelValues(string(kind), statusClass(de.StatusCode)).Inc()
		outcome(metrics.OutcomeDownstream)
		log.Error("slack api error", "status", de.StatusCode, "body", de.Body)
		writeError(w, http.StatusInternalServerError, msgDeliveryFailed)
		return
	case errors.Is(err, slack.ErrNotConfigured):
		outcome(metrics.OutcomeNotConfigured)
		log.Error("slack webhook url not configured", "env", route.WebhookEnv)
		writeError(w, http.StatusInternalServerError, msgNotConfigured)
		return
	default:
		metrics.DeliveriesTotal.WithLabelValues(string(kind), "error").Inc()
		outcome(metrics.OutcomeInternal)
		log.Error("slack delivery failed", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	outcome(metrics.OutcomeDelivered)
	log.Info("notification delivered", "event_id", ev.ID)
	writeJSON(w, http.StatusOK, relayResponse{Success: true, Message: renderer.Acknowledgement()})
}

// decodePayload parses a JSON body. Non-object documents yield an empty payload; null is an error.
func decodePayload(body io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	switch v := doc.(type) {
	case nil:
		return nil, errNullBody
	case map[string]any:
		return v, nil
	}
	return map[string]any{}, nil
}
