// internal/handlers/status/handler.go
package status

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"intake-api/internal/common/errors"
	"intake-api/internal/common/logger"
	"intake-api/internal/intake"
	"intake-api/internal/notion"
)

const Endpoint = "/api/status"

type Handler struct {
	config    *Config
	notion    *notion.Client
	responder *errors.Responder
	logger    logger.Logger
}

func NewHandler(cfg *Config, client *notion.Client, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"endpoint": Endpoint})
	return &Handler{
		config:    cfg,
		notion:    client,
		responder: errors.NewResponder(l),
		logger:    l,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Lookups are per-customer and must never be served from a shared cache
	w.Header().Set("Cache-Control", "no-store")

	input, err := h.decodeInput(r)
	if err != nil {
		h.responder.Respond(w, r, err)
		return
	}

	input.ReceiptTitle = strings.TrimSpace(input.ReceiptTitle)
	if input.ReceiptTitle == "" {
		h.responder.Respond(w, r, errors.NewValidationError("Missing receipt", "receiptTitle was empty"))
		return
	}
	if !intake.ValidChallenge(input.Last4) {
		h.responder.Respond(w, r, errors.NewValidationError("Invalid last4", "last4 must be exactly 4 digits"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, input)
	if err != nil {
		h.responder.Respond(w, r, err)
		return
	}

	errors.WriteJSON(w, http.StatusOK, output)
}

func (h *Handler) decodeInput(r *http.Request) (*Input, error) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		input := &Input{
			ReceiptTitle: q.Get("receiptTitle"),
			Last4:        q.Get("last4"),
		}
		// The public status page still submits the short parameter name
		if input.ReceiptTitle == "" {
			input.ReceiptTitle = q.Get("receipt")
		}
		return input, nil
	case http.MethodPost:
		var input Input
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			return nil, errors.NewValidationError("Invalid request", "parse body: "+err.Error())
		}
		return &input, nil
	default:
		return nil, errors.NewMethodNotAllowedError(r.Method)
	}
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	result, err := h.notion.QueryDatabase(ctx, h.config.DatabaseID, &notion.DatabaseQuery{
		Filter:   notion.TitleEquals(intake.PropReceipt, input.ReceiptTitle),
		PageSize: 1,
	})
	if err != nil {
		return nil, errors.NewUpstreamError("Status lookup failed", err)
	}

	if len(result.Results) == 0 {
		return nil, errors.NewReceiptNotFoundError(input.ReceiptTitle)
	}

	page := result.Results[0]

	storedLast4 := intake.LastFourDigits(intake.PhoneFromPage(page))
	if storedLast4 != input.Last4 {
		return nil, errors.NewChallengeMismatchError(input.ReceiptTitle)
	}

	record := intake.StatusFromPage(page)
	if record.ReceiptTitle == "" {
		record.ReceiptTitle = input.ReceiptTitle
	}

	h.logger.Info("status lookup served", map[string]interface{}{
		"receiptTitle": record.ReceiptTitle,
		"status":       record.Status,
	})

	return &Output{
		Success:      true,
		ReceiptTitle: record.ReceiptTitle,
		Status:       record.Status,
		Tracking:     record.TrackingNumber,
		LastEdited:   record.LastEdited.Format(time.RFC3339),
	}, nil
}
