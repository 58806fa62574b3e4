// internal/handlers/submit/handler.go
package submit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"intake-api/internal/common/errors"
	"intake-api/internal/common/logger"
	"intake-api/internal/intake"
	"intake-api/internal/notify"
	"intake-api/internal/notion"
)

const Endpoint = "/api/submit"

type Handler struct {
	config    *Config
	notion    *notion.Client
	notifier  *notify.Notifier
	responder *errors.Responder
	logger    logger.Logger
	location  *time.Location
	now       func() time.Time
}

func NewHandler(cfg *Config, client *notion.Client, notifier *notify.Notifier, loc *time.Location, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"endpoint": Endpoint})
	return &Handler{
		config:    cfg,
		notion:    client,
		notifier:  notifier,
		responder: errors.NewResponder(l),
		logger:    l,
		location:  loc,
		now:       time.Now,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.responder.Respond(w, r, errors.NewMethodNotAllowedError(r.Method))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.responder.Respond(w, r, errors.NewValidationError("Invalid request", "read body: "+err.Error()))
		return
	}

	var input Input
	if err := json.Unmarshal(body, &input); err != nil {
		h.responder.Respond(w, r, errors.NewValidationError("Invalid request", "parse body: "+err.Error()))
		return
	}

	// Silent bot rejection: message stays generic on purpose
	if input.Website != "" {
		h.responder.Respond(w, r, errors.NewHoneypotError())
		return
	}

	valid, details, err := validatePayload(body)
	if err != nil {
		h.responder.Respond(w, r, err)
		return
	}
	if !valid {
		h.responder.Respond(w, r, errors.NewValidationError("Missing required fields", details))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.responder.Respond(w, r, errors.NewUpstreamError("저장 실패", err))
		return
	}

	h.logger.Info("submission stored", map[string]interface{}{
		"receiptTitle": output.ReceiptTitle,
	})
	errors.WriteJSON(w, http.StatusOK, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	receiptID := intake.NewReceiptID(h.now().In(h.location), input.CustomerName, input.Phone)

	submission := intake.Submission{
		CustomerName:  input.CustomerName,
		Phone:         input.Phone,
		Postcode:      input.Postcode,
		BaseAddress:   input.BaseAddress,
		DetailAddress: input.DetailAddress,
		FullAddress:   input.FullAddress,
		RequestNote:   input.Request,
	}

	if _, err := h.notion.CreatePage(ctx, h.config.DatabaseID, submission.Properties(receiptID)); err != nil {
		return nil, err
	}

	// Confirmations are best-effort and must not delay the response
	go h.notifier.SubmissionReceived(context.Background(), receiptID, input.CustomerName, input.Phone)

	return &Output{
		Success:      true,
		ReceiptTitle: receiptID,
	}, nil
}
