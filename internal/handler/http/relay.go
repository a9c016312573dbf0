package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/checkinhq/checkin-backend-go/internal/domain/relay"
	"github.com/checkinhq/checkin-backend-go/internal/handler/http/response"
)

type RelayHandler interface {
	Run(w http.ResponseWriter, r *http.Request)
}

type relayHandlerImpl struct {
	relayService relay.Service
}

func NewRelayHandler(relayService relay.Service) RelayHandler {
	return &relayHandlerImpl{
		relayService: relayService,
	}
}

// Run implements RelayHandler.
func (h *relayHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	var req relay.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode relay request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.relayService.Run(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punches posted to HR system", result)
}
