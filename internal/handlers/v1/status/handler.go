package status

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/carson-networks/expense-tracker/internal/logging"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Handler reports whether the server can reach its data store.
type Handler struct {
	Storage pinger
}

func NewHandler(store pinger) Handler {
	return Handler{Storage: store}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	stopTimer := logData.AddTiming("pingMs")
	err := h.Storage.Ping(req.Context())
	stopTimer()
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return fmt.Errorf("status: storage ping: %w", err)
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
