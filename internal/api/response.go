package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/diavoice/DiaVoice/internal/models"
)

// fallbackErrorJSON is marshaled once at startup so that a response body that
// fails to encode can still be answered with a well-formed error payload.
var fallbackErrorJSON = func() []byte {
	data, err := json.Marshal(models.Error("Internal server error"))
	if err != nil {
		panic(fmt.Sprintf("failed to marshal fallback error response at startup: %v", err))
	}
	return data
}()

// writeJSONResponse marshals the payload before touching the ResponseWriter,
// so an encoding failure can still downgrade the status code. On failure it
// serves the pre-marshaled fallback with a 500.
func writeJSONResponse(w http.ResponseWriter, statusCode int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Server.writeJSONResponse: failed to marshal response", "error", err)
		data = fallbackErrorJSON
		statusCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(data); err != nil {
		slog.Error("Server.writeJSONResponse: failed to write response", "error", err)
	}
}
