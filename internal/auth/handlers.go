package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// DevHandler обслуживает POST /v1/auth/dev
func DevHandler(tokens *Tokens, logger *zap.Logger) http.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
			return
		}

		resp, err := tokens.IssueDevToken(r.Context())
		switch {
		case errors.Is(err, ErrDevAuthDisabled):
			writeError(w, http.StatusNotFound, "not_found", "Dev auth is disabled")
		case err != nil:
			logger.Error("issue dev token", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to issue token")
		default:
			logger.Info("dev token issued", zap.String("sub", DevUserID))
			writeJSON(w, http.StatusOK, resp)
		}
	}
}

// ErrorResponse — формат ошибки, общий для HTTP API
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	var body ErrorResponse
	body.Error.Code = code
	body.Error.Message = message
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
