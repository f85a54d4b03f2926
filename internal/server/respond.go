package server

import (
	"encoding/json"
	"net/http"

	perrors "github.com/matzehuels/procview/pkg/errors"
)

// maxBody bounds request bodies.
const maxBody = 8 << 20

type errorResponse struct {
	Code    perrors.Code `json:"code"`
	Message string       `json:"message"`
}

func statusFor(code perrors.Code) int {
	switch code {
	case perrors.ErrCodeInvalidInput, perrors.ErrCodeInvalidNodeID, perrors.ErrCodeInvalidGroupID,
		perrors.ErrCodeInvalidAction, perrors.ErrCodeInvalidConfig, perrors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case perrors.ErrCodeNotFound, perrors.ErrCodeDocumentNotFound:
		return http.StatusNotFound
	case perrors.ErrCodeInvariantViolation:
		return http.StatusConflict
	case perrors.ErrCodeNetwork, perrors.ErrCodeTimeout:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := perrors.GetCode(err)
	status := statusFor(code)
	if code == "" {
		code = perrors.ErrCodeInternal
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: perrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
