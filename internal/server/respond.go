package server

import (
	"encoding/json"
	"net/http"

	errs "github.com/matzehuels/galaxy/pkg/errors"
)

// errorBody is the JSON error response.
type errorBody struct {
	Code      errs.Code `json:"code"`
	Message   string    `json:"message"`
	Iteration *int      `json:"iteration,omitempty"`
}

// newErrorBody describes err. Uncoded errors become INTERNAL_ERROR.
func newErrorBody(err error) errorBody {
	body := errorBody{Code: errs.GetCode(err), Message: errs.UserMessage(err)}
	if body.Code == "" {
		body.Code = errs.ErrCodeInternal
	}
	if i, ok := errs.IterationOf(err); ok {
		body.Iteration = &i
	}
	return body
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidInput, errs.ErrCodeConfiguration, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidState:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound:
		return http.StatusNotFound
	case errs.ErrCodeIndex, errs.ErrCodeNumericDegeneracy:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	body := newErrorBody(err)
	status := statusFor(body.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, body)
}
