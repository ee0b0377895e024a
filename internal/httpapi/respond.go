package httpapi

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ops-dashboard/internal/errors"
)

const maxBodyBytes = 1 << 20

var internalError = errorResponse{Error: "internal server error", Code: "INTERNAL_ERROR"}

// errorResponse is the JSON body of every failed request
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("failed to encode response")
	}
}

// writeError maps err onto a status code and a JSON error body. Errors that
// are not app errors are reported as internal errors without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	body := errorResponse{
		Error: errors.GetUserMessage(err),
		Code:  errors.GetErrorCode(err),
	}
	if !errors.IsAppError(err) {
		body = internalError
	}

	if errors.ShouldLogError(err) {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	}
	writeJSON(w, status, body)
}

// decodeJSON reads a JSON body into v. An empty body is allowed when
// optional is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if optional && stderrors.Is(err, io.EOF) {
			return nil
		}
		return errors.NewInvalidInputError("body", nil, "malformed JSON: "+err.Error())
	}
	return nil
}
