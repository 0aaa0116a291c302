package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpupo63/projectblox-backend/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

// WriteJSONStatus marshals data before touching the response so a marshal failure still yields a clean 500
func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	// Check if response is too large (e.g., > 10MB)
	const maxResponseSize = 10 * 1024 * 1024
	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large")

		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Response too large","status":"error"}`))
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps err to a JSON error body. Server-side failures are logged
// in full and answered with their public message only; backend details never
// reach the client.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSONStatus(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "Internal Server Error",
			Status: "error",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Int("status", apiErr.StatusCode).Msg(apiErr.GetFullError())
		r.WriteJSONStatus(w, apiErr.StatusCode, ErrorResponse{
			Error:  publicMessage(apiErr),
			Status: "error",
		})
		return
	}

	response := ErrorResponse{
		Error:  apiErr.Error(),
		Status: "error",
		Field:  apiErr.Field,
	}
	if apiErr.Cause != nil {
		response.Cause = apiErr.GetFullError()
	}
	r.WriteJSONStatus(w, apiErr.StatusCode, response)
}

// publicMessage is the top-level message of a server error without its details or cause
func publicMessage(apiErr *errs.ApiErr) string {
	if msg := apiErr.Unwrap(); msg != nil {
		return msg.Error()
	}
	return http.StatusText(apiErr.StatusCode)
}

// wrapFetchError keeps a not-found or bad-request error as is and turns anything
// else into a 500 with message, keeping err as the logged cause
func wrapFetchError(message string, err error) error {
	if errs.StatusCode(err) < http.StatusInternalServerError {
		return err
	}
	return errs.NewInternalErrorWithCause(message, err)
}
