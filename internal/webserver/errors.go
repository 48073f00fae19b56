package webserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tejzpr/vibeque-hq/internal/queue"
)

type Code string

const (
	CodeInvalidArgument   Code = "INVALID_ARGUMENT"
	CodeSchema            Code = "SCHEMA_ERROR"
	CodeSourceUnavailable Code = "SOURCE_UNAVAILABLE"
	CodeInternal          Code = "INTERNAL"
)

// syncFailedMessage is all the operator sees when the sheet cannot be read.
const syncFailedMessage = "Sync failed. Check the sheet connection and refresh."

// APIError is the JSON error body of the API.
type APIError struct {
	Code    Code     `json:"code"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

// boardResponse adds the load status next to the board fields.
type boardResponse struct {
	Status string `json:"status"`
	*queue.Board
}

// toAPIError classifies a pipeline error. Schema errors are passed through
// verbatim; source failures are reduced to a generic message.
func toAPIError(err error) *APIError {
	var schemaErr *queue.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return &APIError{Code: CodeSchema, Message: schemaErr.Error(), Missing: schemaErr.Missing}
	case errors.Is(err, queue.ErrSourceUnavailable):
		return &APIError{Code: CodeSourceUnavailable, Message: syncFailedMessage}
	}
	return &APIError{Code: CodeInternal, Message: "internal error"}
}

// toError turns an API error body back into the pipeline error it stands for.
func (e *APIError) toError() error {
	switch e.Code {
	case CodeSchema:
		return &queue.SchemaError{Missing: e.Missing}
	case CodeSourceUnavailable:
		return queue.Unavailable("", "", errors.New(e.Message))
	}
	return e
}

func toHTTPStatus(e *APIError) int {
	switch e.Code {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeSchema:
		return http.StatusBadGateway
	case CodeSourceUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, e *APIError) {
	writeJSON(w, toHTTPStatus(e), e)
}
