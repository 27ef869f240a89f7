package errors

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/pennsieve/customers-service/internal/logging"
	"github.com/pennsieve/customers-service/internal/models"
)

var ErrConfig = errors.New("error loading configuration")
var ErrDynamoDB = errors.New("error performing action on DynamoDB table")
var ErrMarshaling = errors.New("error marshaling item")
var ErrUnmarshaling = errors.New("error unmarshaling item")
var ErrRecordNotFound = errors.New("instance not found")
var ErrMissingKeyAttribute = errors.New("index item is missing a key attribute")

// QueryError is returned for every failed customers query. Op names the step that failed.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Message returns the human-readable description carried by err: the service message
// for DynamoDB API errors, otherwise the text of the error the query step failed with.
func Message(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}
	var queryErr *QueryError
	if errors.As(err, &queryErr) && queryErr.Err != nil {
		return queryErr.Err.Error()
	}
	return err.Error()
}

// HandlerError logs the failure and renders the {"error": ...} response body.
func HandlerError(handlerName string, handlerError error) string {
	logging.Default.Error(handlerName, "error", handlerError.Error())
	m, err := json.Marshal(models.ErrorResponse{
		Error: Message(handlerError),
	})
	if err != nil {
		logging.Default.Error(handlerName, "error", err.Error())
		return err.Error()
	}
	return string(m)
}
