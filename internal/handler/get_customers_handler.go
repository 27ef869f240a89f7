package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pennsieve/customers-service/internal/container"
	"github.com/pennsieve/customers-service/internal/errors"
	"github.com/pennsieve/customers-service/internal/models"
	"github.com/pennsieve/customers-service/internal/store_dynamodb"
)

const handlerName = "GetCustomersHandler"

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func GetCustomersHandlerWithContainer(ctx context.Context, _ events.APIGatewayV2HTTPRequest, container container.DependencyContainer) (events.APIGatewayV2HTTPResponse, error) {
	status, body := listCustomers(ctx, container.CustomerStore())
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    jsonHeaders,
		Body:       body,
	}, nil
}

// listCustomers runs the customers query and renders the status code and JSON body.
// Success is the bare array of records; the page cursor is dropped.
func listCustomers(ctx context.Context, store store_dynamodb.CustomerStore) (int, string) {
	result, err := store.List(ctx)
	if err != nil {
		return http.StatusInternalServerError, errors.HandlerError(handlerName, err)
	}

	data := result.Data
	if data == nil {
		data = []models.Customer{}
	}
	m, err := json.Marshal(data)
	if err != nil {
		return http.StatusInternalServerError,
			errors.HandlerError(handlerName, fmt.Errorf("%w: %w", errors.ErrMarshaling, err))
	}
	return http.StatusOK, string(m)
}
