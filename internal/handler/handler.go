package handler

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/pennsieve/customers-service/internal/container"
	"github.com/pennsieve/customers-service/internal/logging"
)

var logger = logging.Default

func init() {
	logger.Info("init()")
}

type LambdaHandlerFunc func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

// CustomerServiceHandler is the Lambda entrypoint. Every route and method serves the
// customers listing; request content is not inspected.
func CustomerServiceHandler(c container.DependencyContainer) LambdaHandlerFunc {
	return func(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		log := logger
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			log = log.With(slog.String("requestID", lc.AwsRequestID))
		}
		log.Debug("request parameters",
			"routeKey", request.RouteKey,
			"rawPath", request.RawPath,
			"requestContext.http.method", request.RequestContext.HTTP.Method)

		return GetCustomersHandlerWithContainer(ctx, request, c)
	}
}
