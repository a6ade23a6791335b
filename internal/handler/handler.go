// Package handler implements the Lambda entrypoints for the labeling API.
//
// Every handler follows the same request discipline: an OPTIONS preflight
// short-circuits to 204 before anything else, the endpoint's designated
// method is enforced, required configuration is checked, then the token
// gate runs when a shared secret is configured. Each request is an
// isolated, stateless invocation.
package handler

import (
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/menumatch/labeler/internal/auth"
	"github.com/menumatch/labeler/internal/response"
)

const msgUnauthorized = "Unauthorized"

// methodGate handles the preflight short-circuit and rejects any method
// other than the endpoint's designated one. It returns a non-nil response
// when the request must not proceed.
func methodGate(req events.APIGatewayProxyRequest, resp response.Builder, method string) *events.APIGatewayProxyResponse {
	if req.HTTPMethod == http.MethodOptions {
		r := resp.NoContent()
		return &r
	}
	if req.HTTPMethod != method {
		r := resp.Message(http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed.", req.HTTPMethod))
		return &r
	}
	return nil
}

// tokenGate rejects the request unless it presents the configured token.
// An empty configured token disables the check.
func tokenGate(req events.APIGatewayProxyRequest, resp response.Builder, tokenHeader, configuredToken string, logger zerolog.Logger) *events.APIGatewayProxyResponse {
	if configuredToken == "" {
		return nil
	}
	provided := auth.ExtractToken(req.Headers, req.QueryStringParameters, tokenHeader)
	if !auth.Authorized(provided, configuredToken) {
		logger.Warn().Msg("unauthorized request: missing or invalid token")
		r := resp.Message(http.StatusUnauthorized, msgUnauthorized)
		return &r
	}
	return nil
}
