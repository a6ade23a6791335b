package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/menumatch/labeler/internal/auth"
	"github.com/menumatch/labeler/internal/config"
	"github.com/menumatch/labeler/internal/model"
	"github.com/menumatch/labeler/internal/response"
	"github.com/menumatch/labeler/internal/store"
)

// DatasetItem serves a single labeled record by object key.
type DatasetItem struct {
	cfg     *config.Config
	gateway *store.Gateway
	resp    response.Builder
	logger  zerolog.Logger
}

// NewDatasetItem wires the point-lookup endpoint.
func NewDatasetItem(cfg *config.Config, gateway *store.Gateway, logger zerolog.Logger) *DatasetItem {
	return &DatasetItem{
		cfg:     cfg,
		gateway: gateway,
		resp:    response.NewBuilder("Content-Type,X-Api-Key,Authorization", "OPTIONS,GET"),
		logger:  logger,
	}
}

// Handle accepts a GET with the object key in the path or query string.
func (h *DatasetItem) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if r := methodGate(req, h.resp, http.MethodGet); r != nil {
		return *r, nil
	}
	if h.cfg.MetadataTable == "" {
		h.logger.Error().Msg("missing required env var METADATA_TABLE")
		return h.resp.Message(http.StatusInternalServerError, "Server is not configured for dataset access."), nil
	}
	if r := tokenGate(req, h.resp, auth.APIKeyHeader, h.cfg.AuthToken, h.logger); r != nil {
		return *r, nil
	}

	objectKey := objectKeyFromRequest(req)
	if objectKey == "" {
		return h.resp.Message(http.StatusBadRequest, "objectKey path parameter is required."), nil
	}

	item, err := h.gateway.GetByKey(ctx, objectKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return h.resp.Message(http.StatusNotFound, "Dataset item not found."), nil
		}
		return h.resp.Message(http.StatusInternalServerError, "Could not read dataset. Try again later."), nil
	}

	return h.resp.JSON(http.StatusOK, model.DatasetItemResponse{Item: item}), nil
}

// objectKeyFromRequest recovers the object key from the path parameters
// (including greedy-path variants) or, failing that, the query string.
// Percent-escapes introduced by the path routing are decoded.
func objectKeyFromRequest(req events.APIGatewayProxyRequest) string {
	raw := req.PathParameters["objectKey"]
	if raw == "" {
		raw = req.PathParameters["objectKey+"]
	}
	if raw == "" {
		raw = req.PathParameters["proxy"]
	}
	if raw == "" {
		raw = req.QueryStringParameters["objectKey"]
	}
	if raw == "" {
		return ""
	}

	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}
