package handler

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/menumatch/labeler/internal/auth"
	"github.com/menumatch/labeler/internal/config"
	"github.com/menumatch/labeler/internal/model"
	"github.com/menumatch/labeler/internal/response"
	"github.com/menumatch/labeler/internal/store"
)

// Dataset serves the entire labeled dataset.
type Dataset struct {
	cfg     *config.Config
	gateway *store.Gateway
	resp    response.Builder
	logger  zerolog.Logger
}

// NewDataset wires the full-scan endpoint.
func NewDataset(cfg *config.Config, gateway *store.Gateway, logger zerolog.Logger) *Dataset {
	return &Dataset{
		cfg:     cfg,
		gateway: gateway,
		resp:    response.NewBuilder("Content-Type,X-Api-Key,Authorization", "OPTIONS,GET"),
		logger:  logger,
	}
}

// Handle accepts a GET with no parameters and returns every record.
func (h *Dataset) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
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

	result, err := h.gateway.ScanAll(ctx)
	if err != nil {
		return h.resp.Message(http.StatusInternalServerError, "Could not read dataset. Try again later."), nil
	}

	return h.resp.JSON(http.StatusOK, model.DatasetResponse{
		Items:        result.Items,
		Count:        result.Count,
		ScannedCount: result.ScannedCount,
	}), nil
}
