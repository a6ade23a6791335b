package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/menumatch/labeler/internal/auth"
	"github.com/menumatch/labeler/internal/config"
	"github.com/menumatch/labeler/internal/model"
	"github.com/menumatch/labeler/internal/payload"
	"github.com/menumatch/labeler/internal/response"
	"github.com/menumatch/labeler/internal/store"
)

// Ingest persists labeling metadata for an uploaded tray image.
type Ingest struct {
	cfg     *config.Config
	gateway *store.Gateway
	resp    response.Builder
	logger  zerolog.Logger
	now     func() time.Time
}

// NewIngest wires the metadata ingestion endpoint.
func NewIngest(cfg *config.Config, gateway *store.Gateway, logger zerolog.Logger) *Ingest {
	return &Ingest{
		cfg:     cfg,
		gateway: gateway,
		resp:    response.NewBuilder("Content-Type,X-Upload-Token,Authorization", "OPTIONS,POST"),
		logger:  logger,
		now:     time.Now,
	}
}

// Handle accepts a POST with a metadata payload and commits it once per
// object key.
func (h *Ingest) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if r := methodGate(req, h.resp, http.MethodPost); r != nil {
		return *r, nil
	}
	if h.cfg.MetadataTable == "" {
		h.logger.Error().Msg("missing required env var METADATA_TABLE")
		return h.resp.Message(http.StatusInternalServerError, "Server is not configured for metadata."), nil
	}
	if r := tokenGate(req, h.resp, auth.UploadTokenHeader, h.cfg.UploadAuthToken, h.logger); r != nil {
		return *r, nil
	}

	parsed, err := payload.ParseBody(req.Body, req.IsBase64Encoded)
	if err != nil {
		return h.resp.Message(http.StatusBadRequest, err.Error()), nil
	}

	record, err := payload.Validate(parsed)
	if err != nil {
		return h.resp.Message(http.StatusBadRequest, err.Error()), nil
	}

	record.CreatedAt = h.now().UTC().Format(time.RFC3339Nano)

	if err := h.gateway.Create(ctx, record); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return h.resp.Message(http.StatusConflict, "Metadata already recorded for this upload."), nil
		}
		return h.resp.Message(http.StatusInternalServerError, "Could not save metadata. Try again later."), nil
	}

	return h.resp.JSON(http.StatusCreated, model.IngestResponse{
		ObjectKey: record.ObjectKey,
		CreatedAt: record.CreatedAt,
	}), nil
}
