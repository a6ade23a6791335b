package handler

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/menumatch/labeler/internal/auth"
	"github.com/menumatch/labeler/internal/config"
	"github.com/menumatch/labeler/internal/model"
	"github.com/menumatch/labeler/internal/payload"
	"github.com/menumatch/labeler/internal/response"
	"github.com/menumatch/labeler/internal/signer"
)

// PresignDownload issues GET-scoped signed URLs for image downloads.
type PresignDownload struct {
	cfg    *config.Config
	issuer *signer.Issuer
	resp   response.Builder
	logger zerolog.Logger
}

// NewPresignDownload wires the download presign endpoint.
func NewPresignDownload(cfg *config.Config, issuer *signer.Issuer, logger zerolog.Logger) *PresignDownload {
	return &PresignDownload{
		cfg:    cfg,
		issuer: issuer,
		resp:   response.NewBuilder("Content-Type,X-Api-Key,Authorization", "OPTIONS,POST"),
		logger: logger,
	}
}

// Handle accepts a POST naming an object key and returns a signed download
// URL for it.
func (h *PresignDownload) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if r := methodGate(req, h.resp, http.MethodPost); r != nil {
		return *r, nil
	}
	if h.cfg.PresignBucket() == "" {
		h.logger.Error().Msg("missing required env var DOWNLOAD_BUCKET/UPLOAD_BUCKET")
		return h.resp.Message(http.StatusInternalServerError, "Server is not configured for downloads."), nil
	}
	if r := tokenGate(req, h.resp, auth.APIKeyHeader, h.cfg.AuthToken, h.logger); r != nil {
		return *r, nil
	}

	var body model.PresignDownloadRequest
	if err := payload.DecodeBody(req.Body, req.IsBase64Encoded, &body); err != nil {
		return h.resp.Message(http.StatusBadRequest, err.Error()), nil
	}

	if body.ObjectKey == "" {
		return h.resp.Message(http.StatusBadRequest, "Field 'objectKey' is required."), nil
	}

	bucket := body.Bucket
	if bucket == "" {
		bucket = h.cfg.PresignBucket()
	}

	signed, err := h.issuer.Download(ctx, bucket, body.ObjectKey)
	if err != nil {
		return h.resp.Message(http.StatusInternalServerError, "Could not generate download URL. Please retry later."), nil
	}

	return h.resp.JSON(http.StatusOK, model.PresignDownloadResponse{
		DownloadURL: signed.URL,
		Method:      signed.Method,
		ObjectKey:   signed.ObjectKey,
		Bucket:      signed.Bucket,
		ExpiresIn:   signed.ExpiresIn,
	}), nil
}
