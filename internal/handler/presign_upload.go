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

// PresignUpload issues PUT-scoped signed URLs for image uploads.
type PresignUpload struct {
	cfg    *config.Config
	issuer *signer.Issuer
	resp   response.Builder
	logger zerolog.Logger
}

// NewPresignUpload wires the upload presign endpoint.
func NewPresignUpload(cfg *config.Config, issuer *signer.Issuer, logger zerolog.Logger) *PresignUpload {
	return &PresignUpload{
		cfg:    cfg,
		issuer: issuer,
		resp:   response.NewBuilder("Content-Type,X-Api-Key,Authorization", "OPTIONS,POST"),
		logger: logger,
	}
}

// Handle accepts a POST naming the file to upload and returns a signed
// upload URL with the resolved object key.
func (h *PresignUpload) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if r := methodGate(req, h.resp, http.MethodPost); r != nil {
		return *r, nil
	}
	if h.cfg.UploadBucket == "" {
		h.logger.Error().Msg("missing required env var UPLOAD_BUCKET")
		return h.resp.Message(http.StatusInternalServerError, "Server is not configured for uploads."), nil
	}
	if r := tokenGate(req, h.resp, auth.APIKeyHeader, h.cfg.AuthToken, h.logger); r != nil {
		return *r, nil
	}

	var body model.PresignUploadRequest
	if err := payload.DecodeBody(req.Body, req.IsBase64Encoded, &body); err != nil {
		return h.resp.Message(http.StatusBadRequest, err.Error()), nil
	}

	if body.Filename == "" {
		return h.resp.Message(http.StatusBadRequest, "Field 'filename' is required."), nil
	}

	objectKey := body.ObjectKey
	if objectKey == "" {
		objectKey = signer.BuildObjectKey(body.Filename, h.cfg.UploadPrefix)
	}

	signed, err := h.issuer.Upload(ctx, h.cfg.UploadBucket, objectKey, body.ContentType)
	if err != nil {
		return h.resp.Message(http.StatusInternalServerError, "Could not generate upload URL. Please retry later."), nil
	}

	result := model.PresignUploadResponse{
		UploadURL: signed.URL,
		Method:    signed.Method,
		ObjectKey: signed.ObjectKey,
		Bucket:    signed.Bucket,
		ExpiresIn: signed.ExpiresIn,
	}
	if body.ContentType != "" {
		result.Headers = map[string]string{"Content-Type": body.ContentType}
	}

	return h.resp.JSON(http.StatusOK, result), nil
}
