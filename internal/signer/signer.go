// Package signer issues time-limited presigned S3 URLs for image upload
// and download.
package signer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// PresignAPI is the subset of the S3 presign client the issuer uses.
type PresignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// ErrSigning is returned when the blob store rejects a presign request.
var ErrSigning = errors.New("could not presign URL")

// SignedURL describes one issued URL, scoped to exactly one HTTP method.
type SignedURL struct {
	URL       string
	Method    string
	Bucket    string
	ObjectKey string
	ExpiresIn int
}

// Issuer requests presigned URLs with a fixed expiration window.
type Issuer struct {
	presigner PresignAPI
	expiry    time.Duration
	logger    zerolog.Logger
}

// New returns an Issuer whose URLs expire after expirySeconds.
func New(presigner PresignAPI, expirySeconds int) *Issuer {
	return &Issuer{
		presigner: presigner,
		expiry:    time.Duration(expirySeconds) * time.Second,
		logger:    zerolog.Nop(),
	}
}

// SetLogger replaces the issuer's no-op logger.
func (i *Issuer) SetLogger(logger zerolog.Logger) {
	i.logger = logger
}

// Upload returns a PUT-scoped URL for objectKey in bucket. When a content
// type is supplied the URL is pinned to it and the upload must send the
// same Content-Type header.
func (i *Issuer) Upload(ctx context.Context, bucket, objectKey, contentType string) (SignedURL, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	req, err := i.presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(i.expiry))
	if err != nil {
		i.logger.Error().Err(err).Str("objectKey", objectKey).Msg("unable to presign upload URL")
		return SignedURL{}, fmt.Errorf("%w: %v", ErrSigning, err)
	}

	return i.signed(req.URL, http.MethodPut, bucket, objectKey), nil
}

// Download returns a GET-scoped URL for objectKey in bucket.
func (i *Issuer) Download(ctx context.Context, bucket, objectKey string) (SignedURL, error) {
	req, err := i.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(i.expiry))
	if err != nil {
		i.logger.Error().Err(err).Str("objectKey", objectKey).Msg("unable to presign download URL")
		return SignedURL{}, fmt.Errorf("%w: %v", ErrSigning, err)
	}

	return i.signed(req.URL, http.MethodGet, bucket, objectKey), nil
}

func (i *Issuer) signed(url, method, bucket, objectKey string) SignedURL {
	return SignedURL{
		URL:       url,
		Method:    method,
		Bucket:    bucket,
		ObjectKey: objectKey,
		ExpiresIn: int(i.expiry / time.Second),
	}
}
