// Package store is the DynamoDB gateway for metadata records.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	smithy "github.com/aws/smithy-go"
	"github.com/rs/zerolog"

	"github.com/menumatch/labeler/internal/model"
)

// DynamoAPI is the subset of the DynamoDB client the gateway uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Gateway errors. Handlers map these onto HTTP statuses; the underlying
// store error stays in the server-side log.
var (
	ErrDuplicateKey = errors.New("metadata already recorded for this object key")
	ErrNotFound     = errors.New("metadata record not found")
	ErrUnavailable  = errors.New("metadata store unavailable")
)

// Gateway performs idempotent creation, point lookup, and exhaustive scans
// against the metadata table.
type Gateway struct {
	client DynamoAPI
	table  string
	logger zerolog.Logger
}

// New returns a Gateway bound to the given table.
func New(client DynamoAPI, table string) *Gateway {
	return &Gateway{client: client, table: table, logger: zerolog.Nop()}
}

// SetLogger replaces the gateway's no-op logger.
func (g *Gateway) SetLogger(logger zerolog.Logger) {
	g.logger = logger
}

// Create writes the record if and only if its objectKey does not already
// exist. The conditional write is the sole idempotency guard; there is no
// read before the write and no retry on conflict.
func (g *Gateway) Create(ctx context.Context, record model.MetadataRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		g.logger.Error().Err(err).Str("objectKey", record.ObjectKey).Msg("failed to marshal metadata")
		return fmt.Errorf("%w: marshal record: %v", ErrUnavailable, err)
	}

	_, err = g.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(g.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(objectKey)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			g.logger.Warn().Str("objectKey", record.ObjectKey).Msg("metadata already exists")
			return ErrDuplicateKey
		}
		g.logger.Error().Err(err).Str("objectKey", record.ObjectKey).Msg("failed to write metadata")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// isConditionFailed spots a failed attribute_not_exists check. The typed
// exception covers PutItem; matching the API error code also catches paths
// that only surface the code.
func isConditionFailed(err error) bool {
	var conditionFailed *ddbtypes.ConditionalCheckFailedException
	if errors.As(err, &conditionFailed) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ConditionalCheckFailedException"
}

// GetByKey returns the record for objectKey with every attribute decoded to
// JSON-safe values, or ErrNotFound.
func (g *Gateway) GetByKey(ctx context.Context, objectKey string) (map[string]any, error) {
	out, err := g.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(g.table),
		Key: map[string]ddbtypes.AttributeValue{
			"objectKey": &ddbtypes.AttributeValueMemberS{Value: objectKey},
		},
	})
	if err != nil {
		g.logger.Error().Err(err).Str("objectKey", objectKey).Msg("failed to read metadata")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	item, err := DecodeItem(out.Item)
	if err != nil {
		g.logger.Error().Err(err).Str("objectKey", objectKey).Msg("failed to decode metadata")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return item, nil
}

// ScanResult is the outcome of an exhaustive table scan. ScannedCount can
// exceed Count if the store applies server-side filtering; no filter is
// sent here, so the two match in practice.
type ScanResult struct {
	Items        []map[string]any
	Count        int
	ScannedCount int
}

// ScanAll pages through the entire table, feeding each page's continuation
// key into the next request until a page reports none. Results are
// all-or-nothing: a failed page discards everything accumulated so far.
func (g *Gateway) ScanAll(ctx context.Context) (ScanResult, error) {
	items := make([]map[string]any, 0)
	scannedCount := 0

	var startKey map[string]ddbtypes.AttributeValue
	for {
		out, err := g.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(g.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			g.logger.Error().Err(err).Msg("failed to scan metadata table")
			return ScanResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		for _, raw := range out.Items {
			item, err := DecodeItem(raw)
			if err != nil {
				g.logger.Error().Err(err).Msg("failed to decode scanned metadata")
				return ScanResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			items = append(items, item)
		}

		if out.ScannedCount > 0 {
			scannedCount += int(out.ScannedCount)
		} else {
			scannedCount += len(out.Items)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return ScanResult{Items: items, Count: len(items), ScannedCount: scannedCount}, nil
}
