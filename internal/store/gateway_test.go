package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/menumatch/labeler/internal/model"
	"github.com/menumatch/labeler/internal/store"
)

type fakeDynamo struct {
	putFn  func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	getFn  func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	scanFn func(*dynamodb.ScanInput) (*dynamodb.ScanOutput, error)

	scanCalls int
}

func (f *fakeDynamo) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return f.putFn(params)
}

func (f *fakeDynamo) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return f.getFn(params)
}

func (f *fakeDynamo) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scanCalls++
	return f.scanFn(params)
}

func testRecord(t *testing.T, objectKey string) model.MetadataRecord {
	t.Helper()
	servings, err := decimal.NewFromString("2.5")
	if err != nil {
		t.Fatalf("decimal: %v", err)
	}
	return model.MetadataRecord{
		ObjectKey:    objectKey,
		Mealtime:     "lunch",
		MealDate:     "2026-08-30",
		DiningHallID: "42",
		Difficulty:   model.Scalar{Value: "medium"},
		Items: []model.LineItem{
			{MenuItemID: "pasta-01", Servings: model.NewNumber(servings)},
		},
		CreatedAt: "2026-08-30T12:00:00Z",
	}
}

func TestCreateConditionalWrite(t *testing.T) {
	var captured *dynamodb.PutItemInput
	fake := &fakeDynamo{
		putFn: func(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			captured = in
			return &dynamodb.PutItemOutput{}, nil
		},
	}

	gw := store.New(fake, "mml-metadata")
	if err := gw.Create(context.Background(), testRecord(t, "v1/abc.jpg")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if captured.TableName == nil || *captured.TableName != "mml-metadata" {
		t.Errorf("TableName = %v", captured.TableName)
	}
	if captured.ConditionExpression == nil || *captured.ConditionExpression != "attribute_not_exists(objectKey)" {
		t.Errorf("ConditionExpression = %v, want attribute_not_exists guard", captured.ConditionExpression)
	}

	key, ok := captured.Item["objectKey"].(*ddbtypes.AttributeValueMemberS)
	if !ok || key.Value != "v1/abc.jpg" {
		t.Errorf("objectKey attribute = %#v", captured.Item["objectKey"])
	}
	if _, ok := captured.Item["bucket"]; ok {
		t.Error("empty bucket should not be written")
	}

	items, ok := captured.Item["items"].(*ddbtypes.AttributeValueMemberL)
	if !ok || len(items.Value) != 1 {
		t.Fatalf("items attribute = %#v", captured.Item["items"])
	}
	entry := items.Value[0].(*ddbtypes.AttributeValueMemberM)
	servings, ok := entry.Value["servings"].(*ddbtypes.AttributeValueMemberN)
	if !ok || servings.Value != "2.5" {
		t.Errorf("servings attribute = %#v, want N 2.5", entry.Value["servings"])
	}
}

func TestCreateDuplicateKey(t *testing.T) {
	fake := &fakeDynamo{
		putFn: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			return nil, &ddbtypes.ConditionalCheckFailedException{}
		},
	}

	gw := store.New(fake, "mml-metadata")
	err := gw.Create(context.Background(), testRecord(t, "v1/abc.jpg"))
	if !errors.Is(err, store.ErrDuplicateKey) {
		t.Errorf("Create error = %v, want ErrDuplicateKey", err)
	}
}

func TestCreateStoreFailure(t *testing.T) {
	fake := &fakeDynamo{
		putFn: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			return nil, errors.New("throttled")
		},
	}

	gw := store.New(fake, "mml-metadata")
	err := gw.Create(context.Background(), testRecord(t, "v1/abc.jpg"))
	if !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("Create error = %v, want ErrUnavailable", err)
	}
}

func TestCreateMarshalFailure(t *testing.T) {
	fake := &fakeDynamo{
		putFn: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			t.Fatal("PutItem should not be reached when marshaling fails")
			return nil, nil
		},
	}

	record := testRecord(t, "v1/abc.jpg")
	record.Difficulty = model.Scalar{Value: []any{"not", "scalar"}}

	gw := store.New(fake, "mml-metadata")
	err := gw.Create(context.Background(), record)
	if !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("Create error = %v, want ErrUnavailable", err)
	}
}

func TestGetByKey(t *testing.T) {
	fake := &fakeDynamo{
		getFn: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			key := in.Key["objectKey"].(*ddbtypes.AttributeValueMemberS)
			if key.Value != "v1/abc.jpg" {
				return &dynamodb.GetItemOutput{}, nil
			}
			return &dynamodb.GetItemOutput{Item: map[string]ddbtypes.AttributeValue{
				"objectKey": &ddbtypes.AttributeValueMemberS{Value: "v1/abc.jpg"},
				"items": &ddbtypes.AttributeValueMemberL{Value: []ddbtypes.AttributeValue{
					&ddbtypes.AttributeValueMemberM{Value: map[string]ddbtypes.AttributeValue{
						"servings": &ddbtypes.AttributeValueMemberN{Value: "3"},
					}},
				}},
			}}, nil
		},
	}

	gw := store.New(fake, "mml-metadata")

	item, err := gw.GetByKey(context.Background(), "v1/abc.jpg")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if item["objectKey"] != "v1/abc.jpg" {
		t.Errorf("objectKey = %v", item["objectKey"])
	}
	servings := item["items"].([]any)[0].(map[string]any)["servings"]
	if servings != int64(3) {
		t.Errorf("servings = %v (%T), want int64 3", servings, servings)
	}

	_, err = gw.GetByKey(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByKey(missing) error = %v, want ErrNotFound", err)
	}
}

func TestGetByKeyStoreFailure(t *testing.T) {
	fake := &fakeDynamo{
		getFn: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return nil, errors.New("timeout")
		},
	}

	gw := store.New(fake, "mml-metadata")
	_, err := gw.GetByKey(context.Background(), "v1/abc.jpg")
	if !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("GetByKey error = %v, want ErrUnavailable", err)
	}
}

func scanPage(start, count int, lastKey string) *dynamodb.ScanOutput {
	items := make([]map[string]ddbtypes.AttributeValue, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, map[string]ddbtypes.AttributeValue{
			"objectKey": &ddbtypes.AttributeValueMemberS{Value: fmt.Sprintf("v1/%03d.jpg", start+i)},
			"servings":  &ddbtypes.AttributeValueMemberN{Value: "1"},
		})
	}
	out := &dynamodb.ScanOutput{
		Items:        items,
		Count:        int32(count),
		ScannedCount: int32(count),
	}
	if lastKey != "" {
		out.LastEvaluatedKey = map[string]ddbtypes.AttributeValue{
			"objectKey": &ddbtypes.AttributeValueMemberS{Value: lastKey},
		}
	}
	return out
}

func TestScanAllFollowsContinuationTokens(t *testing.T) {
	fake := &fakeDynamo{}
	fake.scanFn = func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
		switch fake.scanCalls {
		case 1:
			if in.ExclusiveStartKey != nil {
				t.Errorf("first page should not carry a start key")
			}
			return scanPage(0, 40, "v1/039.jpg"), nil
		case 2:
			key := in.ExclusiveStartKey["objectKey"].(*ddbtypes.AttributeValueMemberS)
			if key.Value != "v1/039.jpg" {
				t.Errorf("second page start key = %q", key.Value)
			}
			return scanPage(40, 40, "v1/079.jpg"), nil
		case 3:
			return scanPage(80, 20, ""), nil
		default:
			t.Fatalf("unexpected scan call %d", fake.scanCalls)
			return nil, nil
		}
	}

	gw := store.New(fake, "mml-metadata")
	result, err := gw.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("ScanAll: %v", err)
	}

	if len(result.Items) != 100 || result.Count != 100 {
		t.Errorf("Count = %d, len = %d, want 100", result.Count, len(result.Items))
	}
	if result.ScannedCount < 100 {
		t.Errorf("ScannedCount = %d, want >= 100", result.ScannedCount)
	}
	if fake.scanCalls != 3 {
		t.Errorf("scan calls = %d, want 3", fake.scanCalls)
	}
}

func TestScanAllDiscardsPartialResultsOnFailure(t *testing.T) {
	fake := &fakeDynamo{}
	fake.scanFn = func(*dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
		if fake.scanCalls == 1 {
			return scanPage(0, 40, "v1/039.jpg"), nil
		}
		return nil, errors.New("throughput exceeded")
	}

	gw := store.New(fake, "mml-metadata")
	result, err := gw.ScanAll(context.Background())
	if !errors.Is(err, store.ErrUnavailable) {
		t.Fatalf("ScanAll error = %v, want ErrUnavailable", err)
	}
	if len(result.Items) != 0 || result.Count != 0 {
		t.Errorf("partial results leaked: %+v", result)
	}
}

func TestScanAllEmptyTable(t *testing.T) {
	fake := &fakeDynamo{}
	fake.scanFn = func(*dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
		return &dynamodb.ScanOutput{}, nil
	}

	gw := store.New(fake, "mml-metadata")
	result, err := gw.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("ScanAll: %v", err)
	}
	if result.Items == nil {
		t.Error("Items should be an empty slice, not nil, so it renders as [] in JSON")
	}
	if result.Count != 0 || result.ScannedCount != 0 {
		t.Errorf("counts = %d/%d, want 0/0", result.Count, result.ScannedCount)
	}
}
