package store

import (
	"encoding/json"
	"fmt"

	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// DecodeItem converts a DynamoDB item into plain JSON-safe values. Number
// attributes become int64 when exactly whole-valued (json.Number when the
// digits exceed int64 range) and float64 otherwise, at any nesting depth.
// The decimal-string storage representation never leaves this package.
func DecodeItem(item map[string]ddbtypes.AttributeValue) (map[string]any, error) {
	out := make(map[string]any, len(item))
	for key, av := range item {
		value, err := decodeAttribute(av)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

func decodeAttribute(av ddbtypes.AttributeValue) (any, error) {
	switch v := av.(type) {
	case *ddbtypes.AttributeValueMemberS:
		return v.Value, nil
	case *ddbtypes.AttributeValueMemberN:
		return decodeNumber(v.Value)
	case *ddbtypes.AttributeValueMemberBOOL:
		return v.Value, nil
	case *ddbtypes.AttributeValueMemberNULL:
		return nil, nil
	case *ddbtypes.AttributeValueMemberM:
		return DecodeItem(v.Value)
	case *ddbtypes.AttributeValueMemberL:
		list := make([]any, 0, len(v.Value))
		for _, elem := range v.Value {
			decoded, err := decodeAttribute(elem)
			if err != nil {
				return nil, err
			}
			list = append(list, decoded)
		}
		return list, nil
	case *ddbtypes.AttributeValueMemberSS:
		list := make([]any, 0, len(v.Value))
		for _, s := range v.Value {
			list = append(list, s)
		}
		return list, nil
	case *ddbtypes.AttributeValueMemberNS:
		list := make([]any, 0, len(v.Value))
		for _, raw := range v.Value {
			decoded, err := decodeNumber(raw)
			if err != nil {
				return nil, err
			}
			list = append(list, decoded)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unsupported attribute type %T", av)
	}
}

func decodeNumber(raw string) (any, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid number attribute %q: %w", raw, err)
	}
	if d.IsInteger() {
		if d.BigInt().IsInt64() {
			return d.IntPart(), nil
		}
		// wider than int64: keep the digits verbatim rather than wrap
		return json.Number(d.String()), nil
	}
	f, _ := d.Float64()
	return f, nil
}
