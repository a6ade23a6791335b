package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// Scalar carries an opaque caller-supplied value (difficulty) into the
// matching DynamoDB attribute type without reinterpreting it.
type Scalar struct {
	Value any
}

// MarshalDynamoDBAttributeValue maps strings to S, numbers to N, and
// booleans to BOOL attributes.
func (s Scalar) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	switch v := s.Value.(type) {
	case nil:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case string:
		return &types.AttributeValueMemberS{Value: v}, nil
	case json.Number:
		return &types.AttributeValueMemberN{Value: v.String()}, nil
	case decimal.Decimal:
		return &types.AttributeValueMemberN{Value: v.String()}, nil
	case bool:
		return &types.AttributeValueMemberBOOL{Value: v}, nil
	default:
		return nil, fmt.Errorf("unsupported scalar value %T", v)
	}
}

// UnmarshalDynamoDBAttributeValue restores the scalar, keeping numbers as
// json.Number so precision survives.
func (s *Scalar) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberNULL:
		s.Value = nil
	case *types.AttributeValueMemberS:
		s.Value = v.Value
	case *types.AttributeValueMemberN:
		s.Value = json.Number(v.Value)
	case *types.AttributeValueMemberBOOL:
		s.Value = v.Value
	default:
		return fmt.Errorf("unsupported scalar attribute %T", av)
	}
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value)
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(&s.Value)
}
