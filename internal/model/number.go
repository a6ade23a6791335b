package model

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// Number is an arbitrary-precision decimal that marshals to a DynamoDB
// number attribute verbatim, never passing through float64 on the way in.
type Number struct {
	decimal.Decimal
}

// NewNumber wraps d as a Number.
func NewNumber(d decimal.Decimal) Number {
	return Number{Decimal: d}
}

// MarshalDynamoDBAttributeValue writes the decimal digits as an N attribute.
func (n Number) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: n.String()}, nil
}

// UnmarshalDynamoDBAttributeValue reads an N attribute back into a Number.
func (n *Number) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	num, ok := av.(*types.AttributeValueMemberN)
	if !ok {
		return fmt.Errorf("expected number attribute, got %T", av)
	}
	d, err := decimal.NewFromString(num.Value)
	if err != nil {
		return fmt.Errorf("invalid number attribute %q: %w", num.Value, err)
	}
	n.Decimal = d
	return nil
}

// MarshalJSON renders whole values as integers and fractional values as
// floating point, never as a quoted decimal string.
func (n Number) MarshalJSON() ([]byte, error) {
	if n.IsInteger() {
		return []byte(n.String()), nil
	}
	f, _ := n.Float64()
	return json.Marshal(f)
}
