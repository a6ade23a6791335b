package payload

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/menumatch/labeler/internal/model"
)

// ValidationError describes a rejected metadata payload. Its message names
// the offending field(s) and is safe to return to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// requiredFields are checked and reported in this order.
var requiredFields = []string{"objectKey", "mealtime", "date", "diningHallId", "difficulty"}

// Validate normalizes a parsed submission into a MetadataRecord. Rules are
// applied in order and the first failure wins. CreatedAt is left unset; the
// ingest handler assigns it at commit time.
func Validate(parsed map[string]any) (model.MetadataRecord, error) {
	var missing []string
	for _, field := range requiredFields {
		if !truthy(parsed[field]) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return model.MetadataRecord{}, invalidf("Missing required fields: %s", strings.Join(missing, ", "))
	}

	// difficulty must store as a single attribute; arrays and objects have
	// no scalar representation and would only fail later at commit
	switch parsed["difficulty"].(type) {
	case []any, map[string]any:
		return model.MetadataRecord{}, invalidf("Field 'difficulty' must be a scalar value.")
	}

	rawItems, ok := parsed["items"].([]any)
	if !ok || len(rawItems) == 0 {
		return model.MetadataRecord{}, invalidf("Payload must include at least one menu item.")
	}

	items := make([]model.LineItem, 0, len(rawItems))
	for i, raw := range rawItems {
		index := i + 1

		entry, ok := raw.(map[string]any)
		if !ok {
			return model.MetadataRecord{}, invalidf("Item #%d must be an object.", index)
		}

		menuItemID := entry["menuItemId"]
		if !truthy(menuItemID) {
			return model.MetadataRecord{}, invalidf("Item #%d is missing 'menuItemId'.", index)
		}

		servings, err := normalizeServings(entry["servings"], index)
		if err != nil {
			return model.MetadataRecord{}, err
		}

		items = append(items, model.LineItem{
			MenuItemID: stringify(menuItemID),
			Servings:   servings,
		})
	}

	return model.MetadataRecord{
		ObjectKey:    stringify(parsed["objectKey"]),
		Bucket:       stringify(parsed["bucket"]),
		Mealtime:     stringify(parsed["mealtime"]),
		MealDate:     stringify(parsed["date"]),
		DiningHallID: stringify(parsed["diningHallId"]),
		Difficulty:   model.Scalar{Value: parsed["difficulty"]},
		Items:        items,
	}, nil
}

// normalizeServings accepts a numeric literal or numeric string and parses
// it as an arbitrary-precision decimal. index is the item's 1-based
// position, used in every failure message.
func normalizeServings(value any, index int) (model.Number, error) {
	switch v := value.(type) {
	case nil:
		return model.Number{}, invalidf("Item #%d is missing 'servings'.", index)
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return model.Number{}, invalidf("Item #%d has an invalid servings value '%s'.", index, v.String())
		}
		return checkServings(d, index)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return model.Number{}, invalidf("Item #%d is missing 'servings'.", index)
		}
		d, err := decimal.NewFromString(trimmed)
		if err != nil {
			return model.Number{}, invalidf("Item #%d has an invalid servings value '%s'.", index, v)
		}
		return checkServings(d, index)
	default:
		return model.Number{}, invalidf("Item #%d servings must be a number.", index)
	}
}

func checkServings(d decimal.Decimal, index int) (model.Number, error) {
	if d.IsNegative() {
		return model.Number{}, invalidf("Item #%d servings cannot be negative.", index)
	}
	return model.NewNumber(d), nil
}

// truthy mirrors JSON-level presence: nil, "", 0, and false all count as
// missing.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return err != nil || !d.IsZero()
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
