package valueobjects

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FeatureValueType describes how a feature's string-encoded value is interpreted.
type FeatureValueType string

const (
	ValueTypeToggle  FeatureValueType = "toggle"
	ValueTypeNumeric FeatureValueType = "numeric"
	ValueTypeText    FeatureValueType = "text"
)

func (t FeatureValueType) String() string {
	return string(t)
}

func (t FeatureValueType) IsValid() bool {
	return t == ValueTypeToggle || t == ValueTypeNumeric || t == ValueTypeText
}

// ValidateValue checks that a string-encoded value parses under this value type.
// Toggle values are the literals "true"/"false" (case-insensitive), numeric
// values must parse as a finite decimal, text values are unrestricted.
func (t FeatureValueType) ValidateValue(value string) error {
	switch t {
	case ValueTypeToggle:
		lower := strings.ToLower(value)
		if lower != "true" && lower != "false" {
			return fmt.Errorf("toggle value must be \"true\" or \"false\", got %q", value)
		}
		return nil
	case ValueTypeNumeric:
		if _, err := decimal.NewFromString(value); err != nil {
			return fmt.Errorf("numeric value %q is not a valid number", value)
		}
		return nil
	case ValueTypeText:
		return nil
	default:
		return fmt.Errorf("unknown value type: %s", t)
	}
}

// IsTruthy reports whether a resolved value means "enabled" for toggle checks.
func IsTruthy(value string) bool {
	return strings.EqualFold(value, "true")
}
