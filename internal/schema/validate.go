package schema

import (
	"fmt"
	"math"
	"strconv"
)

// FeatureVector maps feature keys to validated finite values. It is built
// per request and discarded once the request completes.
type FeatureVector map[string]float64

// FieldErrors collects one message per offending field.
type FieldErrors map[string]string

// Validate checks a raw request payload against the feature catalog. Every
// field is checked independently so a client sees all problems in one round
// trip. Unknown keys are rejected rather than dropped; dropping them would
// hide client bugs. Validate is a pure function of its input.
func Validate(raw map[string]interface{}) (FeatureVector, FieldErrors) {
	fieldErrors := FieldErrors{}
	vector := make(FeatureVector, len(featureSpecs))

	for _, spec := range featureSpecs {
		value, present := raw[spec.Key]
		if !present || value == nil || value == "" {
			if spec.Required {
				fieldErrors[spec.Key] = fmt.Sprintf("missing required field %s", spec.Key)
			}
			continue
		}

		parsed, err := toFloat(value)
		if err != nil {
			fieldErrors[spec.Key] = fmt.Sprintf("%s must be numeric", spec.Key)
			continue
		}
		if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			fieldErrors[spec.Key] = fmt.Sprintf("%s must be a finite number", spec.Key)
			continue
		}
		if parsed < spec.Min || parsed > spec.Max {
			fieldErrors[spec.Key] = fmt.Sprintf("%s out of range [%g, %g]", spec.Key, spec.Min, spec.Max)
			continue
		}
		vector[spec.Key] = parsed
	}

	for key := range raw {
		if _, known := specIndex[key]; !known {
			fieldErrors[key] = fmt.Sprintf("unknown field %s", key)
		}
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}
	return vector, nil
}

func toFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("unsupported value type %T", value)
	}
}
