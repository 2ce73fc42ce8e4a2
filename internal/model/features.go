package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"valuescore/internal/utils"
)

// FeatureNames lists the model inputs in the order the classifier was trained on.
// The artifact's feature_names must match this list exactly.
var FeatureNames = []string{
	"Recency",
	"Frequency",
	"Monetary",
	"spend_last_90_days",
	"SpendTrend",
	"AverageOrderValue",
}

// Validation error types
const (
	ErrTypeMissing        = "missing"
	ErrTypeFloatParsing   = "float_parsing"
	ErrTypeFloatType      = "float_type"
	ErrTypeFiniteNumber   = "finite_number"
	ErrTypeJSONInvalid    = "json_invalid"
	ErrTypeObjectType     = "model_attributes_type"
	ErrTypeExtraForbidden = "extra_forbidden"
)

// FeatureVector is one customer's six model inputs
type FeatureVector struct {
	Recency           float64 `json:"Recency"`
	Frequency         float64 `json:"Frequency"`
	Monetary          float64 `json:"Monetary"`
	SpendLast90Days   float64 `json:"spend_last_90_days"`
	SpendTrend        float64 `json:"SpendTrend"`
	AverageOrderValue float64 `json:"AverageOrderValue"`
}

// Row returns the values in FeatureNames order
func (v FeatureVector) Row() []float64 {
	return []float64{
		v.Recency,
		v.Frequency,
		v.Monetary,
		v.SpendLast90Days,
		v.SpendTrend,
		v.AverageOrderValue,
	}
}

// ValidationError describes one rejected part of a request body
type ValidationError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// ValidationErrors is the failure side of ParseFeatures
type ValidationErrors []ValidationError

// featureFields holds the raw JSON of each schema field; nil means absent
type featureFields struct {
	Recency           json.RawMessage `json:"Recency" validate:"required"`
	Frequency         json.RawMessage `json:"Frequency" validate:"required"`
	Monetary          json.RawMessage `json:"Monetary" validate:"required"`
	SpendLast90Days   json.RawMessage `json:"spend_last_90_days" validate:"required"`
	SpendTrend        json.RawMessage `json:"SpendTrend" validate:"required"`
	AverageOrderValue json.RawMessage `json:"AverageOrderValue" validate:"required"`
}

func (f *featureFields) ordered() []json.RawMessage {
	return []json.RawMessage{
		f.Recency,
		f.Frequency,
		f.Monetary,
		f.SpendLast90Days,
		f.SpendTrend,
		f.AverageOrderValue,
	}
}

var presence = newPresenceValidator()

func newPresenceValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// ParseFeatures validates a request body against the feature schema.
// It returns either a complete FeatureVector or every problem found; the
// errors are ordered by schema field, with unknown fields (strict only) last.
func ParseFeatures(body []byte, strict bool) (FeatureVector, ValidationErrors) {
	if len(bytes.TrimSpace(body)) == 0 {
		return FeatureVector{}, ValidationErrors{{
			Loc:  []any{"body"},
			Msg:  "Field required",
			Type: ErrTypeMissing,
		}}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return FeatureVector{}, ValidationErrors{decodeError(err)}
	}
	if raw == nil {
		// literal null
		return FeatureVector{}, ValidationErrors{objectTypeError()}
	}

	fields := featureFields{
		Recency:           raw["Recency"],
		Frequency:         raw["Frequency"],
		Monetary:          raw["Monetary"],
		SpendLast90Days:   raw["spend_last_90_days"],
		SpendTrend:        raw["SpendTrend"],
		AverageOrderValue: raw["AverageOrderValue"],
	}

	missing := map[string]bool{}
	if err := presence.Struct(&fields); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				missing[fe.Field()] = true
			}
		}
	}

	var errs ValidationErrors
	values := make([]float64, len(FeatureNames))
	for i, rawValue := range fields.ordered() {
		name := FeatureNames[i]
		if missing[name] {
			errs = append(errs, ValidationError{Loc: []any{"body", name}, Msg: "Field required", Type: ErrTypeMissing})
			continue
		}

		v, err := utils.ParseLaxFloat(rawValue)
		if err != nil {
			errs = append(errs, numberError(name, err))
			continue
		}
		values[i] = v
	}

	if strict {
		errs = append(errs, extraFieldErrors(raw)...)
	}

	if len(errs) > 0 {
		return FeatureVector{}, errs
	}

	return FeatureVector{
		Recency:           values[0],
		Frequency:         values[1],
		Monetary:          values[2],
		SpendLast90Days:   values[3],
		SpendTrend:        values[4],
		AverageOrderValue: values[5],
	}, nil
}

func numberError(name string, err error) ValidationError {
	loc := []any{"body", name}
	switch {
	case errors.Is(err, utils.ErrUnparsableText):
		return ValidationError{Loc: loc, Msg: "Input should be a valid number, unable to parse string as a number", Type: ErrTypeFloatParsing}
	case errors.Is(err, utils.ErrNotFinite):
		return ValidationError{Loc: loc, Msg: "Input should be a finite number", Type: ErrTypeFiniteNumber}
	default:
		return ValidationError{Loc: loc, Msg: "Input should be a valid number", Type: ErrTypeFloatType}
	}
}

func decodeError(err error) ValidationError {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return ValidationError{Loc: []any{"body", int(syntaxErr.Offset)}, Msg: "JSON decode error", Type: ErrTypeJSONInvalid}
	}
	// valid JSON, but not an object
	return objectTypeError()
}

func objectTypeError() ValidationError {
	return ValidationError{
		Loc:  []any{"body"},
		Msg:  "Input should be a valid dictionary or object to extract fields from",
		Type: ErrTypeObjectType,
	}
}

func extraFieldErrors(raw map[string]json.RawMessage) ValidationErrors {
	known := make(map[string]bool, len(FeatureNames))
	for _, name := range FeatureNames {
		known[name] = true
	}

	var extras []string
	for key := range raw {
		if !known[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)

	errs := make(ValidationErrors, 0, len(extras))
	for _, key := range extras {
		errs = append(errs, ValidationError{Loc: []any{"body", key}, Msg: "Extra inputs are not permitted", Type: ErrTypeExtraForbidden})
	}
	return errs
}
