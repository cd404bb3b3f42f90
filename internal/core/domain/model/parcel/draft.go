package parcel

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// Draft is raw registration input as received from the API or the HTML form.
// Numbers stay textual so that "missing" and "not a number" can be reported apart.
type Draft struct {
	Name   string
	Weight string
	Value  string
	TypeID string
}

// Registration is a Draft that passed every rule.
type Registration struct {
	Name   string
	Weight float64
	Value  float64
	TypeID kernel.UUID
}

// Rule is a pure predicate over one raw field value. When Holds returns false the
// field is reported with Message and the remaining rules of that field are skipped.
type Rule struct {
	Message string
	Holds   func(raw string) bool
}

// FieldRules binds an ordered rule list to one field of a Draft.
type FieldRules struct {
	Field string
	Get   func(d Draft) string
	Rules []Rule
}

// Field names used in validation results.
const (
	FieldName   = "name"
	FieldWeight = "weight"
	FieldValue  = "value"
	FieldType   = "type"
)

// Messages shared with the adapters that render validation results.
const (
	MsgNameRequired    = "name is required"
	MsgNameTooLong     = "name must be at most 100 characters"
	MsgWeightRequired  = "weight is required"
	MsgWeightNotNumber = "weight must be a number"
	MsgWeightPositive  = "weight must be positive"
	MsgValueRequired   = "value is required"
	MsgValueNotNumber  = "value must be a number"
	MsgValueNegative   = "value cannot be negative"
	MsgTypeRequired    = "type is required"
	MsgTypeInvalid     = "type must be a valid identifier"
	MsgTypeNotFound    = "parcel type does not exist"
)

// DraftRules lists, in evaluation order, the rules applied to registration input.
//
//nolint:gochecknoglobals // immutable rule table
var DraftRules = []FieldRules{
	{
		Field: FieldName,
		Get:   func(d Draft) string { return d.Name },
		Rules: []Rule{
			{Message: MsgNameRequired, Holds: notBlank},
			{Message: MsgNameTooLong, Holds: func(raw string) bool {
				return utf8.RuneCountInString(strings.TrimSpace(raw)) <= MaxNameLength
			}},
		},
	},
	{
		Field: FieldWeight,
		Get:   func(d Draft) string { return d.Weight },
		Rules: []Rule{
			{Message: MsgWeightRequired, Holds: notBlank},
			{Message: MsgWeightNotNumber, Holds: isFiniteNumber},
			{Message: MsgWeightPositive, Holds: func(raw string) bool { return parseNumber(raw) > 0 }},
		},
	},
	{
		Field: FieldValue,
		Get:   func(d Draft) string { return d.Value },
		Rules: []Rule{
			{Message: MsgValueRequired, Holds: notBlank},
			{Message: MsgValueNotNumber, Holds: isFiniteNumber},
			{Message: MsgValueNegative, Holds: func(raw string) bool { return parseNumber(raw) >= 0 }},
		},
	},
	{
		Field: FieldType,
		Get:   func(d Draft) string { return d.TypeID },
		Rules: []Rule{
			{Message: MsgTypeRequired, Holds: notBlank},
			{Message: MsgTypeInvalid, Holds: func(raw string) bool {
				_, err := kernel.UUIDFromString(strings.TrimSpace(raw))
				return err == nil
			}},
		},
	},
}

// Check evaluates DraftRules against d. Each field contributes at most one message.
// It returns the parsed Registration together with a nil error when every rule holds,
// otherwise an *errs.ValidationError.
//
// Example:
//
//	reg, err := parcel.Check(parcel.Draft{Name: "Book", Weight: "0", Value: "10", TypeID: id})
//	// err.Error() == "validation failed: weight must be positive"
func Check(d Draft) (Registration, error) {
	verr := errs.NewValidationError()
	for _, field := range DraftRules {
		raw := field.Get(d)
		for _, rule := range field.Rules {
			if !rule.Holds(raw) {
				verr.Add(field.Field, rule.Message)
				break
			}
		}
	}
	if err := verr.OrNil(); err != nil {
		return Registration{}, err
	}

	typeID, _ := kernel.UUIDFromString(strings.TrimSpace(d.TypeID))
	return Registration{
		Name:   strings.TrimSpace(d.Name),
		Weight: parseNumber(d.Weight),
		Value:  parseNumber(d.Value),
		TypeID: typeID,
	}, nil
}

func notBlank(raw string) bool {
	return strings.TrimSpace(raw) != ""
}

func isFiniteNumber(raw string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func parseNumber(raw string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return f
}
