package errs

import (
	"fmt"
	"strings"
)

// FieldError holds the messages produced for one input field.
type FieldError struct {
	Field    string
	Messages []string
}

// ValidationError aggregates field-level failures in the order the fields were checked.
//
// Example:
//
//	verr := errs.NewValidationError()
//	verr.Add("weight", "weight must be positive")
//	if err := verr.OrNil(); err != nil {
//	    return err
//	}
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError() *ValidationError {
	return &ValidationError{}
}

// Add appends a message to field, keeping the first-seen field order.
func (e *ValidationError) Add(field, message string) {
	for i := range e.Fields {
		if e.Fields[i].Field == field {
			e.Fields[i].Messages = append(e.Fields[i].Messages, message)
			return
		}
	}
	e.Fields = append(e.Fields, FieldError{Field: field, Messages: []string{message}})
}

// HasErrors reports whether any message was recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns e when it holds messages and a nil error otherwise.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// Messages returns every message flattened in field order.
func (e *ValidationError) Messages() []string {
	var out []string
	for _, f := range e.Fields {
		out = append(out, f.Messages...)
	}
	return out
}

// FieldMessages returns the messages keyed by field name.
func (e *ValidationError) FieldMessages() map[string][]string {
	out := make(map[string][]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = append([]string(nil), f.Messages...)
	}
	return out
}

// Detail is the single-line, comma-joined form shown to callers.
func (e *ValidationError) Detail() string {
	msgs := e.Messages()
	for i := range msgs {
		msgs[i] = Sanitize(msgs[i])
	}
	return strings.Join(msgs, ", ")
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Detail())
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
