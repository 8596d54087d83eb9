package brief

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Source tracks how a brief field got its current value.
type Source string

const (
	SourcePending   Source = "pending"
	SourceInferred  Source = "inferred"
	SourceConfirmed Source = "confirmed"
)

// ParseSource normalizes a raw source tag. Unknown tags are rejected rather
// than silently mapped to pending, so persisted drafts keep their provenance.
func ParseSource(raw string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(raw))) {
	case SourcePending:
		return SourcePending, nil
	case SourceInferred:
		return SourceInferred, nil
	case SourceConfirmed:
		return SourceConfirmed, nil
	}
	return "", fmt.Errorf("brief: unknown field source %q", raw)
}

// Field is a value annotated with provenance and confidence.
// Invariant: Source == pending implies Value == nil and Confidence == 0.
type Field[T any] struct {
	Value      *T      `json:"value"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
}

// Pending returns an untouched field.
func Pending[T any]() Field[T] {
	return Field[T]{Source: SourcePending}
}

// Inferred returns a machine-derived field at the given confidence.
func Inferred[T any](v T, confidence float64) Field[T] {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return Field[T]{Value: &v, Confidence: confidence, Source: SourceInferred}
}

// Confirmed returns a user-approved field. Confirmation always carries full
// confidence.
func Confirmed[T any](v T) Field[T] {
	return Field[T]{Value: &v, Confidence: 1, Source: SourceConfirmed}
}

// Filled reports whether the field counts toward brief completion.
func (f Field[T]) Filled() bool {
	return f.Value != nil && (f.Source == SourceInferred || f.Source == SourceConfirmed)
}

// Meets reports whether the field is filled at or above the given confidence.
func (f Field[T]) Meets(confidence float64) bool {
	return f.Filled() && f.Confidence >= confidence
}

type fieldJSON[T any] struct {
	Value      *T       `json:"value"`
	Confidence *float64 `json:"confidence"`
	Source     *string  `json:"source"`
}

// UnmarshalJSON accepts either the full object form
// {"value":...,"confidence":0.8,"source":"inferred"} or a bare value.
// A bare value is treated as an inference at middling confidence; a present
// source tag is preserved exactly and never defaulted to pending.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*f = Pending[T]()
		return nil
	}

	var obj fieldJSON[T]
	if err := json.Unmarshal(data, &obj); err == nil && obj.Source != nil {
		src, err := ParseSource(*obj.Source)
		if err != nil {
			return err
		}
		f.Source = src
		f.Value = obj.Value
		if obj.Confidence != nil {
			f.Confidence = *obj.Confidence
		} else {
			f.Confidence = 0
		}
		if f.Source == SourcePending {
			f.Value = nil
			f.Confidence = 0
		}
		return nil
	}

	// Bare value form, seen in early drafts persisted before provenance
	// tagging existed.
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("brief: decode field: %w", err)
	}
	*f = Inferred(v, 0.5)
	return nil
}

// MarshalJSON always emits the object form so source tags round-trip.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	src := f.Source
	if src == "" {
		src = SourcePending
	}
	return json.Marshal(fieldJSON[T]{
		Value:      f.Value,
		Confidence: &f.Confidence,
		Source:     (*string)(&src),
	})
}
