package brief

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldName addresses one of the six core brief fields. Field mutation goes
// through an explicit switch over this closed set; there is no dynamic
// indexing by arbitrary names.
type FieldName string

const (
	FieldTaskSummary FieldName = "taskSummary"
	FieldTaskType    FieldName = "taskType"
	FieldIntent      FieldName = "intent"
	FieldPlatform    FieldName = "platform"
	FieldAudience    FieldName = "audience"
	FieldTopic       FieldName = "topic"
)

// ParseFieldName validates a field name from an API path or payload.
func ParseFieldName(raw string) (FieldName, error) {
	switch FieldName(strings.TrimSpace(raw)) {
	case FieldTaskSummary:
		return FieldTaskSummary, nil
	case FieldTaskType:
		return FieldTaskType, nil
	case FieldIntent:
		return FieldIntent, nil
	case FieldPlatform:
		return FieldPlatform, nil
	case FieldAudience:
		return FieldAudience, nil
	case FieldTopic:
		return FieldTopic, nil
	}
	return "", fmt.Errorf("brief: unknown field %q", raw)
}

// Confirm marks the named field's current value as user-approved. It fails
// if the field has no value to confirm.
func (b *LiveBrief) Confirm(name FieldName) error {
	if b == nil {
		return fmt.Errorf("brief is nil")
	}
	var err error
	switch name {
	case FieldTaskSummary:
		b.TaskSummary, err = confirmCurrent(b.TaskSummary, name)
	case FieldTaskType:
		b.TaskType, err = confirmCurrent(b.TaskType, name)
	case FieldIntent:
		b.Intent, err = confirmCurrent(b.Intent, name)
	case FieldPlatform:
		b.Platform, err = confirmCurrent(b.Platform, name)
	case FieldAudience:
		b.Audience, err = confirmCurrent(b.Audience, name)
	case FieldTopic:
		b.Topic, err = confirmCurrent(b.Topic, name)
	default:
		return fmt.Errorf("brief: unknown field %q", name)
	}
	if err != nil {
		return err
	}
	b.Touch()
	b.Recompute()
	return nil
}

func confirmCurrent[T any](f Field[T], name FieldName) (Field[T], error) {
	if f.Value == nil {
		return f, fmt.Errorf("brief: field %q has no value to confirm", name)
	}
	return Confirmed(*f.Value), nil
}

// Edit replaces the named field with a user-supplied value, which is treated
// as confirmed. The raw payload is decoded per field type.
func (b *LiveBrief) Edit(name FieldName, raw json.RawMessage) error {
	if b == nil {
		return fmt.Errorf("brief is nil")
	}
	switch name {
	case FieldTaskSummary:
		v, err := decodeValue[string](raw, name)
		if err != nil {
			return err
		}
		b.TaskSummary = Confirmed(v)
	case FieldTaskType:
		v, err := decodeValue[TaskType](raw, name)
		if err != nil {
			return err
		}
		switch v {
		case TaskSingleAsset, TaskMultiAsset, TaskCampaign:
		default:
			return fmt.Errorf("brief: invalid task type %q", v)
		}
		b.TaskType = Confirmed(v)
	case FieldIntent:
		v, err := decodeValue[Intent](raw, name)
		if err != nil {
			return err
		}
		b.Intent = Confirmed(v)
	case FieldPlatform:
		v, err := decodeValue[Platform](raw, name)
		if err != nil {
			return err
		}
		b.Platform = Confirmed(v)
	case FieldAudience:
		v, err := decodeValue[Audience](raw, name)
		if err != nil {
			return err
		}
		b.Audience = Confirmed(v)
	case FieldTopic:
		v, err := decodeValue[string](raw, name)
		if err != nil {
			return err
		}
		b.Topic = Confirmed(v)
	default:
		return fmt.Errorf("brief: unknown field %q", name)
	}
	b.Touch()
	b.Recompute()
	return nil
}

func decodeValue[T any](raw json.RawMessage, name FieldName) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, fmt.Errorf("brief: field %q requires a value", name)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("brief: decode %q value: %w", name, err)
	}
	return v, nil
}
