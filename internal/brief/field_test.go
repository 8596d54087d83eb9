package brief

import (
	"encoding/json"
	"testing"
)

func TestFieldRoundTripPreservesSource(t *testing.T) {
	cases := []struct {
		name  string
		field Field[string]
	}{
		{"pending", Pending[string]()},
		{"inferred", Inferred("Instagram launch post", 0.6)},
		{"confirmed", Confirmed("Instagram launch post")},
	}
	for _, tc := range cases {
		b, err := json.Marshal(tc.field)
		if err != nil {
			t.Fatalf("%s: marshal failed: %v", tc.name, err)
		}
		var got Field[string]
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("%s: unmarshal failed: %v", tc.name, err)
		}
		if got.Source != tc.field.Source {
			t.Fatalf("%s: source changed: %q -> %q", tc.name, tc.field.Source, got.Source)
		}
		if got.Confidence != tc.field.Confidence {
			t.Fatalf("%s: confidence changed: %v -> %v", tc.name, tc.field.Confidence, got.Confidence)
		}
		if (got.Value == nil) != (tc.field.Value == nil) {
			t.Fatalf("%s: value presence changed", tc.name)
		}
	}
}

func TestBriefRoundTripPreservesSources(t *testing.T) {
	b := New("conv-1")
	b.Platform = Inferred(PlatformInstagram, 0.8)
	b.Intent = Confirmed(IntentSignups)
	b.Recompute()

	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var got LiveBrief
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.Platform.Source != SourceInferred {
		t.Fatalf("platform source: got %q", got.Platform.Source)
	}
	if got.Intent.Source != SourceConfirmed {
		t.Fatalf("intent source: got %q", got.Intent.Source)
	}
	if got.TaskSummary.Source != SourcePending {
		t.Fatalf("taskSummary source: got %q", got.TaskSummary.Source)
	}
}

func TestFieldUnmarshalBareValue(t *testing.T) {
	var f Field[string]
	if err := json.Unmarshal([]byte(`"a launch banner"`), &f); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if f.Source != SourceInferred {
		t.Fatalf("bare value should decode as inferred, got %q", f.Source)
	}
	if f.Value == nil || *f.Value != "a launch banner" {
		t.Fatalf("unexpected value: %v", f.Value)
	}
}

func TestFieldUnmarshalRejectsUnknownSource(t *testing.T) {
	var f Field[string]
	err := json.Unmarshal([]byte(`{"value":"x","confidence":1,"source":"guessed"}`), &f)
	if err == nil {
		t.Fatal("expected error for unknown source tag")
	}
}

func TestPendingInvariant(t *testing.T) {
	var f Field[string]
	if err := json.Unmarshal([]byte(`{"value":"stale","confidence":0.4,"source":"pending"}`), &f); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if f.Value != nil || f.Confidence != 0 {
		t.Fatalf("pending must clear value and confidence, got %+v", f)
	}
}
