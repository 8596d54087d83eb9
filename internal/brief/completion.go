package brief

import "math"

// Weights configures the completion score and readiness gate. The default
// split (70/15/15) and the 0.7 confidence floor are product-tuned values,
// kept here rather than inlined so they can be revisited in one place.
type Weights struct {
	Core            float64
	Outline         float64
	Visual          float64
	ReadyConfidence float64
}

func DefaultWeights() Weights {
	return Weights{
		Core:            70,
		Outline:         15,
		Visual:          15,
		ReadyConfidence: 0.7,
	}
}

const coreFieldCount = 6

// Completion scores how complete a brief is, 0-100. A core field counts
// when it holds a value that was inferred or confirmed; rounding happens
// once, at the end.
func Completion(b *LiveBrief, w Weights) int {
	if b == nil {
		return 0
	}
	filled := 0
	if b.TaskSummary.Filled() {
		filled++
	}
	if b.TaskType.Filled() {
		filled++
	}
	if b.Intent.Filled() {
		filled++
	}
	if b.Platform.Filled() {
		filled++
	}
	if b.Audience.Filled() {
		filled++
	}
	if b.Topic.Filled() {
		filled++
	}

	score := float64(filled) / coreFieldCount * w.Core
	if b.ContentOutline.HasContent() {
		score += w.Outline
	}
	if b.VisualDirection.HasSelection() {
		score += w.Visual
	}

	result := int(math.Round(score))
	if result < 0 {
		return 0
	}
	if result > 100 {
		return 100
	}
	return result
}

// ReadyForDesigner is the strict handoff gate. It is deliberately harder to
// satisfy than a high completion score: every required field must clear the
// confidence floor, at least one output size must be chosen, multi-asset
// work needs an outline, and a visual direction must be selected.
func ReadyForDesigner(b *LiveBrief, w Weights) bool {
	if b == nil {
		return false
	}
	if !b.TaskSummary.Meets(w.ReadyConfidence) {
		return false
	}
	if !b.Intent.Meets(w.ReadyConfidence) {
		return false
	}
	if !b.Platform.Meets(w.ReadyConfidence) {
		return false
	}
	if !b.Audience.Meets(w.ReadyConfidence) {
		return false
	}
	if len(b.Dimensions) == 0 {
		return false
	}
	singleAsset := b.TaskType.Filled() && *b.TaskType.Value == TaskSingleAsset
	if !singleAsset && !b.ContentOutline.HasContent() {
		return false
	}
	return b.VisualDirection.HasSelection()
}
