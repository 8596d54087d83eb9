// Package chatflow maps conversation state onto the progress stepper shown
// in the chat UI.
package chatflow

// Stage is one step of the request flow, in order.
type Stage string

const (
	StageBrief   Stage = "brief"
	StageStyle   Stage = "style"
	StageDetails Stage = "details"
	StageReview  Stage = "review"
	StageSubmit  Stage = "submit"
)

var stageOrder = []Stage{StageBrief, StageStyle, StageDetails, StageReview, StageSubmit}

var stagePercent = map[Stage]int{
	StageBrief:   10,
	StageStyle:   35,
	StageDetails: 60,
	StageReview:  85,
	StageSubmit:  100,
}

func stageIndex(s Stage) int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return 0
}

// State is the conversation state the calculator reads, plus the completed
// stages carried over from the previous calculation. Completed stages are a
// high-water mark: once a stage is reached it stays completed for the rest
// of the session, even if the user later removes their moodboard picks.
type State struct {
	MessageCount   int
	SelectedStyles int
	MoodboardItems int
	HasProposal    bool
	Submitted      bool
	Completed      []Stage
}

// Progress is what the stepper renders.
type Progress struct {
	Current   Stage   `json:"current"`
	Percent   int     `json:"percent"`
	Completed []Stage `json:"completed"`
}

// Advance computes the current stage and the updated high-water mark.
func Advance(st State) Progress {
	current := currentStage(st)

	// Union the stages before the current one with whatever was already
	// completed; nothing is ever removed.
	high := highWater(st.Completed)
	if idx := stageIndex(current); idx > high {
		high = idx
	}
	completed := make([]Stage, 0, high)
	for i := 0; i < high; i++ {
		completed = append(completed, stageOrder[i])
	}
	if current == StageSubmit && st.Submitted {
		completed = append(completed, StageSubmit)
	}

	// Percent follows the high-water mark so progress never walks backwards
	// within a session.
	effective := stageOrder[high]
	percent := stagePercent[effective]
	if st.Submitted {
		percent = stagePercent[StageSubmit]
	}

	return Progress{Current: current, Percent: percent, Completed: completed}
}

func currentStage(st State) Stage {
	switch {
	case st.Submitted:
		return StageSubmit
	case st.HasProposal:
		return StageReview
	case st.SelectedStyles > 0 || st.MoodboardItems > 0:
		return StageDetails
	case st.MessageCount >= 2:
		return StageStyle
	default:
		return StageBrief
	}
}

func highWater(completed []Stage) int {
	high := 0
	for _, s := range completed {
		// A stage in the completed list means the one after it was reached.
		if idx := stageIndex(s) + 1; idx > high {
			high = idx
		}
	}
	if high > len(stageOrder)-1 {
		high = len(stageOrder) - 1
	}
	return high
}
