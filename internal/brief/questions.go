package brief

// Question is a clarifying prompt tied to the field it would fill.
type Question struct {
	ID     string    `json:"id"`
	Field  FieldName `json:"field"`
	Prompt string    `json:"prompt"`
}

// Ordered by how much each answer typically unblocks: platform first since
// it also pins dimensions, visual direction last since the moodboard flow
// covers it.
var clarifyingQuestions = []Question{
	{ID: "q_platform", Field: FieldPlatform, Prompt: "Where will this design live? Instagram, LinkedIn, your website, print?"},
	{ID: "q_intent", Field: FieldIntent, Prompt: "What should this design achieve for you — signups, sales, awareness, something else?"},
	{ID: "q_audience", Field: FieldAudience, Prompt: "Who is the audience you want this to speak to?"},
	{ID: "q_topic", Field: FieldTopic, Prompt: "What product, brand, or topic is this design about?"},
	{ID: "q_task_type", Field: FieldTaskType, Prompt: "Is this a one-off asset, or part of a series or campaign?"},
	{ID: "q_summary", Field: FieldTaskSummary, Prompt: "Can you describe in a sentence what you'd like designed?"},
}

// NextQuestion picks the first clarifying question whose field is still
// unfilled and which has not been asked in this conversation. It returns
// false when nothing useful is left to ask.
func NextQuestion(b *LiveBrief) (Question, bool) {
	if b == nil {
		return Question{}, false
	}
	for _, q := range clarifyingQuestions {
		if b.QuestionAsked(q.ID) {
			continue
		}
		if fieldFilled(b, q.Field) {
			continue
		}
		return q, true
	}
	return Question{}, false
}

func fieldFilled(b *LiveBrief, name FieldName) bool {
	switch name {
	case FieldTaskSummary:
		return b.TaskSummary.Filled()
	case FieldTaskType:
		return b.TaskType.Filled()
	case FieldIntent:
		return b.Intent.Filled()
	case FieldPlatform:
		return b.Platform.Filled()
	case FieldAudience:
		return b.Audience.Filled()
	case FieldTopic:
		return b.Topic.Filled()
	}
	return false
}
