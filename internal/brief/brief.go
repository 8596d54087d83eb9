package brief

import (
	"strings"
	"time"
)

// TaskType describes the overall shape of a design request.
type TaskType string

const (
	TaskSingleAsset TaskType = "single_asset"
	TaskMultiAsset  TaskType = "multi_asset_plan"
	TaskCampaign    TaskType = "campaign"
)

// Intent is the client's goal for the requested design.
type Intent string

const (
	IntentSignups      Intent = "signups"
	IntentAuthority    Intent = "authority"
	IntentAwareness    Intent = "awareness"
	IntentSales        Intent = "sales"
	IntentEngagement   Intent = "engagement"
	IntentEducation    Intent = "education"
	IntentAnnouncement Intent = "announcement"
)

// Platform is the target channel for the deliverable.
type Platform string

const (
	PlatformInstagram    Platform = "instagram"
	PlatformLinkedIn     Platform = "linkedin"
	PlatformFacebook     Platform = "facebook"
	PlatformTwitter      Platform = "twitter"
	PlatformYouTube      Platform = "youtube"
	PlatformTikTok       Platform = "tiktok"
	PlatformPrint        Platform = "print"
	PlatformWeb          Platform = "web"
	PlatformEmail        Platform = "email"
	PlatformPresentation Platform = "presentation"
)

// Audience describes who the design should speak to.
type Audience struct {
	Description string   `json:"description"`
	AgeRange    string   `json:"ageRange,omitempty"`
	Interests   []string `json:"interests,omitempty"`
}

// Dimension is one target output size. Display order is insertion order.
type Dimension struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Label       string `json:"label"`
	AspectRatio string `json:"aspectRatio"`
}

// OutlineItem is a single planned deliverable inside a week group.
type OutlineItem struct {
	Title  string `json:"title"`
	Format string `json:"format,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// OutlineWeek groups planned deliverables under a week number.
type OutlineWeek struct {
	Week  int           `json:"week"`
	Items []OutlineItem `json:"items"`
}

// ContentOutline is the structured plan required for multi-asset and
// campaign task types.
type ContentOutline struct {
	Weeks []OutlineWeek `json:"weeks"`
}

// HasContent reports whether the outline has at least one non-empty week.
func (o *ContentOutline) HasContent() bool {
	if o == nil {
		return false
	}
	for _, w := range o.Weeks {
		if len(w.Items) > 0 {
			return true
		}
	}
	return false
}

// VisualDirection captures moodboard-driven style choices.
type VisualDirection struct {
	SelectedStyles []string `json:"selectedStyles"`
	MoodKeywords   []string `json:"moodKeywords,omitempty"`
	ColorPalette   []string `json:"colorPalette,omitempty"`
	Typography     string   `json:"typography,omitempty"`
	AvoidElements  []string `json:"avoidElements,omitempty"`
}

// HasSelection reports whether at least one style has been selected.
func (v *VisualDirection) HasSelection() bool {
	return v != nil && len(v.SelectedStyles) > 0
}

// LiveBrief is the structured record of what is known about a design
// request, built up field by field as a conversation progresses.
type LiveBrief struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TaskSummary Field[string]   `json:"taskSummary"`
	TaskType    Field[TaskType] `json:"taskType"`
	Intent      Field[Intent]   `json:"intent"`
	Platform    Field[Platform] `json:"platform"`
	Audience    Field[Audience] `json:"audience"`
	Topic       Field[string]   `json:"topic"`

	Dimensions      []Dimension      `json:"dimensions"`
	ContentOutline  *ContentOutline  `json:"contentOutline,omitempty"`
	VisualDirection *VisualDirection `json:"visualDirection,omitempty"`

	ClarifyingQuestionsAsked []string `json:"clarifyingQuestionsAsked"`

	// Derived on every mutation, never authoritative inputs.
	CompletionPercentage int  `json:"completionPercentage"`
	IsReadyForDesigner   bool `json:"isReadyForDesigner"`
}

// New creates an empty brief for a conversation.
func New(id string) *LiveBrief {
	now := time.Now().UTC()
	b := &LiveBrief{
		ID:          strings.TrimSpace(id),
		CreatedAt:   now,
		UpdatedAt:   now,
		TaskSummary: Pending[string](),
		TaskType:    Pending[TaskType](),
		Intent:      Pending[Intent](),
		Platform:    Pending[Platform](),
		Audience:    Pending[Audience](),
		Topic:       Pending[string](),
	}
	b.Recompute()
	return b
}

// Touch advances UpdatedAt. The timestamp never moves backwards, even if the
// wall clock does.
func (b *LiveBrief) Touch() {
	if b == nil {
		return
	}
	now := time.Now().UTC()
	if now.After(b.UpdatedAt) {
		b.UpdatedAt = now
	} else {
		b.UpdatedAt = b.UpdatedAt.Add(time.Nanosecond)
	}
}

// Recompute refreshes the derived completion and readiness values.
func (b *LiveBrief) Recompute() {
	if b == nil {
		return
	}
	b.CompletionPercentage = Completion(b, DefaultWeights())
	b.IsReadyForDesigner = ReadyForDesigner(b, DefaultWeights())
}

// QuestionAsked reports whether a clarifying question was already asked in
// this conversation.
func (b *LiveBrief) QuestionAsked(id string) bool {
	if b == nil {
		return false
	}
	for _, q := range b.ClarifyingQuestionsAsked {
		if q == id {
			return true
		}
	}
	return false
}

// MarkQuestionAsked records a clarifying question so it is never re-asked.
func (b *LiveBrief) MarkQuestionAsked(id string) {
	id = strings.TrimSpace(id)
	if b == nil || id == "" || b.QuestionAsked(id) {
		return
	}
	b.ClarifyingQuestionsAsked = append(b.ClarifyingQuestionsAsked, id)
	b.Touch()
}

// AddDimension appends a target output size, skipping exact duplicates.
func (b *LiveBrief) AddDimension(d Dimension) {
	if b == nil {
		return
	}
	for _, existing := range b.Dimensions {
		if existing == d {
			return
		}
	}
	b.Dimensions = append(b.Dimensions, d)
	b.Touch()
}

// DesignerBrief is the immutable snapshot handed to a freelancer when the
// client submits. It is never mutated after creation.
type DesignerBrief struct {
	BriefID     string    `json:"briefId"`
	SnapshotAt  time.Time `json:"snapshotAt"`
	TaskSummary string    `json:"taskSummary"`
	TaskType    TaskType  `json:"taskType"`
	Intent      Intent    `json:"intent"`
	Platform    Platform  `json:"platform"`
	Audience    Audience  `json:"audience"`
	Topic       string    `json:"topic"`

	Dimensions      []Dimension      `json:"dimensions"`
	ContentOutline  *ContentOutline  `json:"contentOutline,omitempty"`
	VisualDirection *VisualDirection `json:"visualDirection,omitempty"`
}

// Snapshot freezes the brief for handoff. Unfilled fields snapshot as zero
// values; the submission flow is expected to gate on readiness first.
func (b *LiveBrief) Snapshot() DesignerBrief {
	snap := DesignerBrief{
		BriefID:    b.ID,
		SnapshotAt: time.Now().UTC(),
	}
	if b.TaskSummary.Value != nil {
		snap.TaskSummary = *b.TaskSummary.Value
	}
	if b.TaskType.Value != nil {
		snap.TaskType = *b.TaskType.Value
	}
	if b.Intent.Value != nil {
		snap.Intent = *b.Intent.Value
	}
	if b.Platform.Value != nil {
		snap.Platform = *b.Platform.Value
	}
	if b.Audience.Value != nil {
		snap.Audience = *b.Audience.Value
	}
	if b.Topic.Value != nil {
		snap.Topic = *b.Topic.Value
	}
	snap.Dimensions = append([]Dimension(nil), b.Dimensions...)
	if b.ContentOutline != nil {
		outline := *b.ContentOutline
		outline.Weeks = append([]OutlineWeek(nil), b.ContentOutline.Weeks...)
		snap.ContentOutline = &outline
	}
	if b.VisualDirection != nil {
		vd := *b.VisualDirection
		vd.SelectedStyles = append([]string(nil), b.VisualDirection.SelectedStyles...)
		snap.VisualDirection = &vd
	}
	return snap
}
