package profile

import "strings"

// Step is the intake wizard step.
type Step int

const (
	StepContext Step = iota + 1 // choose what to talk about
	StepDetails                 // name, exam, level, hours, topics
)

// Draft is the mutable wizard state behind the intake form.
type Draft struct {
	Step                Step
	Name                string
	ExamType            ExamType
	PrepLevel           PrepLevel
	Topics              Topics
	Hours               int
	ConsultationContext ConsultationContext
}

// NewDraft returns a draft with the form defaults.
func NewDraft() *Draft {
	return &Draft{
		Step:                StepContext,
		ExamType:            ExamJEE,
		PrepLevel:           LevelBeginner,
		Hours:               DefaultHours,
		ConsultationContext: ContextSubjectHelp,
	}
}

// ChooseContext records the struggle and advances to the details step.
func (d *Draft) ChooseContext(c ConsultationContext) {
	d.ConsultationContext = c
	d.Step = StepDetails
}

// Back returns to the context step, keeping all entered data.
func (d *Draft) Back() {
	d.Step = StepContext
}

// SetHours stores h clamped to the allowed range.
func (d *Draft) SetHours(h int) {
	d.Hours = ClampHours(h)
}

// Submit validates the draft and returns the immutable Profile.
func (d *Draft) Submit() (Profile, error) {
	if strings.TrimSpace(d.Name) == "" {
		return Profile{}, ErrNameRequired
	}
	if d.Topics.Len() == 0 {
		return Profile{}, ErrTopicsRequired
	}
	return New(d.Name, d.ExamType, d.PrepLevel, d.Topics.List(), d.Hours, d.ConsultationContext)
}
